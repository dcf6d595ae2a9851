package dto

import "github.com/storefront-api/models"

// CreateStoreRequest represents the request payload for creating a store
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
}

// UpdateStoreRequest is a partial update; nil fields are left unchanged
type UpdateStoreRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1"`
	Address     *string `json:"address"`
	Contact     *string `json:"contact"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
}

// StoreResponse includes the owner's email and is only served to authenticated callers
type StoreResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	OwnerID     uint   `json:"ownerId"`
	OwnerEmail  string `json:"ownerEmail"`
}

// PublicStoreResponse omits the owner's email
type PublicStoreResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	OwnerID     uint   `json:"ownerId"`
}

// NewStoreResponse expects s.Owner to be loaded
func NewStoreResponse(s models.Store) StoreResponse {
	return StoreResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Contact:     s.Contact,
		ImageURL:    s.ImageURL,
		Description: s.Description,
		OwnerID:     s.OwnerID,
		OwnerEmail:  s.Owner.Email,
	}
}

func NewStoreResponses(stores []models.Store) []StoreResponse {
	out := make([]StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, NewStoreResponse(s))
	}
	return out
}

func NewPublicStoreResponse(s models.Store) PublicStoreResponse {
	return PublicStoreResponse{
		ID:          s.ID,
		Name:        s.Name,
		Address:     s.Address,
		Contact:     s.Contact,
		ImageURL:    s.ImageURL,
		Description: s.Description,
		OwnerID:     s.OwnerID,
	}
}

func NewPublicStoreResponses(stores []models.Store) []PublicStoreResponse {
	out := make([]PublicStoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, NewPublicStoreResponse(s))
	}
	return out
}
