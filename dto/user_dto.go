package dto

import "github.com/storefront-api/models"

// UpdateSelfRequest is the partial profile update a user applies to themselves.
// Nil fields are left unchanged.
type UpdateSelfRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1"`
	LastName   *string `json:"lastName" binding:"omitempty,min=1"`
	Phone      *string `json:"phone" binding:"omitempty,min=1"`
	NationalID *string `json:"nationalId" binding:"omitempty,min=1"`
	Password   *string `json:"password" binding:"omitempty,min=6"`
}

// AdminUpdateUserRequest lets an admin change any field of any user
type AdminUpdateUserRequest struct {
	Email      *string `json:"email" binding:"omitempty,email"`
	Name       *string `json:"name" binding:"omitempty,min=1"`
	LastName   *string `json:"lastName" binding:"omitempty,min=1"`
	Phone      *string `json:"phone" binding:"omitempty,min=1"`
	NationalID *string `json:"nationalId" binding:"omitempty,min=1"`
	Password   *string `json:"password" binding:"omitempty,min=6"`
	Role       *string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

// UserResponse is the public projection of a user
type UserResponse struct {
	ID         uint        `json:"id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	LastName   string      `json:"lastName"`
	NationalID string      `json:"nationalId"`
	Phone      string      `json:"phone"`
	Role       models.Role `json:"role"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		LastName:   u.LastName,
		NationalID: u.NationalID,
		Phone:      u.Phone,
		Role:       u.Role,
	}
}

func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}
