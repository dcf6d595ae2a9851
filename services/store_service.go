package services

import (
	"context"
	"strings"

	"github.com/storefront-api/dto"
	"github.com/storefront-api/models"
	"github.com/storefront-api/repositories"
	"github.com/storefront-api/utils"
	"gorm.io/gorm"
)

// StoreService handles business logic for stores
type StoreService struct {
	stores *repositories.StoreRepository
}

// NewStoreService creates a new store service
func NewStoreService(db *gorm.DB) *StoreService {
	return &StoreService{stores: repositories.NewStoreRepository(db)}
}

// CreateStore creates a store owned by the caller
func (s *StoreService) CreateStore(ctx context.Context, actor Actor, req dto.CreateStoreRequest) (models.Store, error) {
	store := models.Store{
		Name:        strings.TrimSpace(req.Name),
		Address:     req.Address,
		Contact:     req.Contact,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		OwnerID:     actor.UserID,
	}
	if store.Name == "" {
		return models.Store{}, NewValidationError("name", "name must not be blank")
	}
	if err := s.stores.Create(ctx, &store); err != nil {
		return models.Store{}, err
	}
	return s.GetStore(ctx, store.ID)
}

// UpdateStore applies a partial update; only the owner or an admin may do it
func (s *StoreService) UpdateStore(ctx context.Context, actor Actor, id uint, req dto.UpdateStoreRequest) (models.Store, error) {
	store, err := s.GetStore(ctx, id)
	if err != nil {
		return models.Store{}, err
	}
	if err := authorize(actor, store.OwnerID, "you can only modify your own stores"); err != nil {
		return models.Store{}, err
	}

	utils.AssignTrimmed(&store.Name, req.Name)
	utils.Assign(&store.Address, req.Address)
	utils.Assign(&store.Contact, req.Contact)
	utils.Assign(&store.ImageURL, req.ImageURL)
	utils.Assign(&store.Description, req.Description)
	if store.Name == "" {
		return models.Store{}, NewValidationError("name", "name must not be blank")
	}

	if err := s.stores.Update(ctx, &store); err != nil {
		return models.Store{}, err
	}
	return store, nil
}

// DeleteStore removes a store; only the owner or an admin may do it
func (s *StoreService) DeleteStore(ctx context.Context, actor Actor, id uint) error {
	ownerID, err := s.stores.GetOwnerID(ctx, id)
	if err != nil {
		return lookupErr(err, "store")
	}
	if err := authorize(actor, ownerID, "you can only delete your own stores"); err != nil {
		return err
	}
	return s.stores.Delete(ctx, id)
}

// GetStore retrieves a store by ID with its owner loaded
func (s *StoreService) GetStore(ctx context.Context, id uint) (models.Store, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return models.Store{}, lookupErr(err, "store")
	}
	return store, nil
}

// ListStores returns every store
func (s *StoreService) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.stores.FindAll(ctx)
}

// ListMyStores returns the caller's stores
func (s *StoreService) ListMyStores(ctx context.Context, actor Actor) ([]models.Store, error) {
	return s.stores.FindByOwnerID(ctx, actor.UserID)
}
