package repositories

import (
	"context"

	"github.com/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreRepository handles database operations for stores
type StoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates a new store repository instance
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// FindAll retrieves all stores with their owners
func (r *StoreRepository) FindAll(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	result := r.db.WithContext(ctx).Preload("Owner").Order("id").Find(&stores)
	return stores, result.Error
}

// FindByID retrieves a store with its owner
func (r *StoreRepository) FindByID(ctx context.Context, id uint) (models.Store, error) {
	var store models.Store
	result := r.db.WithContext(ctx).Preload("Owner").First(&store, id)
	return store, result.Error
}

// FindByOwnerID retrieves all stores belonging to a user
func (r *StoreRepository) FindByOwnerID(ctx context.Context, ownerID uint) ([]models.Store, error) {
	var stores []models.Store
	result := r.db.WithContext(ctx).Preload("Owner").Where("owner_id = ?", ownerID).Order("id").Find(&stores)
	return stores, result.Error
}

// GetOwnerID returns the user ID who owns the store
func (r *StoreRepository) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	var owner struct {
		OwnerID uint
	}
	err := r.db.WithContext(ctx).Model(&models.Store{}).Select("owner_id").Where("id = ?", id).First(&owner).Error
	return owner.OwnerID, err
}

// Create inserts a new store into the database
func (r *StoreRepository) Create(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(store).Error
}

// Update saves the store's own columns
func (r *StoreRepository) Update(ctx context.Context, store *models.Store) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(store).Error
}

// Delete removes a store; its products go with it through FK cascades
func (r *StoreRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, id).Error
}
