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

// ProductService handles business logic for the product catalog
type ProductService struct {
	products *repositories.ProductRepository
	stores   *repositories.StoreRepository
}

// NewProductService creates a new product service
func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{
		products: repositories.NewProductRepository(db),
		stores:   repositories.NewStoreRepository(db),
	}
}

// ListProducts returns products matching the search, tag and sort filter
func (s *ProductService) ListProducts(ctx context.Context, filter dto.ProductFilter) ([]models.Product, error) {
	filter.Tags = cleanTags(filter.Tags)
	return s.products.Find(ctx, filter)
}

// ListStoreProducts returns the products of one store
func (s *ProductService) ListStoreProducts(ctx context.Context, storeID uint) ([]models.Product, error) {
	if _, err := s.stores.GetOwnerID(ctx, storeID); err != nil {
		return nil, lookupErr(err, "store")
	}
	return s.products.FindByStoreID(ctx, storeID)
}

// GetProduct retrieves a product with its store and tags
func (s *ProductService) GetProduct(ctx context.Context, id uint) (models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, lookupErr(err, "product")
	}
	return product, nil
}

// CreateProduct adds a product to a store the caller owns, or any store for admins
func (s *ProductService) CreateProduct(ctx context.Context, actor Actor, storeID uint, req dto.CreateProductRequest) (models.Product, error) {
	ownerID, err := s.stores.GetOwnerID(ctx, storeID)
	if err != nil {
		return models.Product{}, lookupErr(err, "store")
	}
	if err := authorize(actor, ownerID, "you can only add products to your own stores"); err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Quantity:    req.Quantity,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Discount:    req.Discount,
		StoreID:     storeID,
	}
	if product.Name == "" {
		return models.Product{}, NewValidationError("name", "name must not be blank")
	}
	if err := s.products.Create(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return s.GetProduct(ctx, product.ID)
}

// UpdateProduct applies a partial update to a product of a store the caller owns
func (s *ProductService) UpdateProduct(ctx context.Context, actor Actor, id uint, req dto.UpdateProductRequest) (models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if err := authorize(actor, product.Store.OwnerID, "you can only modify products of your own stores"); err != nil {
		return models.Product{}, err
	}

	utils.AssignTrimmed(&product.Name, req.Name)
	utils.Assign(&product.Price, req.Price)
	utils.Assign(&product.Quantity, req.Quantity)
	utils.Assign(&product.Description, req.Description)
	utils.Assign(&product.ImageURL, req.ImageURL)
	utils.Assign(&product.Discount, req.Discount)
	if product.Name == "" {
		return models.Product{}, NewValidationError("name", "name must not be blank")
	}

	if err := s.products.Update(ctx, &product); err != nil {
		return models.Product{}, err
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product of a store the caller owns
func (s *ProductService) DeleteProduct(ctx context.Context, actor Actor, id uint) error {
	ownerID, err := s.products.GetOwnerID(ctx, id)
	if err != nil {
		return lookupErr(err, "product")
	}
	if err := authorize(actor, ownerID, "you can only delete products of your own stores"); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func cleanTags(tags []string) []string {
	var out []string
	for _, tag := range tags {
		for _, part := range strings.Split(tag, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
