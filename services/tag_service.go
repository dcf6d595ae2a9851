package services

import (
	"context"
	"strings"

	"github.com/storefront-api/models"
	"github.com/storefront-api/repositories"
	"gorm.io/gorm"
)

// TagService handles business logic for product tags
type TagService struct {
	tags     *repositories.TagRepository
	products *repositories.ProductRepository
}

// NewTagService creates a new tag service
func NewTagService(db *gorm.DB) *TagService {
	return &TagService{
		tags:     repositories.NewTagRepository(db),
		products: repositories.NewProductRepository(db),
	}
}

// CreateTag stores a trimmed, non-blank tag on a product
func (s *TagService) CreateTag(ctx context.Context, productID uint, name string) (models.ProductTag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ProductTag{}, NewValidationError("tagName", "tag name must not be blank")
	}
	if err := requireProduct(ctx, s.products, productID); err != nil {
		return models.ProductTag{}, err
	}

	tag := models.ProductTag{ProductID: productID, TagName: name}
	if err := s.tags.Create(ctx, &tag); err != nil {
		return models.ProductTag{}, err
	}
	return tag, nil
}

// ListProductTags returns the tags of one product
func (s *TagService) ListProductTags(ctx context.Context, productID uint) ([]models.ProductTag, error) {
	if err := requireProduct(ctx, s.products, productID); err != nil {
		return nil, err
	}
	return s.tags.FindByProductID(ctx, productID)
}

// ListTags returns every tag of every product
func (s *TagService) ListTags(ctx context.Context) ([]models.ProductTag, error) {
	return s.tags.FindAll(ctx)
}

// DeleteTag removes a tag by id. Any authenticated caller may delete any tag.
// TODO: restrict to the owner of the tag's store once product owners sign off on the change.
func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	deleted, err := s.tags.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("tag")
	}
	return nil
}
