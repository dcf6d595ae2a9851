package services

import (
	"context"
	"strings"

	"github.com/storefront-api/models"
	"github.com/storefront-api/repositories"
	"gorm.io/gorm"
)

// CommentService handles business logic for product comments
type CommentService struct {
	comments *repositories.CommentRepository
	products *repositories.ProductRepository
}

// NewCommentService creates a new comment service
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		comments: repositories.NewCommentRepository(db),
		products: repositories.NewProductRepository(db),
	}
}

// CreateComment attaches the caller's comment to a product
func (s *CommentService) CreateComment(ctx context.Context, actor Actor, productID uint, text string) (models.ProductComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ProductComment{}, NewValidationError("comment", "comment must not be blank")
	}
	if err := requireProduct(ctx, s.products, productID); err != nil {
		return models.ProductComment{}, err
	}

	comment := models.ProductComment{ProductID: productID, UserID: actor.UserID, Comment: text}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return models.ProductComment{}, err
	}

	created, err := s.comments.FindByID(ctx, comment.ID)
	if err != nil {
		return models.ProductComment{}, lookupErr(err, "comment")
	}
	return created, nil
}

// ListComments returns a product's comments oldest first
func (s *CommentService) ListComments(ctx context.Context, productID uint) ([]models.ProductComment, error) {
	if err := requireProduct(ctx, s.products, productID); err != nil {
		return nil, err
	}
	return s.comments.FindByProductID(ctx, productID)
}

// DeleteComment removes a comment; only its author or an admin may do it
func (s *CommentService) DeleteComment(ctx context.Context, actor Actor, id uint) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return lookupErr(err, "comment")
	}
	if err := authorize(actor, comment.UserID, "you can only delete your own comments"); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}
