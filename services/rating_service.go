package services

import (
	"context"

	"github.com/storefront-api/metrics"
	"github.com/storefront-api/models"
	"github.com/storefront-api/repositories"
	"gorm.io/gorm"
)

const (
	minRating = 1
	maxRating = 5
)

// RatingService keeps one rating per (product, user) and the product's
// cached average in step with the rating rows.
type RatingService struct {
	db       *gorm.DB
	ratings  *repositories.RatingRepository
	products *repositories.ProductRepository
}

// NewRatingService creates a new rating service
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{
		db:       db,
		ratings:  repositories.NewRatingRepository(db),
		products: repositories.NewProductRepository(db),
	}
}

// Rate records or overwrites the caller's rating and returns the new average
func (s *RatingService) Rate(ctx context.Context, actor Actor, productID uint, value int) (float64, error) {
	if value < minRating || value > maxRating {
		return 0, NewValidationError("rating", "rating must be between 1 and 5")
	}

	var average float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		if err := lockProduct(ctx, products, productID); err != nil {
			return err
		}

		rating := models.ProductRating{ProductID: productID, UserID: actor.UserID, Rating: value}
		if err := s.ratings.WithTx(tx).Upsert(ctx, &rating); err != nil {
			return err
		}

		var err error
		average, err = products.RefreshAverageRating(ctx, productID)
		return err
	})
	if err != nil {
		return 0, err
	}

	metrics.ObserveRating("rate")
	return average, nil
}

// RemoveRating deletes the caller's rating if there is one and returns the
// new average. Calling it without a rating is a no-op.
func (s *RatingService) RemoveRating(ctx context.Context, actor Actor, productID uint) (float64, error) {
	var average float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products := s.products.WithTx(tx)
		if err := lockProduct(ctx, products, productID); err != nil {
			return err
		}

		if err := s.ratings.WithTx(tx).Delete(ctx, productID, actor.UserID); err != nil {
			return err
		}

		var err error
		average, err = products.RefreshAverageRating(ctx, productID)
		return err
	})
	if err != nil {
		return 0, err
	}

	metrics.ObserveRating("remove")
	return average, nil
}

// GetAverage computes the live average of a product's ratings
func (s *RatingService) GetAverage(ctx context.Context, productID uint) (float64, error) {
	if err := requireProduct(ctx, s.products, productID); err != nil {
		return 0, err
	}
	return s.ratings.Average(ctx, productID)
}

// lockProduct serializes concurrent rating changes on one product so each
// recompute sees every committed rating.
func lockProduct(ctx context.Context, products *repositories.ProductRepository, id uint) error {
	exists, err := products.LockForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("product")
	}
	return nil
}

func requireProduct(ctx context.Context, products *repositories.ProductRepository, id uint) error {
	exists, err := products.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return notFound("product")
	}
	return nil
}
