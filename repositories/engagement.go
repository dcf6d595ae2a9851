package repositories

import (
	"context"
	"database/sql"

	"github.com/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RatingRepository handles database operations for product ratings
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) WithTx(tx *gorm.DB) *RatingRepository {
	return &RatingRepository{db: tx}
}

// Upsert inserts the rating or overwrites the value of the existing
// (product, user) row.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.ProductRating) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(rating).Error
}

// Delete removes the user's rating of a product if there is one
func (r *RatingRepository) Delete(ctx context.Context, productID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Delete(&models.ProductRating{}).Error
}

// Average computes the live mean rating of a product, 0 when unrated
func (r *RatingRepository) Average(ctx context.Context, productID uint) (float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).Model(&models.ProductRating{}).
		Select("AVG(rating)").
		Where("product_id = ?", productID).
		Row().Scan(&avg)
	if err != nil {
		return 0, err
	}
	return avg.Float64, nil
}

// CommentRepository handles database operations for product comments
type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment; CreatedAt is stamped by gorm when zero
func (r *CommentRepository) Create(ctx context.Context, comment *models.ProductComment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(comment).Error
}

// FindByProductID lists comments in insertion order with their authors
func (r *CommentRepository) FindByProductID(ctx context.Context, productID uint) ([]models.ProductComment, error) {
	var comments []models.ProductComment
	result := r.db.WithContext(ctx).Preload("User").Where("product_id = ?", productID).Order("id").Find(&comments)
	return comments, result.Error
}

// FindByID retrieves a comment with its author
func (r *CommentRepository) FindByID(ctx context.Context, id uint) (models.ProductComment, error) {
	var comment models.ProductComment
	result := r.db.WithContext(ctx).Preload("User").First(&comment, id)
	return comment, result.Error
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProductComment{}, id).Error
}

// TagRepository handles database operations for product tags
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *models.ProductTag) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(tag).Error
}

func (r *TagRepository) FindByProductID(ctx context.Context, productID uint) ([]models.ProductTag, error) {
	var tags []models.ProductTag
	result := r.db.WithContext(ctx).Where("product_id = ?", productID).Order("id").Find(&tags)
	return tags, result.Error
}

func (r *TagRepository) FindAll(ctx context.Context) ([]models.ProductTag, error) {
	var tags []models.ProductTag
	result := r.db.WithContext(ctx).Order("id").Find(&tags)
	return tags, result.Error
}

// Delete removes a tag and reports whether it existed
func (r *TagRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.ProductTag{}, id)
	return result.RowsAffected > 0, result.Error
}
