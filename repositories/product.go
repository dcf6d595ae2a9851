package repositories

import (
	"context"
	"strings"

	"github.com/storefront-api/dto"
	"github.com/storefront-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// productOrder maps sort keys to ORDER BY clauses. Ties keep insertion
// order (id ASC) in every direction.
var productOrder = map[string]string{
	dto.SortPriceAsc:  "price ASC, id ASC",
	dto.SortPriceDesc: "price DESC, id ASC",
	dto.SortNewest:    "created_at DESC, id ASC",
	dto.SortOldest:    "created_at ASC, id ASC",
}

// likeEscaper makes LIKE wildcards in a search term match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ProductRepository handles database operations for products
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

func (r *ProductRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Store").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// Find lists products matching filter
func (r *ProductRepository) Find(ctx context.Context, filter dto.ProductFilter) ([]models.Product, error) {
	query := r.withRelations(ctx).Model(&models.Product{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern)
	}

	if len(filter.Tags) > 0 {
		query = query.Where("id IN (?)",
			r.db.WithContext(ctx).Model(&models.ProductTag{}).Select("product_id").Where("tag_name IN ?", filter.Tags))
	}

	order, ok := productOrder[filter.SortBy]
	if !ok {
		order = "id ASC"
	}

	var products []models.Product
	result := query.Order(order).Find(&products)
	return products, result.Error
}

// FindByStoreID retrieves all products of a store
func (r *ProductRepository) FindByStoreID(ctx context.Context, storeID uint) ([]models.Product, error) {
	var products []models.Product
	result := r.withRelations(ctx).Where("store_id = ?", storeID).Order("id").Find(&products)
	return products, result.Error
}

// FindByID retrieves a product with its store and tags
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	result := r.withRelations(ctx).First(&product, id)
	return product, result.Error
}

// GetOwnerID resolves the owner of the product's store
func (r *ProductRepository) GetOwnerID(ctx context.Context, id uint) (uint, error) {
	var owner struct {
		OwnerID uint
	}
	err := r.db.WithContext(ctx).
		Table("products").
		Select("stores.owner_id").
		Joins("JOIN stores ON stores.id = products.store_id").
		Where("products.id = ?", id).
		Take(&owner).Error
	return owner.OwnerID, err
}

// Exists checks if a product exists
func (r *ProductRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// LockForUpdate takes the product's row lock for the rest of the transaction
// and reports whether the product exists.
func (r *ProductRepository) LockForUpdate(ctx context.Context, id uint) (bool, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Pluck("id", &ids).Error
	return len(ids) > 0, err
}

// Create inserts a new product into the database
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

// Update saves the product's own columns. AverageRating is owned by the
// rating aggregator and never written here.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations, "AverageRating").Save(product).Error
}

// Delete removes a product; tags, ratings and comments cascade
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// RefreshAverageRating recomputes the cached average from the rating rows in
// a single statement and returns the stored value.
func (r *ProductRepository) RefreshAverageRating(ctx context.Context, id uint) (float64, error) {
	db := r.db.WithContext(ctx)
	err := db.Exec(
		"UPDATE products SET average_rating = COALESCE((SELECT AVG(rating) FROM product_ratings WHERE product_id = ?), 0) WHERE id = ?",
		id, id,
	).Error
	if err != nil {
		return 0, err
	}

	var average float64
	err = db.Model(&models.Product{}).Select("average_rating").Where("id = ?", id).Scan(&average).Error
	return average, err
}
