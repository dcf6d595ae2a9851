package dto

import "github.com/storefront-api/models"

// Product listing sort keys
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNewest    = "newest"
	SortOldest    = "oldest"
)

// ProductDateLayout renders product timestamps as dd/MM/yyyy HH:mm:ss
const ProductDateLayout = "02/01/2006 15:04:05"

// ProductFilter represents filter criteria for the global product listing
type ProductFilter struct {
	Search string
	Tags   []string
	SortBy string
}

// CreateProductRequest represents the request payload for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"gte=0"`
	Quantity    int     `json:"quantity" binding:"gte=0"`
	Description string  `json:"description"`
	ImageURL    string  `json:"imageUrl"`
	Discount    float64 `json:"discount" binding:"gte=0"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
	Discount    *float64 `json:"discount" binding:"omitempty,gte=0"`
}

// ProductResponse represents the standard response format for a product
type ProductResponse struct {
	ID            uint          `json:"id"`
	Name          string        `json:"name"`
	Price         float64       `json:"price"`
	Quantity      int           `json:"quantity"`
	Description   string        `json:"description"`
	ImageURL      string        `json:"imageUrl"`
	Discount      float64       `json:"discount"`
	AverageRating float64       `json:"averageRating"`
	CreatedAt     string        `json:"createdAt"`
	StoreID       uint          `json:"storeId"`
	StoreName     string        `json:"storeName"`
	Tags          []TagResponse `json:"tags"`
}

// NewProductResponse expects p.Store and p.Tags to be loaded
func NewProductResponse(p models.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      p.Quantity,
		Description:   p.Description,
		ImageURL:      p.ImageURL,
		Discount:      p.Discount,
		AverageRating: p.AverageRating,
		CreatedAt:     p.CreatedAt.Format(ProductDateLayout),
		StoreID:       p.StoreID,
		StoreName:     p.Store.Name,
		Tags:          NewTagResponses(p.Tags),
	}
}

func NewProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}
