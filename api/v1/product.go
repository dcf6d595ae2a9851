package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/services"
)

// ProductController handles the product catalog and product ratings
type ProductController struct {
	products *services.ProductService
	ratings  *services.RatingService
}

// NewProductController creates a new product controller
func NewProductController(products *services.ProductService, ratings *services.RatingService) *ProductController {
	return &ProductController{products: products, ratings: ratings}
}

// RegisterRoutes registers product and rating routes
func (pc *ProductController) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", pc.ListProducts)
		products.GET("/:id", pc.GetProduct)
		products.PUT("/:id", pc.UpdateProduct)
		products.DELETE("/:id", pc.DeleteProduct)

		products.GET("/store/:storeId", pc.ListStoreProducts)
		products.POST("/store/:storeId", pc.CreateProduct)

		products.POST("/:id/rating", pc.Rate)
		products.DELETE("/:id/rating", pc.RemoveRating)
		products.GET("/:id/rating/average", pc.GetAverageRating)
	}
}

// ListProducts godoc
// @Summary List products
// @Description Search name and description, filter by tags, sort by price or age
// @Tags products
// @Produce json
// @Param search query string false "Case-insensitive substring of name or description"
// @Param tags query []string false "Tag names; products with at least one match"
// @Param sortBy query string false "price_asc, price_desc, newest or oldest"
// @Success 200 {array} dto.ProductResponse
// @Router /products [get]
func (pc *ProductController) ListProducts(c *gin.Context) {
	filter := dto.ProductFilter{
		Search: c.Query("search"),
		Tags:   c.QueryArray("tags"),
		SortBy: c.Query("sortBy"),
	}

	products, err := pc.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewProductResponses(products)})
}

func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	product, err := pc.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewProductResponse(product)})
}

func (pc *ProductController) ListStoreProducts(c *gin.Context) {
	storeID, ok := parseID(c, "storeId")
	if !ok {
		return
	}

	products, err := pc.products.ListStoreProducts(c.Request.Context(), storeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewProductResponses(products)})
}

// CreateProduct godoc
// @Summary Add a product to a store (store owner or admin)
// @Tags products
// @Accept json
// @Produce json
// @Param storeId path int true "Store ID"
// @Param product body dto.CreateProductRequest true "Product data"
// @Success 201 {object} dto.ProductResponse
// @Router /products/store/{storeId} [post]
func (pc *ProductController) CreateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	storeID, ok := parseID(c, "storeId")
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := pc.products.CreateProduct(c.Request.Context(), actor, storeID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": dto.NewProductResponse(product)})
}

func (pc *ProductController) UpdateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := pc.products.UpdateProduct(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewProductResponse(product)})
}

func (pc *ProductController) DeleteProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := pc.products.DeleteProduct(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Rate godoc
// @Summary Rate a product 1 to 5; rating again replaces the previous value
// @Tags ratings
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param rating body dto.RatingRequest true "Rating"
// @Success 200 {object} dto.RatingResponse
// @Router /products/{id}/rating [post]
func (pc *ProductController) Rate(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.RatingRequest
	if !bindJSON(c, &req) {
		return
	}

	average, err := pc.ratings.Rate(c.Request.Context(), actor, id, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.RatingResponse{ProductID: id, AverageRating: average}})
}

// RemoveRating deletes the caller's rating; it succeeds when there is none
func (pc *ProductController) RemoveRating(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	average, err := pc.ratings.RemoveRating(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.RatingResponse{ProductID: id, AverageRating: average}})
}

func (pc *ProductController) GetAverageRating(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	average, err := pc.ratings.GetAverage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.RatingResponse{ProductID: id, AverageRating: average}})
}
