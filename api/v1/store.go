package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/services"
)

// StoreController handles store-related API endpoints
type StoreController struct {
	stores *services.StoreService
}

// NewStoreController creates a new store controller
func NewStoreController(stores *services.StoreService) *StoreController {
	return &StoreController{stores: stores}
}

// RegisterRoutes registers store routes
func (sc *StoreController) RegisterRoutes(router *gin.RouterGroup) {
	stores := router.Group("/store")
	{
		stores.POST("", sc.CreateStore)
		stores.GET("", sc.ListStores)
		stores.GET("/my", sc.ListMyStores)
		stores.GET("/public", sc.ListPublicStores)
		stores.GET("/public/:id", sc.GetPublicStore)
		stores.GET("/:id", sc.GetStore)
		stores.PUT("/:id", sc.UpdateStore)
		stores.DELETE("/:id", sc.DeleteStore)
	}
}

// CreateStore godoc
// @Summary Create a store owned by the caller
// @Tags stores
// @Accept json
// @Produce json
// @Param store body dto.CreateStoreRequest true "Store data"
// @Success 201 {object} dto.StoreResponse
// @Router /store [post]
func (sc *StoreController) CreateStore(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := sc.stores.CreateStore(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": dto.NewStoreResponse(store)})
}

// UpdateStore godoc
// @Summary Partially update a store (owner or admin)
// @Tags stores
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param store body dto.UpdateStoreRequest true "Fields to change"
// @Success 200 {object} dto.StoreResponse
// @Router /store/{id} [put]
func (sc *StoreController) UpdateStore(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := sc.stores.UpdateStore(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewStoreResponse(store)})
}

func (sc *StoreController) DeleteStore(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := sc.stores.DeleteStore(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (sc *StoreController) ListStores(c *gin.Context) {
	stores, err := sc.stores.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewStoreResponses(stores)})
}

func (sc *StoreController) GetStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	store, err := sc.stores.GetStore(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewStoreResponse(store)})
}

func (sc *StoreController) ListMyStores(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stores, err := sc.stores.ListMyStores(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewStoreResponses(stores)})
}

// ListPublicStores lists stores without owner emails
func (sc *StoreController) ListPublicStores(c *gin.Context) {
	stores, err := sc.stores.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewPublicStoreResponses(stores)})
}

func (sc *StoreController) GetPublicStore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	store, err := sc.stores.GetStore(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewPublicStoreResponse(store)})
}
