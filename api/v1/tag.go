package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/services"
)

// TagController handles product tags
type TagController struct {
	tags *services.TagService
}

// NewTagController creates a new tag controller
func NewTagController(tags *services.TagService) *TagController {
	return &TagController{tags: tags}
}

// RegisterRoutes registers tag routes
func (tc *TagController) RegisterRoutes(router *gin.RouterGroup) {
	tags := router.Group("/tags")
	{
		tags.GET("/all", tc.ListTags)
		tags.POST("/product/:productId", tc.CreateTag)
		tags.GET("/product/:productId", tc.ListProductTags)
		tags.DELETE("/:tagId", tc.DeleteTag)
	}
}

func (tc *TagController) CreateTag(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	var req dto.TagRequest
	if !bindJSON(c, &req) {
		return
	}

	tag, err := tc.tags.CreateTag(c.Request.Context(), productID, req.TagName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": dto.NewTagResponse(tag)})
}

func (tc *TagController) ListProductTags(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	tags, err := tc.tags.ListProductTags(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewTagResponses(tags)})
}

func (tc *TagController) ListTags(c *gin.Context) {
	tags, err := tc.tags.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewTagResponses(tags)})
}

func (tc *TagController) DeleteTag(c *gin.Context) {
	id, ok := parseID(c, "tagId")
	if !ok {
		return
	}

	if err := tc.tags.DeleteTag(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
