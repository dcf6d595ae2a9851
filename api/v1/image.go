package v1

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/services"
)

// ImageController uploads and serves product and store images
type ImageController struct {
	images *services.ImageService
}

// NewImageController creates a new image controller
func NewImageController(images *services.ImageService) *ImageController {
	return &ImageController{images: images}
}

// RegisterRoutes registers image routes
func (ic *ImageController) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/images", ic.Upload)
	router.GET("/images/*key", ic.Download)
}

// Upload godoc
// @Summary Upload an image
// @Description Returns the URL to put in a store or product imageUrl
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JPEG, PNG, GIF or WebP image"
// @Success 201 {object} dto.ImageResponse
// @Router /images [post]
func (ic *ImageController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse("request validation failed",
			map[string]string{"file": "is required"}))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	key, url, err := ic.images.Upload(c.Request.Context(), file, header.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": dto.ImageResponse{Key: key, URL: url}})
}

// Download streams a stored image
func (ic *ImageController) Download(c *gin.Context) {
	obj, err := ic.images.Open(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer obj.Body.Close()

	c.Header("Content-Type", obj.ContentType)
	if obj.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, obj.Body)
}
