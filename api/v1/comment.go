package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storefront-api/dto"
	"github.com/storefront-api/services"
)

// CommentController handles product comments
type CommentController struct {
	comments *services.CommentService
}

// NewCommentController creates a new comment controller
func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// RegisterRoutes registers comment routes
func (cc *CommentController) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/comments")
	{
		comments.POST("/product/:productId", cc.CreateComment)
		comments.GET("/product/:productId", cc.ListComments)
		comments.DELETE("/:commentId", cc.DeleteComment)
	}
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	var req dto.CommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := cc.comments.CreateComment(c.Request.Context(), actor, productID, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": dto.NewCommentResponse(comment)})
}

// ListComments returns a product's comments oldest first
func (cc *CommentController) ListComments(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}

	comments, err := cc.comments.ListComments(c.Request.Context(), productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dto.NewCommentResponses(comments)})
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "commentId")
	if !ok {
		return
	}

	if err := cc.comments.DeleteComment(c.Request.Context(), actor, id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
