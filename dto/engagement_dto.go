package dto

import "github.com/storefront-api/models"

// CommentDateLayout renders comment timestamps as yyyy-MM-dd HH:mm:ss
const CommentDateLayout = "2006-01-02 15:04:05"

// RatingRequest carries a score between 1 and 5
type RatingRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RatingResponse reports a product's average after a read or mutation
type RatingResponse struct {
	ProductID     uint    `json:"productId"`
	AverageRating float64 `json:"averageRating"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

// CommentResponse carries the author's display name, resolved at read time
type CommentResponse struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"productId"`
	UserID    uint   `json:"userId"`
	UserName  string `json:"userName"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

// NewCommentResponse expects c.User to be loaded
func NewCommentResponse(c models.ProductComment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		ProductID: c.ProductID,
		UserID:    c.UserID,
		UserName:  c.User.FullName(),
		Comment:   c.Comment,
		CreatedAt: c.CreatedAt.Format(CommentDateLayout),
	}
}

func NewCommentResponses(comments []models.ProductComment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, NewCommentResponse(c))
	}
	return out
}

// TagRequest is validated for blankness by the tag service, not by binding,
// so that whitespace-only names get the same error as empty ones.
type TagRequest struct {
	TagName string `json:"tagName"`
}

type TagResponse struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"productId"`
	TagName   string `json:"tagName"`
}

func NewTagResponse(t models.ProductTag) TagResponse {
	return TagResponse{ID: t.ID, ProductID: t.ProductID, TagName: t.TagName}
}

func NewTagResponses(tags []models.ProductTag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, NewTagResponse(t))
	}
	return out
}

// ImageResponse returns the reference to store in imageUrl fields
type ImageResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
