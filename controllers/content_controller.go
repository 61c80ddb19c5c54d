package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toolmarket-backend/apperr"
	"toolmarket-backend/models"
	"toolmarket-backend/repository"
)

// ContentController serves reviews and blogs.
type ContentController struct {
	reviews repository.ReviewRepository
	blogs   repository.BlogRepository
}

func NewContentController(reviews repository.ReviewRepository, blogs repository.BlogRepository) *ContentController {
	return &ContentController{reviews: reviews, blogs: blogs}
}

// ListReviews handles GET /reviews
func (cc *ContentController) ListReviews(c *gin.Context) {
	reviews, err := cc.reviews.All(c.Request.Context())
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview handles POST /review. Any JSON object is a review.
func (cc *ContentController) CreateReview(c *gin.Context) {
	var review models.Review
	if !bindJSON(c, &review) {
		return
	}

	res, err := cc.reviews.Create(c.Request.Context(), review)
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListBlogs handles GET /blogs
func (cc *ContentController) ListBlogs(c *gin.Context) {
	blogs, err := cc.blogs.All(c.Request.Context())
	if err != nil {
		apperr.Abort(c, apperr.StoreFailure(err))
		return
	}
	c.JSON(http.StatusOK, blogs)
}
