package server

import (
	"net/http"

	"github.com/example/revoparts/pkg/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) listReviews(c *gin.Context) {
	reviews, err := s.store.ListReviews(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (s *Server) createReview(c *gin.Context) {
	var review models.Review
	if err := c.BindJSON(&review); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ack, err := s.store.CreateReview(c.Request.Context(), review)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}
