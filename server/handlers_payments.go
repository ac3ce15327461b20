package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) createPaymentIntent(c *gin.Context) {
	var body struct {
		Total float64 `json:"total"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	secret, err := s.payments.CreateIntent(c.Request.Context(), body.Total)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}
