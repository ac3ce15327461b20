package server

import (
	"net/http"

	"github.com/example/revoparts/pkg/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) listParts(c *gin.Context) {
	parts, err := s.store.ListParts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, parts)
}

func (s *Server) getPart(c *gin.Context) {
	part, err := s.store.FindPartByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, part)
}

func (s *Server) createPart(c *gin.Context) {
	var part models.Part
	if err := c.BindJSON(&part); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ack, err := s.store.CreatePart(c.Request.Context(), part)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

// setPartQuantity serves both the buyer path (PUT /purchase/:id) and
// the admin path (PUT /update/:id); only the guard chain differs.
func (s *Server) setPartQuantity(c *gin.Context) {
	var body struct {
		Quantity int32 `json:"quantity"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ack, err := s.store.SetPartQuantity(c.Request.Context(), c.Param("id"), body.Quantity)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}
