package server

import (
	"net/http"

	"github.com/example/revoparts/pkg/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) createOrder(c *gin.Context) {
	var order models.Order
	if err := c.BindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	created, existing, ack, err := s.store.CreateOrder(c.Request.Context(), order)
	if err != nil {
		s.fail(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"success": false, "booking": existing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": ack})
}

// listOwnOrders returns the caller's orders. The requested email must
// match the token identity.
func (s *Server) listOwnOrders(c *gin.Context) {
	email := c.Query("email")
	if email != identityFrom(c).Email {
		c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	orders, err := s.store.OrdersByEmail(c.Request.Context(), email)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.store.ListOrders(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.store.FindOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// markOrderPaid records the payment and flips the order to paid with
// the same transaction id, one payment document per transition.
func (s *Server) markOrderPaid(c *gin.Context) {
	id := c.Param("id")

	var payment models.Payment
	if err := c.BindJSON(&payment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	payment.OrderID = id

	if _, err := s.store.RecordPayment(c.Request.Context(), payment); err != nil {
		s.fail(c, err)
		return
	}

	ack, err := s.store.MarkOrderPaid(c.Request.Context(), id, payment.TransactionID)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (s *Server) setOrderApproval(c *gin.Context) {
	var body struct {
		Approve string `json:"approve"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ack, err := s.store.SetOrderApproval(c.Request.Context(), c.Param("id"), body.Approve)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (s *Server) deleteOrder(c *gin.Context) {
	ack, err := s.store.DeleteOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}
