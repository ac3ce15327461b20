package server

import (
	"net/http"

	"github.com/example/revoparts/pkg/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// upsertUserByEmail is the public registration/login path: last write
// wins on the profile fields and a fresh token comes back with the ack.
func (s *Server) upsertUserByEmail(c *gin.Context) {
	email := c.Param("email")

	var user models.User
	if err := c.BindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	user.Email = email

	ack, err := s.store.UpsertUser(c.Request.Context(), email, user)
	if err != nil {
		s.fail(c, err)
		return
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": ack, "token": token})
}

// upsertUser updates the caller's own profile, keyed by the body email.
func (s *Server) upsertUser(c *gin.Context) {
	var user models.User
	if err := c.BindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ack, err := s.store.UpsertUser(c.Request.Context(), user.Email, user)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ack)
}

func (s *Server) createUser(c *gin.Context) {
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	created, existing, ack, err := s.store.CreateUser(c.Request.Context(), models.User{
		Name:   body.Name,
		Email:  body.Email,
		Number: body.Phone,
	})
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

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.store.ListUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) findUsersByEmail(c *gin.Context) {
	users, err := s.store.FindUsersByEmail(c.Request.Context(), c.Query("email"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// isAdmin reports whether an email belongs to an admin. An account that
// does not exist reads as not-admin rather than an error.
func (s *Server) isAdmin(c *gin.Context) {
	user, err := s.store.FindUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": user.IsAdmin()})
}

// promoteUser serves PUT /user/admin/:email. The route is registered as
// /user/:email/:sub, so the first segment must be the literal "admin"
// and the target email rides in the second.
func (s *Server) promoteUser(c *gin.Context) {
	if c.Param("email") != "admin" {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}
	email := c.Param("sub")

	ack, err := s.store.PromoteUser(c.Request.Context(), email)
	if err != nil {
		s.fail(c, err)
		return
	}

	if cerr := s.roles.InvalidateRole(c.Request.Context(), email); cerr != nil {
		s.logger.Warn("role cache invalidation failed", zap.Error(cerr))
	}

	c.JSON(http.StatusOK, ack)
}

func (s *Server) deleteUser(c *gin.Context) {
	id := c.Param("id")

	// Resolve the email first so the role cache entry goes with the account.
	user, err := s.store.FindUserByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	ack, err := s.store.DeleteUser(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}

	if user != nil {
		if cerr := s.roles.InvalidateRole(c.Request.Context(), user.Email); cerr != nil {
			s.logger.Warn("role cache invalidation failed", zap.Error(cerr))
		}
	}

	c.JSON(http.StatusOK, ack)
}
