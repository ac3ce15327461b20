package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/example/revoparts/pkg/auth"
	"github.com/example/revoparts/pkg/models"
	"github.com/example/revoparts/pkg/payments"
	"github.com/example/revoparts/pkg/repository"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	identityKey  = "identity"
	requestIDKey = "request_id"
)

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header("X-Request-Id", id)
		c.Next()
	}
}

func loggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// timeoutMiddleware bounds every request; storage calls inherit the
// deadline through the request context.
func timeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requireAuth verifies the bearer token and stashes the caller identity.
// A missing header is 401; a present but invalid token is 403.
func (s *Server) requireAuth(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized access"})
		return
	}

	scheme, raw, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	identity, err := s.tokens.Verify(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	c.Set(identityKey, identity)
	c.Next()
}

// requireAdmin checks the stored role of the verified caller. An
// account that does not exist fails closed.
func (s *Server) requireAdmin(c *gin.Context) {
	identity := identityFrom(c)

	role, ok := s.roles.GetRoleCache(c.Request.Context(), identity.Email)
	if !ok {
		user, err := s.store.FindUserByEmail(c.Request.Context(), identity.Email)
		if err != nil {
			s.fail(c, err)
			c.Abort()
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
		role = user.Role
		if cerr := s.roles.CacheRole(c.Request.Context(), identity.Email, role); cerr != nil {
			s.logger.Warn("role cache write failed", zap.Error(cerr))
		}
	}

	if role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
		return
	}

	c.Next()
}

func identityFrom(c *gin.Context) auth.Identity {
	v, _ := c.Get(identityKey)
	identity, _ := v.(auth.Identity)
	return identity
}

// fail is the uniform error boundary: classify, log, answer with an
// error kind and nothing else.
func (s *Server) fail(c *gin.Context, err error) {
	var procErr *payments.ProcessorError

	switch {
	case errors.Is(err, repository.ErrBadID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_id"})
	case errors.As(err, &procErr):
		s.logger.Error("payment processor error",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment_processor"})
	default:
		s.logger.Error("storage error",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage"})
	}
}
