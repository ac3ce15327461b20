package server

import (
	"net/http"

	"github.com/example/revoparts/pkg/auth"
	"github.com/example/revoparts/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *gin.Engine
	store    Store
	roles    RoleCache
	payments IntentCreator
	tokens   *auth.TokenService
}

func NewServer(cfg *config.Config, logger *zap.Logger, store Store, roles RoleCache, payments IntentCreator, tokens *auth.TokenService) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(logger))
	router.Use(timeoutMiddleware(cfg.Server.RequestTimeout))

	return &Server{
		config:   cfg,
		logger:   logger,
		router:   router,
		store:    store,
		roles:    roles,
		payments: payments,
		tokens:   tokens,
	}
}

func (s *Server) SetupRoutes() {
	r := s.router

	// Health check
	r.GET("/health", s.health)

	// Public routes
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello From Revo Part's!")
	})
	r.GET("/part", s.listParts)
	r.GET("/managePart", s.listParts)
	r.GET("/review", s.listReviews)
	r.PUT("/user/:email", s.upsertUserByEmail)
	r.GET("/admin/:email", s.isAdmin)

	// Authenticated routes
	authed := r.Group("", s.requireAuth)
	{
		authed.GET("/purchase/:id", s.getPart)
		authed.PUT("/purchase/:id", s.setPartQuantity)
		authed.POST("/purchase", s.createOrder)
		authed.GET("/purchase", s.listOwnOrders)
		authed.DELETE("/purchase/:id", s.deleteOrder)

		authed.POST("/users", s.createUser)
		authed.PUT("/user", s.upsertUser)
		authed.GET("/user", s.findUsersByEmail)

		authed.GET("/order", s.listOrders)
		authed.GET("/order/:id", s.getOrder)
		authed.PATCH("/order/:id", s.markOrderPaid)
		authed.PUT("/order/:id", s.setOrderApproval)

		authed.POST("/review", s.createReview)
		authed.POST("/create-payment-intent", s.createPaymentIntent)
	}

	// Admin routes. The promote path is /user/admin/:email; gin's route
	// tree cannot mix the static "admin" segment with the :email wildcard
	// of PUT /user/:email, so it is registered with two params and the
	// handler pins the first segment to "admin".
	r.PUT("/user/:email/:sub", s.requireAuth, s.requireAdmin, s.promoteUser)
	admin := r.Group("", s.requireAuth, s.requireAdmin)
	{
		admin.GET("/users", s.listUsers)
		admin.DELETE("/user/:id", s.deleteUser)
		admin.POST("/part", s.createPart)
		admin.PUT("/update/:id", s.setPartQuantity)
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

func (s *Server) Start() error {
	addr := s.config.Server.Addr()
	s.logger.Info("API starting", zap.String("address", addr))
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
