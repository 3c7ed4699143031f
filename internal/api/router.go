package api

import (
	"net/http" // HTTP status codes

	"household_ledger/internal/ledger"     // Ledger service
	"household_ledger/internal/middleware" // Gin middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Structured logging
)

// Version is reported by the root endpoint
const Version = "0.1.0"

// RouterConfig carries the HTTP level settings
type RouterConfig struct {
	CORSOrigins    []string // Allowed cross-origin request sources
	TrustedProxies []string // Proxies whose forwarding headers are honored
}

// NewRouter wires every route of the ledger API
func NewRouter(svc *ledger.Service, cfg RouterConfig, log logrus.FieldLogger) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORSMiddleware(cfg.CORSOrigins))

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Household Ledger API", "version": Version})
	})
	r.GET("/health", HealthHandler(svc, log))

	requireUser := middleware.JWTAuthMiddleware(svc, log)

	// Auth routes
	authGroup := r.Group("/auth")
	authGroup.POST("/register", RegisterHandler(svc, log))          // Registration endpoint
	authGroup.POST("/login", LoginHandler(svc, log))                // Login endpoint
	authGroup.GET("/me", requireUser, MeHandler())                  // Current user
	authGroup.DELETE("/me", requireUser, DeleteMeHandler(svc, log)) // Account deletion

	// Category routes (protected by JWT)
	categories := r.Group("/categories", requireUser)
	categories.POST("", CreateCategoryHandler(svc, log))
	categories.GET("", ListCategoriesHandler(svc, log))
	categories.GET("/recurring/unregistered", UnregisteredRecurringHandler(svc, log))
	categories.GET("/:id", GetCategoryHandler(svc, log))
	categories.PUT("/:id", UpdateCategoryHandler(svc, log))
	categories.DELETE("/:id", DeleteCategoryHandler(svc, log))

	// Transaction routes (protected by JWT)
	transactions := r.Group("/transactions", requireUser)
	transactions.POST("", CreateTransactionHandler(svc, log))
	transactions.GET("", ListTransactionsHandler(svc, log))
	transactions.GET("/:id", GetTransactionHandler(svc, log))
	transactions.PUT("/:id", UpdateTransactionHandler(svc, log))
	transactions.DELETE("/:id", DeleteTransactionHandler(svc, log))

	// Budget routes (protected by JWT)
	budgets := r.Group("/budgets", requireUser)
	budgets.POST("", CreateBudgetHandler(svc, log))
	budgets.GET("", ListBudgetsHandler(svc, log))
	budgets.GET("/:id", GetBudgetHandler(svc, log))
	budgets.PUT("/:id", UpdateBudgetHandler(svc, log))
	budgets.DELETE("/:id", DeleteBudgetHandler(svc, log))

	return r, nil
}

// HealthHandler reports whether the database is reachable
func HealthHandler(svc *ledger.Service, log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Ping(c.Request.Context()); err != nil {
			log.WithField("error", err.Error()).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
