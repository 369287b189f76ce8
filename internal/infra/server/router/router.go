// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/personal-finance/backend/internal/integration/entrypoint/controller"
	"github.com/personal-finance/backend/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP handlers mounted by the router.
type Controllers struct {
	Health       *controller.HealthController
	Auth         *controller.AuthController
	Budget       *controller.BudgetController
	Transaction  *controller.TransactionController
	Pot          *controller.PotController
	Category     *controller.CategoryController
	Notification *controller.NotificationController
	Account      *controller.AccountController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine           *gin.Engine
	controllers      Controllers
	authMiddleware   *middleware.AuthMiddleware
	loginRateLimiter *middleware.RateLimiter
	apiRateLimiter   *middleware.RateLimiter // Budget and transaction groups; nil disables limiting
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	authMiddleware *middleware.AuthMiddleware,
	loginRateLimiter *middleware.RateLimiter,
	apiRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		controllers:      controllers,
		authMiddleware:   authMiddleware,
		loginRateLimiter: loginRateLimiter,
		apiRateLimiter:   apiRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.controllers.Auth.Register)
		auth.POST("/login", r.limit(r.loginRateLimiter), r.controllers.Auth.Login)
	}

	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	budgets := protected.Group("/budgets")
	budgets.Use(r.limit(r.apiRateLimiter))
	{
		budgets.POST("", r.controllers.Budget.Create)
		budgets.GET("", r.controllers.Budget.List)
		budgets.GET("/near-limit", r.controllers.Budget.NearLimit)
		budgets.GET("/category/:category", r.controllers.Budget.GetByCategory)
		budgets.GET("/:id", r.controllers.Budget.Get)
		budgets.PUT("/:id", r.controllers.Budget.Update)
		budgets.DELETE("/:id", r.controllers.Budget.Delete)
		budgets.GET("/:id/utilization", r.controllers.Budget.Utilization)
		budgets.POST("/:id/check-limit", r.controllers.Budget.CheckLimit)
	}

	transactions := protected.Group("/transactions")
	transactions.Use(r.limit(r.apiRateLimiter))
	{
		transactions.POST("", r.controllers.Transaction.Create)
		transactions.GET("", r.controllers.Transaction.List)
		transactions.GET("/overview", r.controllers.Transaction.Overview)
		transactions.GET("/analytics", r.controllers.Transaction.Analytics)
		transactions.GET("/:id", r.controllers.Transaction.Get)
		transactions.PUT("/:id", r.controllers.Transaction.Update)
		transactions.DELETE("/:id", r.controllers.Transaction.Delete)
		transactions.PATCH("/:id/restore", r.controllers.Transaction.Restore)
	}

	pots := protected.Group("/pots")
	{
		pots.POST("", r.controllers.Pot.Create)
		pots.GET("", r.controllers.Pot.List)
		pots.GET("/:id", r.controllers.Pot.Get)
		pots.PUT("/:id", r.controllers.Pot.Update)
		pots.DELETE("/:id", r.controllers.Pot.Delete)
		pots.PATCH("/:id/balance", r.controllers.Pot.AdjustBalance)
	}

	categories := protected.Group("/categories")
	{
		categories.GET("", r.controllers.Category.List)
		categories.POST("", r.controllers.Category.Create)
		categories.PUT("/:id", r.controllers.Category.Update)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", r.controllers.Notification.List)
		notifications.PATCH("/read-all", r.controllers.Notification.MarkAllRead)
		notifications.PATCH("/:id/read", r.controllers.Notification.MarkRead)
	}

	protected.GET("/recurring-bills/summary", r.controllers.Account.RecurringBills)

	account := protected.Group("/account")
	{
		account.GET("/summary", r.controllers.Account.Summary)
		account.GET("/pots-overview", r.controllers.Account.PotsOverview)
		account.GET("/budget-overview", r.controllers.Account.BudgetOverview)
	}
}

// limit returns the limiter's middleware, or a pass-through when limiting is disabled.
func (r *Router) limit(limiter *middleware.RateLimiter) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return limiter.Middleware()
}
