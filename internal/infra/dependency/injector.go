// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/personal-finance/backend/config"
	"github.com/personal-finance/backend/internal/application/adapter"
	"github.com/personal-finance/backend/internal/application/usecase/account"
	"github.com/personal-finance/backend/internal/application/usecase/auth"
	"github.com/personal-finance/backend/internal/application/usecase/budget"
	"github.com/personal-finance/backend/internal/application/usecase/category"
	"github.com/personal-finance/backend/internal/application/usecase/notification"
	"github.com/personal-finance/backend/internal/application/usecase/pot"
	"github.com/personal-finance/backend/internal/application/usecase/recurring"
	"github.com/personal-finance/backend/internal/application/usecase/transaction"
	"github.com/personal-finance/backend/internal/infra/server/router"
	"github.com/personal-finance/backend/internal/integration/adapters"
	"github.com/personal-finance/backend/internal/integration/entrypoint/controller"
	"github.com/personal-finance/backend/internal/integration/entrypoint/middleware"
	"github.com/personal-finance/backend/internal/integration/persistence"
	"github.com/personal-finance/backend/internal/integration/worker"
)

const (
	loginMaxAttempts = 5
	loginWindow      = time.Minute
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Router      *router.Router
	Scheduler   *worker.RecurringScheduler
	RateLimiter *middleware.RateLimiter // nil when API rate limiting is disabled
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, which disables real-time notification delivery.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient, clock adapter.Clock) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	potRepo := persistence.NewPotRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(adapters.DefaultBcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, clock)

	var publisher adapter.NotificationPublisher
	if redisClient != nil {
		publisher = adapters.NewRedisNotificationPublisher(redisClient, cfg.Redis.Channel)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, clock)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo, clock)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo, clock)
	ensureCategoryUseCase := category.NewEnsureCategoryUseCase(categoryRepo, clock)

	// Create notification use cases
	notifyUserUseCase := notification.NewNotifyUserUseCase(notificationRepo, publisher, clock)
	listNotificationsUseCase := notification.NewListNotificationsUseCase(notificationRepo)
	markNotificationReadUseCase := notification.NewMarkNotificationReadUseCase(notificationRepo)
	markAllNotificationsReadUseCase := notification.NewMarkAllNotificationsReadUseCase(notificationRepo)

	// Create budget use cases
	utilizationCalculator := budget.NewUtilizationCalculator(transactionRepo, clock)
	checkBudgetLimitUseCase := budget.NewCheckBudgetLimitUseCase(budgetRepo, utilizationCalculator)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, clock)
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo)
	getBudgetByCategoryUseCase := budget.NewGetBudgetByCategoryUseCase(budgetRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	listNearLimitUseCase := budget.NewListNearLimitBudgetsUseCase(budgetRepo, utilizationCalculator, cfg.Budget.AlertThreshold)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, clock)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	utilizationUseCase := budget.NewGetBudgetUtilizationUseCase(budgetRepo, utilizationCalculator)

	// Create transaction use cases
	budgetAlert := transaction.NewBudgetAlert(budgetRepo, utilizationCalculator, notifyUserUseCase, cfg.Budget.AlertThreshold)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(
		transactionRepo, budgetRepo, potRepo, ensureCategoryUseCase, checkBudgetLimitUseCase, budgetAlert, clock,
	)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(
		transactionRepo, budgetRepo, potRepo, ensureCategoryUseCase, checkBudgetLimitUseCase, budgetAlert, clock,
	)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(transactionRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, clock)
	restoreTransactionUseCase := transaction.NewRestoreTransactionUseCase(transactionRepo, clock)
	overviewUseCase := transaction.NewGetOverviewUseCase(transactionRepo)
	analyticsUseCase := transaction.NewGetAnalyticsUseCase(transactionRepo, clock)
	recurringBillsUseCase := transaction.NewGetRecurringBillsSummaryUseCase(transactionRepo, clock)

	// Create pot use cases
	createPotUseCase := pot.NewCreatePotUseCase(potRepo, clock)
	getPotUseCase := pot.NewGetPotUseCase(potRepo)
	listPotsUseCase := pot.NewListPotsUseCase(potRepo)
	updatePotUseCase := pot.NewUpdatePotUseCase(potRepo, clock)
	deletePotUseCase := pot.NewDeletePotUseCase(potRepo)
	adjustPotBalanceUseCase := pot.NewAdjustPotBalanceUseCase(potRepo, clock)

	// Create account use cases
	summaryUseCase := account.NewGetSummaryUseCase(transactionRepo)
	potsOverviewUseCase := account.NewGetPotsOverviewUseCase(potRepo)
	budgetOverviewUseCase := account.NewGetBudgetOverviewUseCase(budgetRepo, utilizationCalculator)

	// Create the recurring scheduler
	advanceRecurringUseCase := recurring.NewAdvanceRecurringUseCase(transactionRepo, clock)
	processDueRecurringUseCase := recurring.NewProcessDueRecurringUseCase(transactionRepo, advanceRecurringUseCase, clock)
	schedulerConfig := worker.DefaultSchedulerConfig()
	schedulerConfig.CronSpec = cfg.Scheduler.CronSpec
	schedulerConfig.Location = cfg.Scheduler.Location()
	scheduler := worker.NewRecurringScheduler(processDueRecurringUseCase, schedulerConfig)

	// Create controllers
	var redisHealth, schedulerHealth controller.HealthChecker
	if redisClient != nil {
		redisHealth = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	}
	if cfg.Scheduler.Enabled {
		schedulerHealth = scheduler.IsStarted
	}

	controllers := router.Controllers{
		Health: controller.NewHealthController(func() bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}, redisHealth, schedulerHealth),
		Auth: controller.NewAuthController(registerUseCase, loginUseCase),
		Budget: controller.NewBudgetController(
			createBudgetUseCase,
			getBudgetUseCase,
			getBudgetByCategoryUseCase,
			listBudgetsUseCase,
			listNearLimitUseCase,
			updateBudgetUseCase,
			deleteBudgetUseCase,
			utilizationUseCase,
			checkBudgetLimitUseCase,
		),
		Transaction: controller.NewTransactionController(
			createTransactionUseCase,
			getTransactionUseCase,
			listTransactionsUseCase,
			updateTransactionUseCase,
			deleteTransactionUseCase,
			restoreTransactionUseCase,
			overviewUseCase,
			analyticsUseCase,
		),
		Pot: controller.NewPotController(
			createPotUseCase,
			getPotUseCase,
			listPotsUseCase,
			updatePotUseCase,
			deletePotUseCase,
			adjustPotBalanceUseCase,
		),
		Category: controller.NewCategoryController(
			listCategoriesUseCase,
			createCategoryUseCase,
			updateCategoryUseCase,
		),
		Notification: controller.NewNotificationController(
			listNotificationsUseCase,
			markNotificationReadUseCase,
			markAllNotificationsReadUseCase,
		),
		Account: controller.NewAccountController(
			summaryUseCase,
			potsOverviewUseCase,
			budgetOverviewUseCase,
			recurringBillsUseCase,
		),
	}

	// Create middleware
	// Use higher login limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, loginWindow)
	} else {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(loginMaxAttempts, loginWindow)
	}

	var apiRateLimiter *middleware.RateLimiter
	if cfg.RateLimit.MaxRequests > 0 {
		apiRateLimiter = middleware.NewRateLimiterWithConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	}

	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(controllers, authMiddleware, loginRateLimiter, apiRateLimiter)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Router:      r,
		Scheduler:   scheduler,
		RateLimiter: apiRateLimiter,
	}
}
