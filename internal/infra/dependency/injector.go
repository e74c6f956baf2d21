// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wedding-planner/backend/config"
	"github.com/wedding-planner/backend/internal/application/adapter"
	"github.com/wedding-planner/backend/internal/application/usecase/auth"
	"github.com/wedding-planner/backend/internal/application/usecase/budget"
	"github.com/wedding-planner/backend/internal/application/usecase/suggestion"
	"github.com/wedding-planner/backend/internal/infra/server/router"
	"github.com/wedding-planner/backend/internal/integration/adapters"
	"github.com/wedding-planner/backend/internal/integration/email"
	"github.com/wedding-planner/backend/internal/integration/entrypoint/controller"
	"github.com/wedding-planner/backend/internal/integration/entrypoint/middleware"
	"github.com/wedding-planner/backend/internal/integration/persistence"
)

// Options carries optional external dependencies. Every field may be nil;
// the injector then falls back to the configured production implementation
// or leaves the feature disabled.
type Options struct {
	Redis       *redis.Client
	EmailSender adapter.EmailSender
	Advisor     adapter.BudgetAdvisor
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, opts Options) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)

	var planRepo adapter.BudgetPlanRepository = persistence.NewBudgetPlanRepository(db)
	if opts.Redis != nil {
		planRepo = persistence.NewCachedBudgetPlanRepository(planRepo, opts.Redis, cfg.Budget.CacheTTL)
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)

	advisor := opts.Advisor
	if advisor == nil {
		advisor = adapters.NewGeminiService(cfg.Gemini.APIKey)
	}

	var notifier budget.PlanNotifier
	if opts.EmailSender != nil {
		notifier = email.NewService(opts.EmailSender)
	} else if cfg.Email.ResendAPIKey != "" {
		notifier = email.NewService(email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail))
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create budget use cases
	createPlanUseCase := budget.NewCreatePlanUseCase(planRepo, budget.DefaultAllocationPolicy(), notifier)
	getPlanUseCase := budget.NewGetPlanUseCase(planRepo)
	adjustPlanUseCase := budget.NewAdjustPlanUseCase(planRepo, budget.DefaultVendorCollections(), cfg.Budget.AutoAdjust)
	addVendorUseCase := budget.NewAddVendorUseCase(planRepo)
	deletePlanUseCase := budget.NewDeletePlanUseCase(planRepo)
	generateTipsUseCase := suggestion.NewGenerateTipsUseCase(planRepo, advisor)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	budgetController := controller.NewBudgetController(
		createPlanUseCase,
		getPlanUseCase,
		adjustPlanUseCase,
		addVendorUseCase,
		deletePlanUseCase,
		generateTipsUseCase,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, authController, budgetController, loginRateLimiter, authMiddleware)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
