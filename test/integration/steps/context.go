// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/personal-finance/backend/config"
	"github.com/personal-finance/backend/internal/infra/dependency"
	"github.com/personal-finance/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// TestContext holds the state of one scenario.
type TestContext struct {
	uri      string
	client   *http.Client
	headers  map[string]string
	response *response

	accessToken   string
	currentUserID string
	saved         map[string]string

	subscription *redis.PubSub
}

type response struct {
	status int
	body   any
}

// suite holds resources shared by every scenario.
type suite struct {
	db       *mock.Db
	redis    *redis.Client
	clock    *mock.Time
	injector *dependency.Injector
	server   *httptest.Server
}

var (
	shared     *suite
	sharedOnce sync.Once
)

func testConfig() *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Budget.AlertThreshold = 80
	cfg.RateLimit.MaxRequests = 0
	cfg.Scheduler.Enabled = false
	return cfg
}

func sharedSuite() *suite {
	sharedOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		s := &suite{
			db:    mock.NewDb(),
			redis: mock.NewRedis(),
			clock: mock.NewTime(),
		}
		s.injector = dependency.NewInjector(testConfig(), s.db.DbConn, s.redis, s.clock)
		s.server = httptest.NewServer(s.injector.Router.Setup("test"))
		shared = s
	})
	return shared
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		sharedSuite()
	})

	ctx.AfterSuite(func() {
		if shared != nil && shared.server != nil {
			shared.server.Close()
		}
		mock.CloseRedis()
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	s := sharedSuite()
	test := &TestContext{
		uri:    s.server.URL,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.reset()
		if err := s.db.ClearDB(); err != nil {
			return ctx, fmt.Errorf("failed to clear database: %w", err)
		}
		if err := mock.ClearRedis(s.redis); err != nil {
			return ctx, fmt.Errorf("failed to clear redis: %w", err)
		}
		s.clock.SetCurrentTime(time.Now().UTC())
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.subscription != nil {
			_ = test.subscription.Close()
			test.subscription = nil
		}
		return ctx, nil
	})

	registerSetupSteps(ctx, test, s)
	registerRequestSteps(ctx, test)
	registerResponseSteps(ctx, test)
	registerDatabaseSteps(ctx, test, s)
	registerNotificationSteps(ctx, test, s)
}

func (t *TestContext) reset() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = ""
	t.saved = make(map[string]string)
}
