package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/locvowork/employee_management_sample/employeeapi/internal/config"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/domain"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/handler"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/logger"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/metrics"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/service"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/service/serviceutils"
	"github.com/locvowork/employee_management_sample/employeeapi/internal/upstream"
	"github.com/locvowork/employee_management_sample/employeeapi/pkg/xlsxexport"
)

type App struct {
	Echo   *echo.Echo
	Client domain.EmployeeClient
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = serviceutils.HTTPErrorHandler
	return &App{Echo: e}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	return a.Wire(ctx, nil)
}

// Wire builds the dependency graph from DefaultEnvConfig. A nil client
// selects the HTTP upstream client.
func (a *App) Wire(ctx context.Context, client domain.EmployeeClient) error {
	cfg := config.DefaultEnvConfig
	if cfg == nil {
		return errors.New("config not loaded")
	}

	if client == nil {
		client = upstream.New(cfg.UPSTREAM_BASE_URL, cfg.UPSTREAM_TIMEOUT, cfg.UPSTREAM_MAX_IDLE_CONNS)
		logger.InfoLog(ctx, "Upstream employee service at %s", cfg.UPSTREAM_BASE_URL)
	}
	client = upstream.Instrument(client)
	if cfg.UPSTREAM_FALLBACK_ENABLED {
		client = upstream.WithFallback(client)
	}
	a.Client = client

	layout, err := xlsxexport.LoadLayout(cfg.EXPORT_LAYOUT_PATH)
	if err != nil {
		return fmt.Errorf("failed to load export layout: %w", err)
	}

	empSvc := service.NewEmployeeService(client, nil)
	empHandler := handler.NewEmployeeHandler(empSvc, layout)

	a.RegisterMiddlewares()
	a.RegisterRoutes(empHandler)
	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestID())
	a.Echo.Use(logger.Middleware())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
	if config.DefaultEnvConfig.METRICS_ENABLED {
		a.Echo.Use(metrics.Middleware())
	}
}

func (a *App) RegisterRoutes(empHandler *handler.EmployeeHandler) {
	a.Echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "UP"})
	})
	if config.DefaultEnvConfig.METRICS_ENABLED {
		a.Echo.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	empHandler.Register(a.Echo.Group(config.DefaultEnvConfig.API_PREFIX))
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// SHUTDOWN_TIMEOUT.
func (a *App) Run(ctx context.Context) error {
	addr := ":" + config.DefaultEnvConfig.APP_PORT
	errCh := make(chan error, 1)
	go func() {
		logger.InfoLog(ctx, "Starting server on %s", addr)
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.InfoLog(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultEnvConfig.SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
