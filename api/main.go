package api

import (
	"context"
	"fmt"

	"github.com/brpaz/echozap"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/healthmitra/insights/alerts"
	"github.com/healthmitra/insights/config"
	"github.com/healthmitra/insights/errors"
	"github.com/healthmitra/insights/insights"
	"github.com/healthmitra/insights/logger"
	"github.com/healthmitra/insights/observations"
	"github.com/healthmitra/insights/reminders"
	"github.com/healthmitra/insights/risk"
	"github.com/healthmitra/insights/store"
	"github.com/healthmitra/insights/subjects"
	"github.com/healthmitra/insights/thresholds"
	"github.com/healthmitra/insights/trend"
)

func Start(e *echo.Echo, cfg *config.Config, log *zap.SugaredLogger, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(fmt.Sprintf(":%d", cfg.HttpPort)); err != nil {
					log.Infow("http server stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

func SetReady(healthCheck *HealthCheck, db *mongo.Database, lifecycle fx.Lifecycle) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.Client().Ping(ctx, nil); err != nil {
				return err
			}

			// Lifecycle hooks run in topological order, so mongo indexes
			// are in place before the service reports ready.
			healthCheck.SetReady(true)
			return nil
		},
		OnStop: nil,
	})
}

func NewServer(handler *Handler, healthCheck *HealthCheck, log *zap.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(echozap.ZapLogger(log))

	e.HTTPErrorHandler = errors.CustomHTTPErrorHandler

	e.GET("/ready", healthCheck.Ready)
	handler.RegisterRoutes(e)

	return e, nil
}

// Dependencies is the full DI graph of the service. The admin CLI
// reuses it for one-shot commands.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			logger.NewProductionLogger,
			logger.Sugar,
			config.New,
			store.NewConfig,
			store.GetConnectionString,
			store.NewClient,
			store.NewDatabase,
			thresholds.NewConfig,
			thresholds.NewCatalog,
			risk.NewClassifier,
			trend.NewAnalyzer,
			observations.NewRepository,
			subjects.NewRepository,
			alerts.NewLogTransport,
			alerts.NewDeliveriesRepository,
			alerts.NewDispatcher,
			insights.NewRepository,
			insights.NewService,
			reminders.NewRepository,
			reminders.NewSchedulerConfig,
			reminders.NewScheduler,
			NewHealthCheck,
			NewHandler,
			NewServer,
		),
	}
}

func MainLoop() {
	options := append(
		Dependencies(),
		fx.Invoke(func(*reminders.Scheduler) {}),
		fx.Invoke(SetReady),
		fx.Invoke(Start),
	)
	fx.New(options...).Run()
}
