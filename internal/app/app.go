package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"webhook-verifier/internal/common/logging"
	"webhook-verifier/internal/config"
	"webhook-verifier/internal/metrics"
	"webhook-verifier/internal/redis"
	"webhook-verifier/internal/replay"
	"webhook-verifier/internal/signature"
)

// App holds all the application dependencies
type App struct {
	Config      *config.Config
	Providers   *signature.Config
	Verifier    *signature.Verifier
	Metrics     *metrics.VerificationMetrics
	Registry    *prometheus.Registry
	RedisClient *redis.Client
	Guard       replay.Guard
	Logger      logging.Logger
}

// New creates a new application instance with all dependencies
func New(cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logging.GetGlobalLogger().WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	if err := app.initializeProviders(); err != nil {
		return nil, err
	}

	app.initializeMetrics()
	app.Verifier = signature.NewVerifier(logging.GetGlobalLogger(), app.Metrics)

	if err := app.initializeRedis(); err != nil {
		return nil, err
	}

	return app, nil
}

func (app *App) initializeProviders() error {
	if app.Config.WebhookConfigFile == "" {
		app.Providers = signature.DefaultConfig(app.Config.StripeToleranceSeconds())
	} else {
		providers, err := signature.LoadConfigFile(app.Config.WebhookConfigFile)
		if err != nil {
			return err
		}
		app.Providers = providers
	}

	for _, p := range app.Providers.Providers {
		fields := []logging.Field{
			logging.String("provider", p.Name),
			logging.String("scheme", p.Scheme),
			logging.String("header", p.Header),
		}

		secret, err := signature.ResolveSecret(p.SecretSource)
		if err != nil || secret == "" {
			// Requests still get a 400; the warning makes the cause findable.
			app.Logger.Warn("Provider secret is not set, all deliveries will be rejected", fields...)
			continue
		}
		app.Logger.Info("Provider registered", fields...)
	}

	return nil
}

func (app *App) initializeMetrics() {
	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.Metrics = metrics.NewVerificationMetrics(app.Registry)
}

// Cleanup releases resources held by the application
func (app *App) Cleanup() {
	if app.RedisClient != nil {
		if err := app.RedisClient.Close(); err != nil {
			app.Logger.Warn("Error closing Redis client", logging.Err(err))
		}
	}
}
