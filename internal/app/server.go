package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"webhook-verifier/internal/common/logging"
	"webhook-verifier/internal/handlers"
	"webhook-verifier/internal/server"
)

// Handler builds the HTTP handler with all routes configured
func (app *App) Handler() http.Handler {
	opts := handlers.Options{
		Providers:    app.Providers,
		Verifier:     app.Verifier,
		Guard:        app.Guard,
		Replays:      app.Metrics,
		ReplayTTL:    app.Config.ReplayTTLDuration(),
		MaxBodyBytes: app.Config.MaxBodyBytesLimit(),
		Logger:       logging.GetGlobalLogger(),
	}
	if app.RedisClient != nil {
		opts.Health = func(r *http.Request) error {
			return app.RedisClient.Health(r.Context())
		}
	}

	router := mux.NewRouter()
	SetupRoutes(router, handlers.New(opts), app.Registry)
	return router
}

// NewServer creates the HTTP server for the application
func (app *App) NewServer() *server.Server {
	return server.New(app.Handler(), app.Config.Port)
}
