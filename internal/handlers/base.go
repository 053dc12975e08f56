package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"webhook-verifier/internal/common/logging"
	"webhook-verifier/internal/replay"
	"webhook-verifier/internal/signature"
)

// ReplayRecorder is notified when a verified delivery is rejected as a replay.
type ReplayRecorder interface {
	ObserveReplay(provider string)
}

// Options configures the webhook handlers.
type Options struct {
	Providers    *signature.Config
	Verifier     *signature.Verifier
	Guard        replay.Guard
	Replays      ReplayRecorder
	ReplayTTL    time.Duration
	MaxBodyBytes int64
	Logger       logging.Logger
	Health       func(r *http.Request) error
}

type Handlers struct {
	providers    *signature.Config
	verifier     *signature.Verifier
	guard        replay.Guard
	replays      ReplayRecorder
	replayTTL    time.Duration
	maxBodyBytes int64
	logger       logging.Logger
	health       func(r *http.Request) error
}

const defaultMaxBodyBytes = 1 << 20

func New(opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = logging.GetGlobalLogger()
	}
	if opts.Verifier == nil {
		opts.Verifier = signature.NewVerifier(opts.Logger, nil)
	}
	if opts.Providers == nil {
		opts.Providers = &signature.Config{}
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	return &Handlers{
		providers:    opts.Providers,
		verifier:     opts.Verifier,
		guard:        opts.Guard,
		replays:      opts.Replays,
		replayTTL:    opts.ReplayTTL,
		maxBodyBytes: opts.MaxBodyBytes,
		logger:       opts.Logger.WithFields(logging.Field{Key: "component", Value: "handlers"}),
		health:       opts.Health,
	}
}

func (h *Handlers) sendJSONResponse(w http.ResponseWriter, data interface{}) {
	h.sendJSONStatus(w, http.StatusOK, data)
}

func (h *Handlers) sendJSONStatus(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", err)
	}
}

func (h *Handlers) sendError(w http.ResponseWriter, status int, message string) {
	h.sendJSONStatus(w, status, map[string]string{"error": message})
}
