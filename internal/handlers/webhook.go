package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"webhook-verifier/internal/common/logging"
	"webhook-verifier/internal/replay"
	"webhook-verifier/internal/signature"
)

// HandleWebhook verifies an inbound webhook for the provider named in the
// path. Any verification failure yields 400 with the same body, whatever
// the cause.
func (h *Handlers) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["provider"]
	logger := h.logger.WithContext(r.Context()).WithFields(logging.Field{Key: "provider", Value: name})

	provider, ok := h.providers.Lookup(name)
	if !ok {
		h.sendError(w, http.StatusNotFound, "unknown provider")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	body, err := signature.PreserveRequestBody(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.sendError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		logger.Warn("Failed to read webhook body", logging.Err(err))
		h.sendError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	secret, err := signature.ResolveSecret(provider.SecretSource)
	if err != nil {
		logger.Error("Failed to resolve webhook secret", err)
	}

	headerValue := r.Header.Get(provider.Header)

	var valid bool
	ttl := h.replayTTL
	replayID := headerValue
	switch provider.Scheme {
	case signature.SchemeTimestamped:
		valid = h.verifier.VerifyTimestamped(provider.Name, headerValue, body, secret, provider.ToleranceDuration())
		ttl = 2 * provider.ToleranceDuration()
		// Rewordings of a verified header carry the same (t, v1) pair.
		parsed, _ := signature.ParseHeader(headerValue)
		replayID = parsed.Canonical()
	default:
		valid = h.verifier.VerifySimple(provider.Name, body, headerValue, secret)
	}

	if !valid {
		h.sendError(w, http.StatusBadRequest, "invalid signature")
		return
	}

	if h.guard != nil && ttl > 0 {
		seen, err := h.guard.Seen(r.Context(), replay.Key(provider.Name, replayID), ttl)
		switch {
		case err != nil:
			logger.Warn("Replay check unavailable, accepting verified webhook", logging.Err(err))
		case seen:
			if h.replays != nil {
				h.replays.ObserveReplay(provider.Name)
			}
			logger.Warn("Rejected replayed webhook")
			h.sendError(w, http.StatusConflict, "duplicate webhook")
			return
		}
	}

	logger.Info("Webhook accepted", logging.Int("bytes", len(body)))
	h.sendJSONResponse(w, map[string]string{"status": "ok"})
}
