package signature

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"webhook-verifier/internal/common/logging"
)

const (
	SchemeSimple      = "simple"
	SchemeTimestamped = "timestamped"
)

// Recorder receives one observation per verification.
type Recorder interface {
	Observe(provider, scheme string, reason Reason)
}

type noopRecorder struct{}

func (noopRecorder) Observe(string, string, Reason) {}

// Verifier wraps VerifySimple and VerifyTimestamped with logging and
// metrics. The verdict it returns is exactly the verdict of the wrapped
// function; the failure reason only reaches the logger and the recorder.
// Secrets, signatures and bodies are never logged.
type Verifier struct {
	logger   logging.Logger
	recorder Recorder
}

// NewVerifier creates a new signature verifier
func NewVerifier(logger logging.Logger, recorder Recorder) *Verifier {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if recorder == nil {
		recorder = noopRecorder{}
	}

	return &Verifier{
		logger:   logger.WithFields(logging.Field{Key: "component", Value: "signature"}),
		recorder: recorder,
	}
}

// VerifySimple checks a simple-scheme signature for provider.
func (v *Verifier) VerifySimple(provider string, body []byte, signatureHex, secret string) bool {
	reason := checkSimple(body, signatureHex, secret)
	v.report(provider, SchemeSimple, reason)
	return reason == ReasonNone
}

// VerifyTimestamped checks a timestamped-scheme header for provider.
func (v *Verifier) VerifyTimestamped(provider, header string, body []byte, secret string, tolerance time.Duration) bool {
	reason := checkTimestamped(header, body, secret, tolerance)
	v.report(provider, SchemeTimestamped, reason)
	return reason == ReasonNone
}

func (v *Verifier) report(provider, scheme string, reason Reason) {
	v.recorder.Observe(provider, scheme, reason)

	if reason == ReasonNone {
		v.logger.Debug("Signature verified",
			logging.Field{Key: "provider", Value: provider},
			logging.Field{Key: "scheme", Value: scheme},
		)
		return
	}

	v.logger.Warn("Signature verification failed",
		logging.Field{Key: "provider", Value: provider},
		logging.Field{Key: "scheme", Value: scheme},
		logging.Field{Key: "reason", Value: string(reason)},
	)
}

// PreserveRequestBody reads the request body and replaces it with a reader
// over the same bytes so later handlers can read it again.
func PreserveRequestBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.Body = io.NopCloser(bytes.NewReader(body))

	return body, nil
}
