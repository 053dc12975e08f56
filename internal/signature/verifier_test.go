package signature

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"webhook-verifier/internal/common/logging"
)

type observation struct {
	provider string
	scheme   string
	reason   Reason
}

type fakeRecorder struct {
	mu  sync.Mutex
	obs []observation
}

func (f *fakeRecorder) Observe(provider, scheme string, reason Reason) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.obs = append(f.obs, observation{provider, scheme, reason})
}

func newTestVerifier(t *testing.T) (*Verifier, *fakeRecorder, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.NewZapLogger(logging.LogConfig{Level: logging.DebugLevel, Output: &buf})
	require.NoError(t, err)

	rec := &fakeRecorder{}
	return NewVerifier(logger, rec), rec, &buf
}

func TestVerifier_VerifySimple(t *testing.T) {
	v, rec, buf := newTestVerifier(t)
	body := []byte(`{"event":"payment.captured"}`)
	secret := "test_secret_razor"

	assert.True(t, v.VerifySimple("razorpay", body, SignSimple(body, secret), secret))
	assert.False(t, v.VerifySimple("razorpay", body, "deadbeef", secret))
	assert.False(t, v.VerifySimple("razorpay", body, "deadbeef", ""))

	require.Len(t, rec.obs, 3)
	assert.Equal(t, observation{"razorpay", SchemeSimple, ReasonNone}, rec.obs[0])
	assert.Equal(t, observation{"razorpay", SchemeSimple, ReasonMismatch}, rec.obs[1])
	assert.Equal(t, observation{"razorpay", SchemeSimple, ReasonMissingSecret}, rec.obs[2])

	output := buf.String()
	assert.Contains(t, output, "Signature verified")
	assert.Contains(t, output, "signature_mismatch")
	assert.Contains(t, output, "missing_secret")
	assert.NotContains(t, output, secret)
	assert.NotContains(t, output, "payment.captured")
}

func TestVerifier_VerifyTimestamped(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	pinClock(t, clock)

	v, rec, buf := newTestVerifier(t)
	body := []byte(`{"id":"evt_test"}`)
	secret := "whsec_test_key"

	fresh := SignTimestamped(clock.Unix(), body, secret)
	stale := SignTimestamped(clock.Unix()-100000, body, secret)

	assert.True(t, v.VerifyTimestamped("stripe", fresh, body, secret, DefaultTolerance))
	assert.False(t, v.VerifyTimestamped("stripe", stale, body, secret, DefaultTolerance))
	assert.False(t, v.VerifyTimestamped("stripe", "garbage", body, secret, DefaultTolerance))

	require.Len(t, rec.obs, 3)
	assert.Equal(t, ReasonNone, rec.obs[0].reason)
	assert.Equal(t, ReasonStaleTimestamp, rec.obs[1].reason)
	assert.Equal(t, ReasonMalformedHeader, rec.obs[2].reason)
	assert.Equal(t, SchemeTimestamped, rec.obs[0].scheme)

	output := buf.String()
	assert.NotContains(t, output, secret)
	_, v1, _ := strings.Cut(fresh, "v1=")
	assert.NotContains(t, output, v1)
}

func TestVerifier_NilDependencies(t *testing.T) {
	v := NewVerifier(nil, nil)
	body := []byte("x")

	assert.True(t, v.VerifySimple("p", body, SignSimple(body, "k"), "k"))
}

func TestVerifier_Concurrent(t *testing.T) {
	v, _, _ := newTestVerifier(t)
	body := []byte(`{"n":1}`)
	sig := SignSimple(body, "k")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, v.VerifySimple("p", body, sig, "k"))
		}()
	}
	wg.Wait()
}

func TestReasonLabel(t *testing.T) {
	assert.Equal(t, "valid", ReasonNone.Label())
	assert.Equal(t, "stale_timestamp", ReasonStaleTimestamp.Label())
}

func TestPreserveRequestBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/webhook/razorpay", strings.NewReader(`{"a":1}`))

	body, err := PreserveRequestBody(req)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(body))

	again, err := PreserveRequestBody(req)
	require.NoError(t, err)
	assert.Equal(t, body, again)
}
