package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"webhook-verifier/internal/signature"
)

func TestSend(t *testing.T) {
	var gotPath, gotSig string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSig = r.Header.Get("X-Razorpay-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	opts := options{BaseURL: srv.URL, Path: "/webhook/razorpay", Secret: "test_secret"}
	require.NoError(t, send(srv.Client(), opts, &out))

	assert.Equal(t, "/webhook/razorpay", gotPath)
	assert.Equal(t, samplePayload, gotBody)
	assert.True(t, signature.VerifySimple(gotBody, gotSig, "test_secret"))
	assert.Equal(t, "Status: 200\n{\"status\":\"ok\"}\n", out.String())
}

func TestSendTruncatesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(strings.Repeat("x", 5000)))
	}))
	defer srv.Close()

	var out bytes.Buffer
	require.NoError(t, send(srv.Client(), options{BaseURL: srv.URL, Path: "/"}, &out))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Status: 400", lines[0])
	assert.Len(t, lines[1], 1000)
}

func TestSendTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	var out bytes.Buffer
	err := send(http.DefaultClient, options{BaseURL: url, Path: "/webhook/razorpay", Secret: "s"}, &out)
	assert.Error(t, err)
	assert.Empty(t, out.String())
}

func TestLoadOptionsDefaults(t *testing.T) {
	t.Setenv("BASE_URL", "")
	t.Setenv("WEBHOOK_PATH", "")
	t.Setenv("RAZORPAY_WEBHOOK_SECRET", "")

	opts := loadOptions()
	assert.Equal(t, "http://localhost:5000", opts.BaseURL)
	assert.Equal(t, "/webhook/razorpay", opts.Path)
	assert.Equal(t, "test_secret", opts.Secret)
}
