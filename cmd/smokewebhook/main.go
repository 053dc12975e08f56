// Command smokewebhook posts one signed Razorpay-style webhook to a running
// verifier and prints the response.
//
// Environment Variables:
//   - BASE_URL: Verifier base URL (default: http://localhost:5000)
//   - WEBHOOK_PATH: Path to post to (default: /webhook/razorpay)
//   - RAZORPAY_WEBHOOK_SECRET: Signing secret (default: test_secret)
package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"webhook-verifier/internal/signature"
)

const (
	signatureHeader = "X-Razorpay-Signature"
	maxPrintedBytes = 1000
)

var samplePayload = []byte(`{"event":"payment.captured","payload":{"id":"test_payment","amount":100}}`)

type options struct {
	BaseURL string
	Path    string
	Secret  string
}

func loadOptions() options {
	return options{
		BaseURL: getEnv("BASE_URL", "http://localhost:5000"),
		Path:    getEnv("WEBHOOK_PATH", "/webhook/razorpay"),
		Secret:  getEnv("RAZORPAY_WEBHOOK_SECRET", "test_secret"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// send posts the signed sample payload and writes the status line and the
// start of the response body to out.
func send(client *http.Client, opts options, out io.Writer) error {
	req, err := http.NewRequest(http.MethodPost, opts.BaseURL+opts.Path, bytes.NewReader(samplePayload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signatureHeader, signature.SignSimple(samplePayload, opts.Secret))

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPrintedBytes))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Status:", resp.StatusCode)
	fmt.Fprintln(out, string(body))
	return nil
}

func main() {
	_ = godotenv.Load()

	client := &http.Client{Timeout: 10 * time.Second}
	if err := send(client, loadOptions(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error sending webhook:", err)
		os.Exit(2)
	}
}
