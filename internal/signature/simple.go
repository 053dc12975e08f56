package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySimple reports whether signatureHex is the lowercase hex encoding of
// HMAC-SHA256(secret, body). An empty secret always fails.
func VerifySimple(body []byte, signatureHex, secret string) bool {
	return checkSimple(body, signatureHex, secret) == ReasonNone
}

func checkSimple(body []byte, signatureHex, secret string) (reason Reason) {
	defer func() {
		if recover() != nil {
			reason = ReasonInternal
		}
	}()

	if secret == "" {
		return ReasonMissingSecret
	}

	expected := SignSimple(body, secret)
	if !Equal([]byte(expected), []byte(signatureHex)) {
		return ReasonMismatch
	}
	return ReasonNone
}

// SignSimple returns hex(HMAC-SHA256(secret, body)), the value a provider
// using the simple scheme sends.
func SignSimple(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
