package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"time"
)

// DefaultTolerance is the replay window used when a caller passes a
// non-positive tolerance.
const DefaultTolerance = 300 * time.Second

// now is the wall clock; tests pin it.
var now = time.Now

// VerifyTimestamped reports whether header carries a v1 signature equal to
// hex(HMAC-SHA256(secret, "<t>.<body>")) and whether t lies within tolerance
// of the current time. Timestamps too far in the future fail the same way
// as stale ones. Freshness is only evaluated once the MAC has matched.
func VerifyTimestamped(header string, body []byte, secret string, tolerance time.Duration) bool {
	return checkTimestamped(header, body, secret, tolerance) == ReasonNone
}

func checkTimestamped(header string, body []byte, secret string, tolerance time.Duration) (reason Reason) {
	defer func() {
		if recover() != nil {
			reason = ReasonInternal
		}
	}()

	if secret == "" {
		return ReasonMissingSecret
	}
	if header == "" {
		return ReasonMalformedHeader
	}

	parsed, ok := ParseHeader(header)
	if !ok {
		return ReasonMalformedHeader
	}

	expected := ComputeTimestampedSignature(parsed.T, body, secret)
	if !Equal([]byte(expected), []byte(parsed.V1)) {
		return ReasonMismatch
	}

	ts, err := strconv.ParseInt(parsed.T, 10, 64)
	if err != nil {
		return ReasonMalformedHeader
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if stale(ageSeconds(now().Unix(), ts), tolerance) {
		return ReasonStaleTimestamp
	}
	return ReasonNone
}

// stale reports whether an age in whole seconds exceeds tolerance.
// Sub-second tolerances are honoured: 1500ms accepts an age of 1s, not 2s.
func stale(age uint64, tolerance time.Duration) bool {
	if age > uint64(math.MaxInt64/int64(time.Second)) {
		return true
	}
	return time.Duration(age)*time.Second > tolerance
}

// ageSeconds returns |a-b| without overflowing at the int64 extremes.
func ageSeconds(a, b int64) uint64 {
	if a >= b {
		return uint64(a) - uint64(b)
	}
	return uint64(b) - uint64(a)
}

// ComputeTimestampedSignature returns hex(HMAC-SHA256(secret, timestamp + "." + body)).
// The timestamp is used verbatim, as received.
func ComputeTimestampedSignature(timestamp string, body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte{'.'})
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignTimestamped builds a complete "t=<timestamp>,v1=<hex>" header value.
func SignTimestamped(timestamp int64, body []byte, secret string) string {
	t := strconv.FormatInt(timestamp, 10)
	return "t=" + t + ",v1=" + ComputeTimestampedSignature(t, body, secret)
}
