// Package signature verifies inbound webhook signatures.
//
// Two schemes are supported, both built on HMAC-SHA256 and a single
// constant-time comparison primitive:
//
//   - simple: the provider sends hex(HMAC(secret, body)) in a header of its
//     choosing (Razorpay's X-Razorpay-Signature, for example).
//   - timestamped: the provider sends "t=<unix>,v1=<hex>" where the MAC is
//     computed over "<t>.<body>" (Stripe's Stripe-Signature). The timestamp
//     must also fall within a tolerance window of the current time, in
//     either direction.
//
// Every verification returns a bool. Missing secrets, malformed headers,
// MAC mismatches, stale timestamps and decoding failures all produce false;
// which check failed is only reported to logs and metrics through Verifier.
//
// # Usage
//
//	body, _ := signature.PreserveRequestBody(r)
//	if !signature.VerifySimple(body, r.Header.Get("X-Razorpay-Signature"), secret) {
//	    http.Error(w, "invalid signature", http.StatusBadRequest)
//	    return
//	}
//
// The body passed to a verifier must be the exact bytes read from the wire.
// Re-encoding or whitespace normalization invalidates the MAC.
package signature
