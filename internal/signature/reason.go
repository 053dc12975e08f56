package signature

// Reason categorizes why a verification failed. It is reported to logs and
// metrics only and never returned alongside a verdict.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonMissingSecret   Reason = "missing_secret"
	ReasonMalformedHeader Reason = "malformed_header"
	ReasonMismatch        Reason = "signature_mismatch"
	ReasonStaleTimestamp  Reason = "stale_timestamp"
	ReasonInternal        Reason = "internal_error"
)

// Label returns the value used for the metrics "result" label.
func (r Reason) Label() string {
	if r == ReasonNone {
		return "valid"
	}
	return string(r)
}
