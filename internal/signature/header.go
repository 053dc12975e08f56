package signature

import "strings"

// Header is the parsed form of a timestamped signature header such as
// "t=1700000000,v1=5257a869...".
type Header struct {
	// T is the decimal Unix timestamp exactly as sent.
	T string
	// V1 is the hex-encoded HMAC-SHA256 signature.
	V1 string
}

// ParseHeader reads the comma-separated key=value segments of value from left
// to right. Each segment is split on its first '='; segments without one and
// keys other than t and v1 are skipped, and a repeated key overwrites the
// earlier value. The bool is false when either t or v1 ends up empty.
func ParseHeader(value string) (Header, bool) {
	var h Header
	for _, segment := range strings.Split(value, ",") {
		key, val, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			h.T = val
		case "v1":
			h.V1 = val
		}
	}
	return h, h.T != "" && h.V1 != ""
}

// Canonical renders h as "t=<T>,v1=<V1>". Headers that differ only in
// segment order, unknown segments or overwritten duplicates share it.
func (h Header) Canonical() string {
	return "t=" + h.T + ",v1=" + h.V1
}
