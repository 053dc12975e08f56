package signature

import "crypto/subtle"

// Equal reports whether a and b hold the same bytes. Inputs of unequal
// length return false immediately; both operands are fixed-length hex
// encodings, so their length reveals nothing about the secret. For equal
// lengths every byte pair is examined, so the running time does not depend
// on where the first difference sits. A plain == or bytes.Equal returns at
// the first mismatch and must not be used for MAC comparison.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
