package bitcoin

import "crypto/subtle"

// ConstantTimeEqual reports whether a and b hold identical bytes without
// short-circuiting on the first mismatch.
//
// The length difference is folded into the accumulator rather than branched
// on, and a compensation pass over the excess of the longer input keeps total
// work from shrinking sharply when lengths differ. This is a timing
// mitigation, not a proven constant-time guarantee.
func ConstantTimeEqual(a, b []byte) bool {
	acc := uint64(len(a)) ^ uint64(len(b))

	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		acc |= uint64(a[i] ^ b[i])
	}

	longer := a
	if len(b) > len(a) {
		longer = b
	}
	var sink byte
	for i := n; i < len(longer); i++ {
		sink |= longer[i] ^ longer[i]
	}
	acc |= uint64(sink)

	folded := uint32(acc) | uint32(acc>>32)
	return subtle.ConstantTimeEq(int32(folded), 0) == 1
}
