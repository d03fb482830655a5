package bitcoin

import "crypto/sha256"

// Canonical hash domains used by BIP-340 and BIP-341.
// Each tag is applied as SHA256(SHA256(tag) || SHA256(tag) || msg).
const (
	TagBIP340Challenge = "BIP0340/challenge"
	TagBIP340Aux       = "BIP0340/aux"
	TagBIP340Nonce     = "BIP0340/nonce"
	TagTapLeaf         = "TapLeaf"
	TagTapBranch       = "TapBranch"
	TagTapTweak        = "TapTweak"
)

// Precomputed tag digests for the hot domains.
var (
	tagDigestBIP340Challenge = sha256.Sum256([]byte(TagBIP340Challenge))
	tagDigestTapLeaf         = sha256.Sum256([]byte(TagTapLeaf))
	tagDigestTapTweak        = sha256.Sum256([]byte(TagTapTweak))
)

// TaggedHash computes the BIP-340 domain-separated hash
// SHA256(SHA256(tag) || SHA256(tag) || msg).
func TaggedHash(tag string, msg []byte) [32]byte {
	switch tag {
	case TagBIP340Challenge:
		return taggedHashPrecomputed(tagDigestBIP340Challenge, msg)
	case TagTapLeaf:
		return taggedHashPrecomputed(tagDigestTapLeaf, msg)
	case TagTapTweak:
		return taggedHashPrecomputed(tagDigestTapTweak, msg)
	}
	return taggedHashPrecomputed(sha256.Sum256([]byte(tag)), msg)
}

func taggedHashPrecomputed(tagDigest [32]byte, msg []byte) [32]byte {
	h := sha256.New()
	h.Write(tagDigest[:])
	h.Write(tagDigest[:])
	h.Write(msg)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
