package bitcoin

import (
	"crypto/sha256"
	"testing"
)

func TestTaggedHash_Construction(t *testing.T) {
	msg := []byte("commitment payload")
	for _, tag := range []string{TagBIP340Challenge, TagTapLeaf, TagTapTweak, "custom/domain"} {
		tagDigest := sha256.Sum256([]byte(tag))
		h := sha256.New()
		h.Write(tagDigest[:])
		h.Write(tagDigest[:])
		h.Write(msg)
		var want [32]byte
		copy(want[:], h.Sum(nil))

		if got := TaggedHash(tag, msg); got != want {
			t.Fatalf("digest mismatch for tag %q", tag)
		}
	}
}

func TestTaggedHash_DomainSeparation(t *testing.T) {
	msg := []byte{0x01, 0x02, 0x03}
	if TaggedHash(TagTapLeaf, msg) == TaggedHash(TagTapBranch, msg) {
		t.Fatalf("distinct tags must not collide")
	}
}

func TestTaggedHash_Deterministic(t *testing.T) {
	msg := []byte("same input")
	if TaggedHash(TagBIP340Aux, msg) != TaggedHash(TagBIP340Aux, msg) {
		t.Fatalf("tagged hash must be deterministic")
	}
}
