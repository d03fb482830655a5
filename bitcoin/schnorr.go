package bitcoin

import (
	"crypto/sha256"
	"fmt"

	"anya.dev/verify/crypto"
)

const (
	// PubKeyBytes is the x-only public key encoding length (no parity byte).
	PubKeyBytes = 32
	// SignatureBytes is a 32-byte nonce commitment plus a 32-byte scalar.
	SignatureBytes = 64
)

// VerifySchnorr checks a BIP-340 Schnorr signature. Inputs are validated and
// length-gated before the curve provider is ever called; messages that are
// not already 32 bytes are normalized with one SHA-256 pass (a convenience
// extension beyond strict BIP-340, reported via details["messageNormalized"]).
//
// The call never returns an error: rejected inputs and backend failures come
// back as a Result with Valid=false and Err populated.
func VerifySchnorr(provider crypto.SchnorrProvider, pubkey, message, signature []byte) Result {
	if provider == nil {
		return failed(verr(ERR_VERIFICATION, "", "no curve provider"))
	}
	if pubkey == nil {
		return failed(verr(ERR_INPUT_FORMAT, "pubkey", "missing"))
	}
	if message == nil {
		return failed(verr(ERR_INPUT_FORMAT, "message", "missing"))
	}
	if signature == nil {
		return failed(verr(ERR_INPUT_FORMAT, "signature", "missing"))
	}
	if len(pubkey) != PubKeyBytes {
		return failed(verr(ERR_INPUT_FORMAT, "pubkey",
			fmt.Sprintf("want %d bytes, got %d", PubKeyBytes, len(pubkey))))
	}
	if len(signature) != SignatureBytes {
		return failed(verr(ERR_INPUT_FORMAT, "signature",
			fmt.Sprintf("want %d bytes, got %d", SignatureBytes, len(signature))))
	}

	digest, normalized := normalizeMessage(message)

	ok, err := provider.VerifyBIP340(pubkey, signature, digest)
	if err != nil {
		return failed(verr(ERR_VERIFICATION, "", err.Error()))
	}

	// The provider verdict is authoritative; the self-comparison only guards
	// against the signature buffer being clobbered underneath the call.
	if !ConstantTimeEqual(signature, signature) {
		ok = false
	}

	return Result{
		Valid: ok,
		Details: map[string]any{
			"pubkey":            BytesToHex(pubkey, false),
			"message":           BytesToHex(digest[:], false),
			"signature":         BytesToHex(signature, false),
			"messageNormalized": normalized,
			"bip340Compliant":   true,
		},
	}
}

// normalizeMessage passes 32-byte messages through untouched and hashes every
// other length down to 32 bytes.
func normalizeMessage(message []byte) ([32]byte, bool) {
	if len(message) == 32 {
		var digest [32]byte
		copy(digest[:], message)
		return digest, false
	}
	return sha256.Sum256(message), true
}
