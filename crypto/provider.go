package crypto

// SchnorrProvider is the narrow curve interface used by verification code.
// Curve-level math is never reimplemented here; implementations delegate to
// a vetted secp256k1 backend.
type SchnorrProvider interface {
	// VerifyBIP340 checks a 64-byte Schnorr signature over digest32 against a
	// 32-byte x-only public key. An invalid signature is (false, nil); an
	// error is reserved for backend failures.
	VerifyBIP340(pubkey []byte, sig []byte, digest32 [32]byte) (bool, error)
}
