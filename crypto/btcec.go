package crypto

import "github.com/btcsuite/btcd/btcec/v2/schnorr"

// BtcecProvider verifies BIP-340 signatures with the btcec secp256k1 backend.
// It expects length-checked inputs; a 32-byte x coordinate that does not lie
// on the curve is an invalid signature, not a backend failure.
type BtcecProvider struct{}

func (BtcecProvider) VerifyBIP340(pubkey []byte, sig []byte, digest32 [32]byte) (bool, error) {
	pk, err := schnorr.ParsePubKey(pubkey)
	if err != nil {
		return false, nil
	}
	parsedSig, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false, nil
	}
	return parsedSig.Verify(digest32[:], pk), nil
}
