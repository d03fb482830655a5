package crypto

// FakeProvider is a test-only provider with a scripted verdict.
// It records its inputs so callers can assert what reached the curve layer.
type FakeProvider struct {
	Valid bool
	Err   error

	Calls      int
	LastPubkey []byte
	LastSig    []byte
	LastDigest [32]byte
}

func (p *FakeProvider) VerifyBIP340(pubkey []byte, sig []byte, digest32 [32]byte) (bool, error) {
	p.Calls++
	p.LastPubkey = append([]byte(nil), pubkey...)
	p.LastSig = append([]byte(nil), sig...)
	p.LastDigest = digest32
	if p.Err != nil {
		return false, p.Err
	}
	return p.Valid, nil
}
