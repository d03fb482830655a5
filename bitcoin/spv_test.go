package bitcoin

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

func hash32(fill byte) []byte {
	return bytes.Repeat([]byte{fill}, 32)
}

// headerWithRoot builds a raw 80-byte header embedding root at offset 36.
func headerWithRoot(root [32]byte) []byte {
	header := make([]byte, BlockHeaderBytes)
	binary.LittleEndian.PutUint32(header[0:4], 0x20000000)
	copy(header[4:36], hash32(0x11))
	copy(header[36:68], root[:])
	binary.LittleEndian.PutUint32(header[68:72], 1_700_000_000)
	binary.LittleEndian.PutUint32(header[72:76], 0x1703255e)
	binary.LittleEndian.PutUint32(header[76:80], 42)
	return header
}

func TestParseBlockHeader_Fields(t *testing.T) {
	var root [32]byte
	copy(root[:], hash32(0x22))
	header := headerWithRoot(root)

	hdr, err := ParseBlockHeader(header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hdr.Version != 0x20000000 {
		t.Fatalf("version mismatch: %x", hdr.Version)
	}
	if !bytes.Equal(hdr.PrevBlock[:], hash32(0x11)) {
		t.Fatalf("prev block mismatch")
	}
	if hdr.MerkleRoot != root {
		t.Fatalf("merkle root mismatch")
	}
	if hdr.Timestamp != 1_700_000_000 || hdr.Bits != 0x1703255e || hdr.Nonce != 42 {
		t.Fatalf("tail fields mismatch: %d %x %d", hdr.Timestamp, hdr.Bits, hdr.Nonce)
	}
}

func TestParseBlockHeader_WrongLength(t *testing.T) {
	for _, n := range []int{0, 79, 81} {
		_, err := ParseBlockHeader(make([]byte, n))
		ve, ok := err.(*VerifyError)
		if !ok || ve.Code != ERR_INPUT_FORMAT || ve.Field != "header" {
			t.Fatalf("%d-byte header: want INPUT_FORMAT_ERROR on header, got %v", n, err)
		}
	}
}

func TestVerifySPV_TwoLevelProof(t *testing.T) {
	txHash := hash32(0x01)
	h1 := hash32(0x02)
	h2 := hash32(0x03)

	// Leaf index 0 at both levels: current is always the left node.
	var leaf, s1, s2 [32]byte
	copy(leaf[:], txHash)
	copy(s1[:], h1)
	copy(s2[:], h2)
	level1 := MerkleParent(leaf, s1)
	root := MerkleParent(level1, s2)

	res := VerifySPV(txHash, [][]byte{h1, h2}, headerWithRoot(root), 0, 849_995)
	if res.Err != nil {
		t.Fatalf("unexpected error: %+v", res.Err)
	}
	if !res.Valid {
		t.Fatalf("well-formed proof rejected")
	}
	if res.Details["computedRoot"] != BytesToHex(root[:], false) {
		t.Fatalf("computed root mismatch")
	}
	if res.Details["confirmations"] != uint64(6) {
		t.Fatalf("want 6 confirmations, got %v", res.Details["confirmations"])
	}
	if res.Details["confirmationThresholdMet"] != true {
		t.Fatalf("threshold must be met at 6 confirmations")
	}
}

func TestVerifySPV_TamperedSibling(t *testing.T) {
	txHash := hash32(0x01)
	h1 := hash32(0x02)
	h2 := hash32(0x03)

	var leaf, s1, s2 [32]byte
	copy(leaf[:], txHash)
	copy(s1[:], h1)
	copy(s2[:], h2)
	root := MerkleParent(MerkleParent(leaf, s1), s2)

	tampered := append([]byte(nil), h1...)
	tampered[5] ^= 0x01
	res := VerifySPV(txHash, [][]byte{tampered, h2}, headerWithRoot(root), 0, 0)
	if res.Valid {
		t.Fatalf("tampered sibling accepted")
	}
	if res.Err != nil {
		t.Fatalf("mismatch must be a clean negative verdict, got %+v", res.Err)
	}
}

func TestVerifySPV_OddLeafIndexOrdering(t *testing.T) {
	txHash := hash32(0x01)
	sibling := hash32(0x02)

	// At index 1 the sibling is the left node.
	var leaf, s [32]byte
	copy(leaf[:], txHash)
	copy(s[:], sibling)
	root := MerkleParent(s, leaf)

	res := VerifySPV(txHash, [][]byte{sibling}, headerWithRoot(root), 1, 0)
	if !res.Valid {
		t.Fatalf("odd-index proof rejected: %+v", res.Err)
	}
}

func TestVerifySPV_MalformedInputs(t *testing.T) {
	var root [32]byte
	header := headerWithRoot(root)

	res := VerifySPV(make([]byte, 31), nil, header, 0, 0)
	if res.Valid || res.Err == nil || res.Err.Kind != ERR_INPUT_FORMAT ||
		!strings.Contains(res.Err.Message, "txHash") {
		t.Fatalf("31-byte txHash: want INPUT_FORMAT_ERROR naming txHash, got %+v", res.Err)
	}

	res = VerifySPV(hash32(0x01), [][]byte{make([]byte, 31)}, header, 0, 0)
	if res.Valid || res.Err == nil || res.Err.Kind != ERR_INPUT_FORMAT ||
		!strings.Contains(res.Err.Message, "siblings[0]") {
		t.Fatalf("31-byte sibling: want INPUT_FORMAT_ERROR naming siblings[0], got %+v", res.Err)
	}

	res = VerifySPV(hash32(0x01), nil, make([]byte, 79), 0, 0)
	if res.Valid || res.Err == nil || res.Err.Kind != ERR_INPUT_FORMAT ||
		!strings.Contains(res.Err.Message, "header") {
		t.Fatalf("79-byte header: want INPUT_FORMAT_ERROR naming header, got %+v", res.Err)
	}

	res = VerifySPV(nil, nil, header, 0, 0)
	if res.Valid || res.Err == nil || res.Err.Kind != ERR_INPUT_FORMAT {
		t.Fatalf("nil txHash: want INPUT_FORMAT_ERROR, got %+v", res.Err)
	}
}

func TestVerifySPV_HeaderIdentityAsStored(t *testing.T) {
	var root [32]byte
	header := headerWithRoot(root)

	res := VerifySPV(hash32(0x01), nil, header, 0, 0)
	blockHeader, ok := res.Details["blockHeader"].(map[string]any)
	if !ok {
		t.Fatalf("missing blockHeader details")
	}
	want := BytesToHex(chainhash.DoubleHashB(header), false)
	if blockHeader["hash"] != want {
		t.Fatalf("header hash mismatch: %v != %s", blockHeader["hash"], want)
	}
}

func TestEstimateConfirmations(t *testing.T) {
	cases := []struct {
		height uint64
		want   uint64
	}{
		{0, 0},
		{referenceChainHeight + 1, 0},
		{referenceChainHeight, 1},
		{referenceChainHeight - 5, 6},
	}
	for _, tc := range cases {
		if got := estimateConfirmations(tc.height); got != tc.want {
			t.Fatalf("estimateConfirmations(%d) = %d, want %d", tc.height, got, tc.want)
		}
	}
}
