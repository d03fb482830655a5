package bitcoin

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// HashBytes is the length of every transaction and merkle node hash.
	HashBytes = 32
	// BlockHeaderBytes is the raw serialized block header length.
	BlockHeaderBytes = 80

	// referenceChainHeight stands in for a live chain-height lookup until
	// real chain integration lands. Confirmation counts derived from it are
	// an estimate, never a chain query.
	referenceChainHeight = 850_000
	// confirmationThreshold matches the peg-in confirmation policy.
	confirmationThreshold = 6
)

// BlockHeader is the parsed view over the raw 80 header bytes.
// Field offsets: version 0, prev block 4, merkle root 36, timestamp 68,
// bits 72, nonce 76; integers little-endian.
type BlockHeader struct {
	Version    uint32
	PrevBlock  [32]byte
	MerkleRoot [32]byte
	Timestamp  uint32
	Bits       uint32
	Nonce      uint32
}

// ParseBlockHeader parses a raw block header and rejects any length other
// than exactly 80 bytes.
func ParseBlockHeader(b []byte) (BlockHeader, error) {
	if len(b) != BlockHeaderBytes {
		return BlockHeader{}, verr(ERR_INPUT_FORMAT, "header",
			fmt.Sprintf("want %d bytes, got %d", BlockHeaderBytes, len(b)))
	}
	var h BlockHeader
	h.Version = binary.LittleEndian.Uint32(b[0:4])
	copy(h.PrevBlock[:], b[4:36])
	copy(h.MerkleRoot[:], b[36:68])
	h.Timestamp = binary.LittleEndian.Uint32(b[68:72])
	h.Bits = binary.LittleEndian.Uint32(b[72:76])
	h.Nonce = binary.LittleEndian.Uint32(b[76:80])
	return h, nil
}

// HeaderHash is the double-SHA256 identity of the raw header bytes as stored
// (not display-reversed).
func HeaderHash(raw []byte) ([32]byte, error) {
	var out [32]byte
	if len(raw) != BlockHeaderBytes {
		return out, verr(ERR_INPUT_FORMAT, "header",
			fmt.Sprintf("want %d bytes, got %d", BlockHeaderBytes, len(raw)))
	}
	copy(out[:], chainhash.DoubleHashB(raw))
	return out, nil
}

// MerkleParent combines two sibling nodes with Bitcoin's double-SHA256
// convention.
func MerkleParent(left, right [32]byte) [32]byte {
	var preimage [64]byte
	copy(preimage[:32], left[:])
	copy(preimage[32:], right[:])
	var out [32]byte
	copy(out[:], chainhash.DoubleHashB(preimage[:]))
	return out
}

// VerifySPV reconstructs a transaction-inclusion proof and checks it against
// the header's merkle root. siblings is the merkle path ordered leaf to root;
// leafIndex is the transaction's position in the block. All length validation
// happens before any hashing; a tampered sibling or root yields Valid=false,
// never an error.
func VerifySPV(txHash []byte, siblings [][]byte, header []byte, leafIndex uint32, confirmedHeight uint64) Result {
	if txHash == nil {
		return failed(verr(ERR_INPUT_FORMAT, "txHash", "missing"))
	}
	if len(txHash) != HashBytes {
		return failed(verr(ERR_INPUT_FORMAT, "txHash",
			fmt.Sprintf("want %d bytes, got %d", HashBytes, len(txHash))))
	}
	for i, sibling := range siblings {
		if len(sibling) != HashBytes {
			return failed(verr(ERR_INPUT_FORMAT, fmt.Sprintf("siblings[%d]", i),
				fmt.Sprintf("want %d bytes, got %d", HashBytes, len(sibling))))
		}
	}
	if header == nil {
		return failed(verr(ERR_INPUT_FORMAT, "header", "missing"))
	}
	hdr, err := ParseBlockHeader(header)
	if err != nil {
		return ResultFromError(err)
	}

	var current [32]byte
	copy(current[:], txHash)
	index := leafIndex
	for _, sibling := range siblings {
		var node [32]byte
		copy(node[:], sibling)
		if index%2 == 0 {
			current = MerkleParent(current, node)
		} else {
			current = MerkleParent(node, current)
		}
		index /= 2
	}

	rootOK := ConstantTimeEqual(current[:], hdr.MerkleRoot[:])

	headerHash, _ := HeaderHash(header)
	confirmations := estimateConfirmations(confirmedHeight)
	thresholdMet := confirmations >= confirmationThreshold

	assertions := []string{
		"input lengths validated before hashing",
		"double-SHA256 applied to merkle nodes",
		"constant-time comparison used for root check",
	}
	if thresholdMet {
		assertions = append(assertions, "confirmation threshold met")
	} else {
		assertions = append(assertions, "confirmation threshold not met")
	}

	return Result{
		Valid: rootOK,
		Details: map[string]any{
			"blockHeader": map[string]any{
				"version":           hdr.Version,
				"previousBlockHash": BytesToHex(hdr.PrevBlock[:], false),
				"merkleRoot":        BytesToHex(hdr.MerkleRoot[:], false),
				"timestamp":         hdr.Timestamp,
				"bits":              hdr.Bits,
				"nonce":             hdr.Nonce,
				"hash":              BytesToHex(headerHash[:], false),
			},
			"computedRoot":             BytesToHex(current[:], false),
			"confirmations":            confirmations,
			"confirmationThresholdMet": thresholdMet,
			"securityAssertions":       assertions,
		},
	}
}

// estimateConfirmations is a placeholder heuristic pending real chain-height
// integration.
func estimateConfirmations(confirmedHeight uint64) uint64 {
	if confirmedHeight == 0 || confirmedHeight > referenceChainHeight {
		return 0
	}
	return referenceChainHeight - confirmedHeight + 1
}
