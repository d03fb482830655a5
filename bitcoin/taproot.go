package bitcoin

import "fmt"

// Tapscript leaf versions. BIP-341 requires the version byte to be even;
// 0xc0 is the standard tapscript version, and 0xc2 is reserved here for the
// privacy-maximizing silent leaf (script paths indistinguishable from
// key-path spends).
const (
	BaseLeafVersion   byte = 0xc0
	SilentLeafVersion byte = 0xc2
)

// Privacy ratings derived from the spending structure.
const (
	PrivacyHigh   = "high"
	PrivacyMedium = "medium"
	PrivacyLow    = "low"
	PrivacyNone   = "none"
)

// ScriptPath is one script-path spending option. Both fields are required;
// LeafVersion is a pointer so an absent version can be told apart from 0x00.
type ScriptPath struct {
	Script      []byte
	LeafVersion *byte
}

// TaprootStructure describes how a Taproot output can be spent.
type TaprootStructure struct {
	InternalKey    []byte
	KeyPathEnabled bool
	ScriptPaths    []ScriptPath
}

// ValidateTaproot checks the key/script-path spending structure of a Taproot
// output and rates its privacy properties. This is structural validation
// only; it does not verify an on-chain commitment.
//
// Validity requires a 32-byte internal key and at least one enabled spending
// path. Script-path entries missing either field fail the whole call on the
// first invalid entry.
func ValidateTaproot(s TaprootStructure) Result {
	if s.InternalKey == nil {
		return taprootRejected(verr(ERR_INPUT_FORMAT, "internalKey", "missing"))
	}
	if len(s.InternalKey) != PubKeyBytes {
		return taprootRejected(verr(ERR_INPUT_FORMAT, "internalKey",
			fmt.Sprintf("want %d bytes, got %d", PubKeyBytes, len(s.InternalKey))))
	}

	hasPrivacyLeaf := false
	for i, path := range s.ScriptPaths {
		if path.Script == nil {
			return taprootRejected(verr(ERR_STRUCTURAL,
				fmt.Sprintf("scriptPaths[%d]", i), "missing script"))
		}
		if path.LeafVersion == nil {
			return taprootRejected(verr(ERR_STRUCTURAL,
				fmt.Sprintf("scriptPaths[%d]", i), "missing leafVersion"))
		}
		if *path.LeafVersion == SilentLeafVersion {
			hasPrivacyLeaf = true
		}
	}

	valid := s.KeyPathEnabled || len(s.ScriptPaths) > 0

	rating := PrivacyNone
	switch {
	case !valid:
	case hasPrivacyLeaf:
		rating = PrivacyHigh
	case len(s.ScriptPaths) > 0:
		rating = PrivacyMedium
	default:
		rating = PrivacyLow
	}

	res := Result{
		Valid: valid,
		Details: map[string]any{
			"internalKey":     BytesToHex(s.InternalKey, false),
			"keyPathEnabled":  s.KeyPathEnabled,
			"scriptPathCount": len(s.ScriptPaths),
			"hasPrivacyLeaf":  hasPrivacyLeaf,
			"privacyRating":   rating,
		},
	}
	if !valid {
		res.Err = &ResultError{Kind: ERR_STRUCTURAL, Message: "no spending path enabled"}
	}
	return res
}

// TapLeafHash computes the TapLeaf commitment for a script-path entry:
// TaggedHash("TapLeaf", leafVersion || script).
func TapLeafHash(leafVersion byte, script []byte) [32]byte {
	preimage := make([]byte, 0, 1+len(script))
	preimage = append(preimage, leafVersion)
	preimage = append(preimage, script...)
	return TaggedHash(TagTapLeaf, preimage)
}

func taprootRejected(e *VerifyError) Result {
	res := failed(e)
	res.Details = map[string]any{"privacyRating": PrivacyNone}
	return res
}
