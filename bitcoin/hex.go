package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HexToBytes decodes a strict hexadecimal string. An optional 0x/0X prefix is
// stripped before validation. Odd-length strings and non-hex characters are
// rejected; decode failures name the offending substring and its byte offset
// within the (stripped) input.
func HexToBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, verr(ERR_INPUT_FORMAT, "hex", "empty input")
	}
	stripped := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if stripped == "" {
		return nil, verr(ERR_INPUT_FORMAT, "hex", "empty input after prefix")
	}
	if len(stripped)%2 == 1 {
		return nil, verr(ERR_INPUT_FORMAT, "hex", fmt.Sprintf("odd length %d", len(stripped)))
	}

	out := make([]byte, len(stripped)/2)
	for i := 0; i < len(stripped); i += 2 {
		hi, okHi := hexNibble(stripped[i])
		lo, okLo := hexNibble(stripped[i+1])
		if !okHi || !okLo {
			return nil, verr(ERR_INPUT_FORMAT, "hex",
				fmt.Sprintf("invalid pair %q at byte offset %d", stripped[i:i+2], i/2))
		}
		out[i/2] = hi<<4 | lo
	}
	return out, nil
}

// BytesToHex encodes b as lowercase hex, optionally with a 0x prefix.
func BytesToHex(b []byte, withPrefix bool) string {
	s := hex.EncodeToString(b)
	if withPrefix {
		return "0x" + s
	}
	return s
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
