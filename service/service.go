package service

import (
	"encoding/json"
	"fmt"
	"time"

	"anya.dev/verify/bitcoin"
	"anya.dev/verify/crypto"
)

// Request is the uniform invocation shape regardless of transport. Hex
// strings are the canonical interchange encoding for every byte field.
type Request struct {
	Tool       string          `json:"tool"`
	Parameters json.RawMessage `json:"parameters"`
}

type Response struct {
	Success bool            `json:"success"`
	Result  *bitcoin.Result `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

type ResponseError struct {
	Message string `json:"message"`
}

// Service dispatches tool requests into the verification core. It owns
// everything the core deliberately does not: input-size guards, the audit
// trail, and the curve provider binding.
type Service struct {
	cfg      Config
	provider crypto.SchnorrProvider
	audit    *AuditStore
}

// New validates cfg and binds the curve provider; a nil provider selects the
// btcec backend. When auditing is enabled the store is opened eagerly so a
// bad data dir fails at startup, not mid-request.
func New(cfg Config, provider crypto.SchnorrProvider) (*Service, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if provider == nil {
		provider = crypto.BtcecProvider{}
	}
	s := &Service{cfg: cfg, provider: provider}
	if cfg.AuditEnabled {
		store, err := OpenAuditStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		s.audit = store
	}
	return s, nil
}

func (s *Service) Close() error {
	return s.audit.Close()
}

// Dispatch runs one request. Malformed parameters and rejected inputs come
// back as a successful response carrying a failed Result (the fail-soft
// contract); only transport-level problems (unknown tool, undecodable
// parameter JSON, guard violations) use the error branch.
func (s *Service) Dispatch(req Request) Response {
	res, err := s.dispatch(req)
	if err != nil {
		return Response{Success: false, Error: &ResponseError{Message: err.Error()}}
	}
	s.record(req, res)
	return Response{Success: true, Result: &res}
}

type schnorrParams struct {
	Pubkey    *string `json:"pubkey"`
	Message   *string `json:"message"`
	Signature *string `json:"signature"`
}

type taggedHashParams struct {
	Tag     *string `json:"tag"`
	Message *string `json:"message"`
}

type scriptPathParam struct {
	Script      *string `json:"script"`
	LeafVersion *byte   `json:"leafVersion"`
}

type taprootParams struct {
	InternalKey    *string           `json:"internalKey"`
	KeyPathEnabled bool              `json:"keyPathEnabled"`
	ScriptPaths    []scriptPathParam `json:"scriptPaths"`
}

type spvParams struct {
	TxHash          *string  `json:"txHash"`
	Siblings        []string `json:"siblings"`
	Header          *string  `json:"header"`
	LeafIndex       uint32   `json:"leafIndex"`
	ConfirmedHeight uint64   `json:"confirmedHeight"`
}

type tapLeafHashParams struct {
	Script      *string `json:"script"`
	LeafVersion *byte   `json:"leafVersion"`
}

type decodeHexParams struct {
	Hex *string `json:"hex"`
}

func (s *Service) dispatch(req Request) (bitcoin.Result, error) {
	switch req.Tool {
	case "verifySchnorrSignature":
		var p schnorrParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return bitcoin.Result{}, err
		}
		pubkey, res, ok := decodeHexField("pubkey", p.Pubkey)
		if !ok {
			return res, nil
		}
		message, res, ok := decodeHexField("message", p.Message)
		if !ok {
			return res, nil
		}
		if len(message) > s.cfg.MaxMessageBytes {
			return bitcoin.Result{}, fmt.Errorf("message exceeds %d bytes", s.cfg.MaxMessageBytes)
		}
		signature, res, ok := decodeHexField("signature", p.Signature)
		if !ok {
			return res, nil
		}
		return bitcoin.VerifySchnorr(s.provider, pubkey, message, signature), nil

	case "taggedHash":
		var p taggedHashParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return bitcoin.Result{}, err
		}
		if p.Tag == nil || *p.Tag == "" {
			return bitcoin.ResultFromError(
				bitcoin.NewError(bitcoin.ERR_INPUT_FORMAT, "tag", "missing")), nil
		}
		message, res, ok := decodeHexField("message", p.Message)
		if !ok {
			return res, nil
		}
		if len(message) > s.cfg.MaxMessageBytes {
			return bitcoin.Result{}, fmt.Errorf("message exceeds %d bytes", s.cfg.MaxMessageBytes)
		}
		digest := bitcoin.TaggedHash(*p.Tag, message)
		return bitcoin.Result{
			Valid: true,
			Details: map[string]any{
				"tag":    *p.Tag,
				"digest": bitcoin.BytesToHex(digest[:], false),
			},
		}, nil

	case "validateTaprootStructure":
		var p taprootParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return bitcoin.Result{}, err
		}
		if len(p.ScriptPaths) > s.cfg.MaxScriptPaths {
			return bitcoin.Result{}, fmt.Errorf("script paths exceed %d", s.cfg.MaxScriptPaths)
		}
		structure := bitcoin.TaprootStructure{KeyPathEnabled: p.KeyPathEnabled}
		if p.InternalKey != nil {
			key, res, ok := decodeHexField("internalKey", p.InternalKey)
			if !ok {
				return res, nil
			}
			structure.InternalKey = key
		}
		for i, path := range p.ScriptPaths {
			entry := bitcoin.ScriptPath{LeafVersion: path.LeafVersion}
			if path.Script != nil {
				script, res, ok := decodeHexField(fmt.Sprintf("scriptPaths[%d].script", i), path.Script)
				if !ok {
					return res, nil
				}
				entry.Script = script
			}
			structure.ScriptPaths = append(structure.ScriptPaths, entry)
		}
		return bitcoin.ValidateTaproot(structure), nil

	case "verifySpvProof":
		var p spvParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return bitcoin.Result{}, err
		}
		if len(p.Siblings) > s.cfg.MaxProofSiblings {
			return bitcoin.Result{}, fmt.Errorf("proof path exceeds %d siblings", s.cfg.MaxProofSiblings)
		}
		txHash, res, ok := decodeHexField("txHash", p.TxHash)
		if !ok {
			return res, nil
		}
		siblings := make([][]byte, 0, len(p.Siblings))
		for i, raw := range p.Siblings {
			sibling, res, ok := decodeHexField(fmt.Sprintf("siblings[%d]", i), &raw)
			if !ok {
				return res, nil
			}
			siblings = append(siblings, sibling)
		}
		header, res, ok := decodeHexField("header", p.Header)
		if !ok {
			return res, nil
		}
		return bitcoin.VerifySPV(txHash, siblings, header, p.LeafIndex, p.ConfirmedHeight), nil

	case "tapLeafHash":
		var p tapLeafHashParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return bitcoin.Result{}, err
		}
		if p.LeafVersion == nil {
			return bitcoin.ResultFromError(
				bitcoin.NewError(bitcoin.ERR_STRUCTURAL, "leafVersion", "missing")), nil
		}
		script, res, ok := decodeHexField("script", p.Script)
		if !ok {
			return res, nil
		}
		digest := bitcoin.TapLeafHash(*p.LeafVersion, script)
		return bitcoin.Result{
			Valid: true,
			Details: map[string]any{
				"leafVersion": *p.LeafVersion,
				"digest":      bitcoin.BytesToHex(digest[:], false),
			},
		}, nil

	case "decodeHex":
		var p decodeHexParams
		if err := unmarshalParams(req.Parameters, &p); err != nil {
			return bitcoin.Result{}, err
		}
		decoded, res, ok := decodeHexField("hex", p.Hex)
		if !ok {
			return res, nil
		}
		return bitcoin.Result{
			Valid: true,
			Details: map[string]any{
				"length": len(decoded),
				"hex":    bitcoin.BytesToHex(decoded, false),
			},
		}, nil

	default:
		return bitcoin.Result{}, fmt.Errorf("unknown tool %q", req.Tool)
	}
}

func unmarshalParams(raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("parameters required")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("bad parameters: %v", err)
	}
	return nil
}

// decodeHexField resolves one hex-encoded byte field. A JSON null or absent
// field is rejected distinctly from malformed hex; both come back as a
// failed Result with ok=false.
func decodeHexField(name string, value *string) ([]byte, bitcoin.Result, bool) {
	if value == nil {
		err := bitcoin.NewError(bitcoin.ERR_INPUT_FORMAT, name, "missing")
		return nil, bitcoin.ResultFromError(err), false
	}
	decoded, err := bitcoin.HexToBytes(*value)
	if err != nil {
		ve, ok := err.(*bitcoin.VerifyError)
		if !ok {
			return nil, bitcoin.ResultFromError(err), false
		}
		named := bitcoin.NewError(ve.Code, name, ve.Msg)
		return nil, bitcoin.ResultFromError(named), false
	}
	return decoded, bitcoin.Result{}, true
}

func (s *Service) record(req Request, res bitcoin.Result) {
	if s.audit == nil {
		return
	}
	rec := AuditRecord{
		Tool:     req.Tool,
		Valid:    res.Valid,
		UnixTime: time.Now().Unix(),
	}
	if res.Err != nil {
		rec.ErrorKind = string(res.Err.Kind)
	}
	// Audit writes are best effort; a full disk must not fail verification.
	_ = s.audit.Put(RecordKey(req.Tool, req.Parameters), rec)
}
