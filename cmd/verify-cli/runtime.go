package main

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"strings"

	"anya.dev/verify/service"
)

func writeResp(w io.Writer, resp service.Response) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(resp)
}

// configFromEnv layers environment overrides on the defaults:
// ANYA_VERIFY_AUDIT=1 enables the audit trail, ANYA_VERIFY_DATADIR moves it,
// and ANYA_VERIFY_MAX_SIBLINGS tightens the proof-path guard.
func configFromEnv() service.Config {
	cfg := service.DefaultConfig()
	if isEnvSet("ANYA_VERIFY_AUDIT") {
		cfg.AuditEnabled = true
	}
	if dir := strings.TrimSpace(os.Getenv("ANYA_VERIFY_DATADIR")); dir != "" {
		cfg.DataDir = dir
	}
	if raw := strings.TrimSpace(os.Getenv("ANYA_VERIFY_MAX_SIBLINGS")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			cfg.MaxProofSiblings = n
		}
	}
	return cfg
}

func isEnvSet(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
