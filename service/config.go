package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config carries the calling-layer settings the verification core itself
// stays free of: input-size guards that bound worst-case CPU per call, and
// the audit-trail location.
type Config struct {
	DataDir          string `json:"data_dir"`
	AuditEnabled     bool   `json:"audit_enabled"`
	MaxMessageBytes  int    `json:"max_message_bytes"`
	MaxProofSiblings int    `json:"max_proof_siblings"`
	MaxScriptPaths   int    `json:"max_script_paths"`
}

func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".anya-verify"
	}
	return filepath.Join(home, ".anya-verify")
}

func DefaultConfig() Config {
	return Config{
		DataDir:          DefaultDataDir(),
		AuditEnabled:     false,
		MaxMessageBytes:  1 << 20,
		MaxProofSiblings: 64,
		MaxScriptPaths:   128,
	}
}

func ValidateConfig(cfg Config) error {
	if cfg.AuditEnabled && cfg.DataDir == "" {
		return errors.New("data_dir is required when audit is enabled")
	}
	if cfg.MaxMessageBytes <= 0 {
		return errors.New("max_message_bytes must be > 0")
	}
	if cfg.MaxMessageBytes > 1<<26 {
		return fmt.Errorf("max_message_bytes must be <= %d", 1<<26)
	}
	if cfg.MaxProofSiblings <= 0 {
		return errors.New("max_proof_siblings must be > 0")
	}
	if cfg.MaxProofSiblings > 4096 {
		return errors.New("max_proof_siblings must be <= 4096")
	}
	if cfg.MaxScriptPaths <= 0 {
		return errors.New("max_script_paths must be > 0")
	}
	if cfg.MaxScriptPaths > 4096 {
		return errors.New("max_script_paths must be <= 4096")
	}
	return nil
}
