package service

import (
	"strings"
	"testing"
)

func TestValidateConfig_Defaults(t *testing.T) {
	if err := ValidateConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestValidateConfig_Bounds(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"audit without datadir", func(c *Config) { c.AuditEnabled = true; c.DataDir = "" }, "data_dir"},
		{"zero message bytes", func(c *Config) { c.MaxMessageBytes = 0 }, "max_message_bytes"},
		{"oversized message bytes", func(c *Config) { c.MaxMessageBytes = 1<<26 + 1 }, "max_message_bytes"},
		{"zero siblings", func(c *Config) { c.MaxProofSiblings = 0 }, "max_proof_siblings"},
		{"oversized siblings", func(c *Config) { c.MaxProofSiblings = 4097 }, "max_proof_siblings"},
		{"zero script paths", func(c *Config) { c.MaxScriptPaths = 0 }, "max_script_paths"},
		{"oversized script paths", func(c *Config) { c.MaxScriptPaths = 4097 }, "max_script_paths"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		err := ValidateConfig(cfg)
		if err == nil {
			t.Fatalf("%s: config accepted", tc.name)
		}
		if !strings.Contains(err.Error(), tc.wantErr) {
			t.Fatalf("%s: error %q does not name %s", tc.name, err, tc.wantErr)
		}
	}
}

func TestDefaultDataDir_NotEmpty(t *testing.T) {
	if DefaultDataDir() == "" {
		t.Fatalf("default data dir must never be empty")
	}
}
