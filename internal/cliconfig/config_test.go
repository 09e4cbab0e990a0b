package cliconfig

import (
	"testing"
	"time"

	"github.com/bft-labs/ndtp/pkg/capture"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.OutputFormat != "json" {
		t.Errorf("OutputFormat = %v, want json", cfg.OutputFormat)
	}
	if cfg.Debounce != 200*time.Millisecond {
		t.Errorf("Debounce = %v, want 200ms", cfg.Debounce)
	}
	if cfg.MaxRecordBytes != capture.DefaultMaxRecordBytes {
		t.Errorf("MaxRecordBytes = %v, want %v", cfg.MaxRecordBytes, capture.DefaultMaxRecordBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "max seq", mutate: func(c *Config) { c.SeqStart = 65535 }},
		{name: "negative seq", mutate: func(c *Config) { c.SeqStart = -1 }, wantErr: true},
		{name: "seq too large", mutate: func(c *Config) { c.SeqStart = 65536 }, wantErr: true},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.OutputFormat = "xml" }, wantErr: true},
		{name: "zero debounce", mutate: func(c *Config) { c.Debounce = 0 }, wantErr: true},
		{name: "zero max record", mutate: func(c *Config) { c.MaxRecordBytes = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Validate_Normalizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "DEBUG"
	cfg.OutputFormat = " CBOR"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	if cfg.Format() != "cbor" {
		t.Errorf("Format() = %v, want cbor", cfg.Format())
	}
}

func TestLogger(t *testing.T) {
	if _, err := Logger("warn"); err != nil {
		t.Errorf("Logger(warn) error = %v", err)
	}
	if _, err := Logger("nope"); err == nil {
		t.Error("Logger(nope) expected error")
	}
}
