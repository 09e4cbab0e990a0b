package cliconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyFileConfig(t *testing.T) {
	trueVal := true
	seq := 100
	zero := 0
	maxRec := 4096

	tests := []struct {
		name       string
		fileConfig FileConfig
		changed    map[string]bool
		initial    Config
		expected   Config
		wantErr    bool
	}{
		{
			name: "applies all valid config values",
			fileConfig: FileConfig{
				LogLevel:       "debug",
				SeqStart:       &seq,
				Compress:       &trueVal,
				OutputFormat:   "cbor",
				SpoolDir:       "/spool",
				Debounce:       "1s",
				MaxRecordBytes: &maxRec,
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				LogLevel:       "debug",
				SeqStart:       100,
				Compress:       true,
				OutputFormat:   "cbor",
				SpoolDir:       "/spool",
				Debounce:       time.Second,
				MaxRecordBytes: 4096,
			},
		},
		{
			name: "respects changed flags",
			fileConfig: FileConfig{
				LogLevel: "debug",
				SeqStart: &seq,
				SpoolDir: "/file/spool",
			},
			changed: map[string]bool{"seq": true, "spool-dir": true},
			initial: Config{
				LogLevel: "info",
				SeqStart: 7,
				SpoolDir: "/flag/spool",
			},
			expected: Config{
				LogLevel: "debug",
				SeqStart: 7,
				SpoolDir: "/flag/spool",
			},
		},
		{
			name:       "explicit zero seq overrides",
			fileConfig: FileConfig{SeqStart: &zero},
			changed:    map[string]bool{},
			initial:    Config{SeqStart: 9},
			expected:   Config{SeqStart: 0},
		},
		{
			name:       "empty file keeps existing values",
			fileConfig: FileConfig{},
			changed:    map[string]bool{},
			initial:    DefaultConfig(),
			expected:   DefaultConfig(),
		},
		{
			name:       "returns error for invalid duration",
			fileConfig: FileConfig{Debounce: "soon"},
			changed:    map[string]bool{},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.initial
			err := ApplyFileConfig(&cfg, tt.fileConfig, tt.changed)

			if tt.wantErr {
				if err == nil {
					t.Error("ApplyFileConfig() expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyFileConfig() unexpected error: %v", err)
			}
			if cfg != tt.expected {
				t.Errorf("config = %+v, want %+v", cfg, tt.expected)
			}
		})
	}
}

func TestLoadFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
log_level = "warn"
seq_start = 12
compress = true
output_format = "cbor"
spool_dir = "/var/spool/ndtp"
debounce = "500ms"
max_record_bytes = 65536
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	fc, err := LoadFileConfig(configPath)
	if err != nil {
		t.Fatalf("LoadFileConfig() error = %v", err)
	}

	if fc.LogLevel != "warn" {
		t.Errorf("LogLevel = %v, want warn", fc.LogLevel)
	}
	if fc.SeqStart == nil || *fc.SeqStart != 12 {
		t.Errorf("SeqStart = %v, want 12", fc.SeqStart)
	}
	if fc.Compress == nil || !*fc.Compress {
		t.Errorf("Compress = %v, want true", fc.Compress)
	}
	if fc.OutputFormat != "cbor" {
		t.Errorf("OutputFormat = %v, want cbor", fc.OutputFormat)
	}
	if fc.SpoolDir != "/var/spool/ndtp" {
		t.Errorf("SpoolDir = %v, want /var/spool/ndtp", fc.SpoolDir)
	}
	if fc.Debounce != "500ms" {
		t.Errorf("Debounce = %v, want 500ms", fc.Debounce)
	}
	if fc.MaxRecordBytes == nil || *fc.MaxRecordBytes != 65536 {
		t.Errorf("MaxRecordBytes = %v, want 65536", fc.MaxRecordBytes)
	}
}

func TestLoadFileConfig_InvalidFile(t *testing.T) {
	_, err := LoadFileConfig("/nonexistent/path/config.toml")
	if err == nil {
		t.Error("LoadFileConfig() expected error for nonexistent file")
	}
}

func TestLoadFileConfig_InvalidTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.toml")

	invalidContent := `
log_level = "info"
this is not valid toml
`

	if err := os.WriteFile(configPath, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	_, err := LoadFileConfig(configPath)
	if err == nil {
		t.Error("LoadFileConfig() expected error for invalid TOML")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path != "" && !strings.Contains(path, ".ndtp") {
		t.Errorf("DefaultConfigPath() = %v, should contain .ndtp", path)
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	existingFile := filepath.Join(tmpDir, "exists.txt")

	if err := os.WriteFile(existingFile, []byte("test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if !FileExists(existingFile) {
		t.Error("FileExists() = false, want true for existing file")
	}

	if FileExists(filepath.Join(tmpDir, "nonexistent.txt")) {
		t.Error("FileExists() = true, want false for nonexistent file")
	}
}
