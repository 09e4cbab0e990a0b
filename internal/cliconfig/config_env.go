package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (NDTP_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv("NDTP_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("format", os.Getenv("NDTP_OUTPUT_FORMAT"), &cfg.OutputFormat)
	s.setString("spool-dir", os.Getenv("NDTP_SPOOL_DIR"), &cfg.SpoolDir)

	if err := s.setDuration("debounce", os.Getenv("NDTP_DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}
	if err := s.setIntFromString("seq", os.Getenv("NDTP_SEQ_START"), &cfg.SeqStart); err != nil {
		return err
	}
	if err := s.setIntFromString("max-record-bytes", os.Getenv("NDTP_MAX_RECORD_BYTES"), &cfg.MaxRecordBytes); err != nil {
		return err
	}

	s.setBoolFromString("compress", os.Getenv("NDTP_COMPRESS"), &cfg.Compress)

	return nil
}
