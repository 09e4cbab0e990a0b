package cliconfig

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/ndtp/internal/batchfile"
	"github.com/bft-labs/ndtp/pkg/capture"
)

// Config holds CLI configuration for ndtp.
type Config struct {
	LogLevel string

	// SeqStart is the sequence number of the first message encoded.
	SeqStart int
	Compress bool

	// OutputFormat is the description format written by decode and watch.
	OutputFormat string

	SpoolDir       string
	Debounce       time.Duration
	MaxRecordBytes int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		LogLevel:       "info",
		OutputFormat:   string(batchfile.FormatJSON),
		Debounce:       200 * time.Millisecond,
		MaxRecordBytes: capture.DefaultMaxRecordBytes,
	}
}

// Validate checks the configuration for errors and normalizes values.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	c.LogLevel = strings.ToLower(c.LogLevel)

	if c.SeqStart < 0 || c.SeqStart > math.MaxUint16 {
		return fmt.Errorf("seq start %d out of range 0..%d", c.SeqStart, math.MaxUint16)
	}

	format, err := batchfile.ParseFormat(c.OutputFormat)
	if err != nil {
		return err
	}
	c.OutputFormat = string(format)

	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if c.MaxRecordBytes <= 0 {
		return fmt.Errorf("max record bytes must be positive")
	}
	return nil
}

// Format returns the validated output format.
func (c Config) Format() batchfile.Format {
	return batchfile.Format(c.OutputFormat)
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if not nil and flag not changed.
func (s *configSetter) setInt(flag string, value *int, dst *int) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
