// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the hmidisplay YAML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SPI     SPIConfig     `yaml:"spi"`
	Timing  TimingConfig  `yaml:"timing"`
	Display DisplayConfig `yaml:"display"`
	Blink   BlinkConfig   `yaml:"blink"`
}

// ---- BUS ----

type SPIConfig struct {
	// Port is the spireg name; empty selects the first port.
	Port    string `yaml:"port"`
	ClockHz int64  `yaml:"clock_hz"`
}

// ---- SEQUENCER ----

type TimingConfig struct {
	TickMs          int `yaml:"tick_ms"`
	RefreshPeriodMs int `yaml:"refresh_period_ms"`
	// ResultTimeoutMs 0 waits forever for transaction results.
	ResultTimeoutMs *int `yaml:"result_timeout_ms"`
	ResultRetries   int  `yaml:"result_retries"`
	RetryMaxMs      int  `yaml:"retry_max_ms"`
}

// ---- CONTENT ----

type DisplayConfig struct {
	Text        string `yaml:"text"`
	Duty        *int   `yaml:"duty"`
	TestPattern bool   `yaml:"test_pattern"`
}

type BlinkConfig struct {
	TickMs int `yaml:"tick_ms"`
}

// Load reads, normalizes and validates the file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document. Unknown keys are rejected. An empty
// document yields the defaults.
func Parse(b []byte) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
