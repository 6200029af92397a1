// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"fmt"

	"github.com/GermanBionicSystems/hmidevices/hmi"
)

// Validate checks configuration correctness.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.SPI.ClockHz <= 0 {
		return fmt.Errorf("spi.clock_hz must be positive, got %d", cfg.SPI.ClockHz)
	}

	t := &cfg.Timing
	for _, f := range []struct {
		name string
		v    int
	}{
		{"timing.tick_ms", t.TickMs},
		{"timing.refresh_period_ms", t.RefreshPeriodMs},
		{"timing.retry_max_ms", t.RetryMaxMs},
		{"blink.tick_ms", cfg.Blink.TickMs},
	} {
		if f.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", f.name, f.v)
		}
	}
	if t.ResultTimeoutMs != nil && *t.ResultTimeoutMs < 0 {
		return fmt.Errorf("timing.result_timeout_ms must not be negative, got %d", *t.ResultTimeoutMs)
	}
	if t.ResultRetries < 0 {
		return fmt.Errorf("timing.result_retries must not be negative, got %d", t.ResultRetries)
	}
	if t.RefreshPeriodMs <= t.TickMs {
		return fmt.Errorf("timing.refresh_period_ms (%d) must exceed timing.tick_ms (%d)", t.RefreshPeriodMs, t.TickMs)
	}

	if d := cfg.Display.Duty; d != nil && (*d < 0 || *d > 15) {
		return fmt.Errorf("display.duty must be within 0..15, got %d", *d)
	}
	if w := hmi.TextWidth(cfg.Display.Text); w > hmi.NumDigits {
		return fmt.Errorf("display.text %q needs %d digits, the panel has %d", cfg.Display.Text, w, hmi.NumDigits)
	}
	return nil
}
