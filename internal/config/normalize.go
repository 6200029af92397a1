// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"github.com/GermanBionicSystems/hmidevices/hmi"
	"github.com/GermanBionicSystems/hmidevices/ht1632"
	"periph.io/x/conn/v3/physic"
)

// Normalize fills the keys left out of the file with the driver defaults.
// Explicit values, valid or not, are kept for Validate to judge.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	d := &ht1632.DefaultOpts

	if cfg.SPI.ClockHz == 0 {
		cfg.SPI.ClockHz = int64(d.ConfigProfile.Frequency / physic.Hertz)
	}

	t := &cfg.Timing
	if t.TickMs == 0 {
		t.TickMs = int(d.Tick.Milliseconds())
	}
	if t.RefreshPeriodMs == 0 {
		t.RefreshPeriodMs = int(d.RefreshPeriod.Milliseconds())
	}
	if t.ResultTimeoutMs == nil {
		v := int(d.ResultTimeout.Milliseconds())
		t.ResultTimeoutMs = &v
	}
	if t.ResultRetries == 0 {
		t.ResultRetries = d.ResultRetries
	}
	if t.RetryMaxMs == 0 {
		t.RetryMaxMs = int(d.RetryMax.Milliseconds())
	}

	if cfg.Display.Text == "" {
		cfg.Display.Text = hmi.DefaultText
	}
	if cfg.Display.Duty == nil {
		v := int(d.Duty)
		cfg.Display.Duty = &v
	}

	if cfg.Blink.TickMs == 0 {
		cfg.Blink.TickMs = 100
	}
}
