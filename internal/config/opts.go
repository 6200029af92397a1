// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"time"

	"github.com/GermanBionicSystems/hmidevices/ht1632"
	"github.com/GermanBionicSystems/hmidevices/ht1632/segment"
	"periph.io/x/conn/v3/physic"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// DriverOpts returns the driver options described by a normalized cfg.
func (cfg *Config) DriverOpts() ht1632.Opts {
	o := ht1632.DefaultOpts
	f := physic.Frequency(cfg.SPI.ClockHz) * physic.Hertz
	o.ConfigProfile.Frequency = f
	o.RefreshProfile.Frequency = f
	o.Tick = ms(cfg.Timing.TickMs)
	o.RefreshPeriod = ms(cfg.Timing.RefreshPeriodMs)
	o.RetryMax = ms(cfg.Timing.RetryMaxMs)
	o.ResultRetries = cfg.Timing.ResultRetries
	if cfg.Timing.ResultTimeoutMs != nil {
		o.ResultTimeout = ms(*cfg.Timing.ResultTimeoutMs)
	}
	if cfg.Display.Duty != nil {
		o.Duty = uint8(*cfg.Display.Duty)
	}
	if cfg.Display.TestPattern {
		o.Table = &segment.TestPattern
	}
	return o
}

// BlinkTick is the period of the blink timer.
func (cfg *Config) BlinkTick() time.Duration {
	return ms(cfg.Blink.TickMs)
}
