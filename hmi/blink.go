// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hmi

import (
	"context"
	"errors"
	"time"
)

// ErrTiming is returned when a blink timing cannot produce a single cycle.
var ErrTiming = errors.New("hmi: invalid blink timing")

// Timing configures a blink. Durations are counted in blink ticks.
type Timing struct {
	DutyOn  uint32
	DutyOff uint32
	Endless bool
	// Repeats is the number of on/off cycles when Endless is false.
	Repeats uint8
}

// BlinkState is the blink bookkeeping of one digit or icon.
//
// Toggle is the visible phase: display drivers hide the element while it is
// false.
type BlinkState struct {
	DutyOn  uint32
	DutyOff uint32
	Counter uint32
	Active  bool
	Toggle  bool
	Endless bool
	Repeats uint8
}

func (b *BlinkState) start(t Timing) {
	*b = BlinkState{
		DutyOn:  t.DutyOn,
		DutyOff: t.DutyOff,
		Active:  true,
		Toggle:  true,
		Endless: t.Endless,
		Repeats: t.Repeats,
	}
}

func (b *BlinkState) stop() {
	b.Active = false
	b.Toggle = true
	b.Counter = 0
}

// advance moves the blink one tick forward.
func (b *BlinkState) advance() {
	if !b.Active {
		return
	}
	b.Counter++
	if b.Toggle {
		if b.Counter >= b.DutyOn {
			b.Toggle = false
			b.Counter = 0
		}
		return
	}
	if b.Counter < b.DutyOff {
		return
	}
	b.Toggle = true
	b.Counter = 0
	if b.Endless {
		return
	}
	if b.Repeats > 0 {
		b.Repeats--
	}
	if b.Repeats == 0 {
		b.Active = false
	}
}

func (t *Timing) validate() error {
	if t.DutyOn == 0 && t.DutyOff == 0 {
		return ErrTiming
	}
	if !t.Endless && t.Repeats == 0 {
		return ErrTiming
	}
	return nil
}

// StartDigitBlink starts blinking a digit.
func (d *Display) StartDigitBlink(pos Digit, t Timing) error {
	if pos < 0 || pos >= NumDigits {
		return ErrDigitRange
	}
	if err := t.validate(); err != nil {
		return err
	}
	d.mu.Lock()
	d.s.DigitBlink[pos].start(t)
	d.mu.Unlock()
	return nil
}

// StopDigitBlink stops blinking a digit and leaves it visible.
func (d *Display) StopDigitBlink(pos Digit) error {
	if pos < 0 || pos >= NumDigits {
		return ErrDigitRange
	}
	d.mu.Lock()
	d.s.DigitBlink[pos].stop()
	d.mu.Unlock()
	return nil
}

// StartIconBlink starts blinking an icon.
func (d *Display) StartIconBlink(i Icon, t Timing) error {
	if i < 0 || i >= NumIcons {
		return ErrIconRange
	}
	if err := t.validate(); err != nil {
		return err
	}
	d.mu.Lock()
	d.s.IconBlink[i].start(t)
	d.mu.Unlock()
	return nil
}

// StopIconBlink stops blinking an icon.
func (d *Display) StopIconBlink(i Icon) error {
	if i < 0 || i >= NumIcons {
		return ErrIconRange
	}
	d.mu.Lock()
	d.s.IconBlink[i].stop()
	d.mu.Unlock()
	return nil
}

// Tick advances every active blink by one tick.
func (d *Display) Tick() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.s.DigitBlink {
		d.s.DigitBlink[i].advance()
	}
	for i := range d.s.IconBlink {
		d.s.IconBlink[i].advance()
	}
}

// Run calls Tick every period until ctx is done. It returns immediately when
// period is not positive.
func (d *Display) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		return
	}
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			d.Tick()
		}
	}
}
