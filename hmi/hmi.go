// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hmi holds the logical content of the appliance front panel: the
// five alphanumeric digits, the icon bitmap and the blink state of every
// digit and icon.
//
// The application writes through the Display methods; display drivers read a
// consistent copy once per refresh with Snapshot. A value changed while a
// refresh is in flight shows up on the next one.
package hmi

import (
	"errors"
	"fmt"
	"sync"
)

// Digit is a physical digit position, numbered left to right.
type Digit int

const (
	Left2 Digit = iota
	Left1
	Middle
	Right1
	Right2

	// NumDigits is the number of digit positions.
	NumDigits = 5
)

var digitNames = [NumDigits]string{"LEFT_2", "LEFT_1", "MIDDLE", "RIGHT_1", "RIGHT_2"}

func (d Digit) String() string {
	if d < 0 || d >= NumDigits {
		return fmt.Sprintf("Digit(%d)", int(d))
	}
	return digitNames[d]
}

// Icon identifies a panel icon.
type Icon int

const (
	IconNone Icon = iota // placeholder for "no icon mapped"
	IconWifi
	IconOpenDoor
	IconAddDish
	IconOption1
	IconOption2
	IconOption3
	IconOption4
	IconOption5
	IconOption6
	IconP1
	IconP2
	IconP3
	IconP4
	IconPTotalCare
	IconDelay3H
	IconDelay6H
	IconDelay9H
	IconPhasePrewash
	IconPhaseMainwash
	IconPhaseDry
	IconSalt
	IconTimeDot
	IconLD11
	IconLD12
	IconStdEnroll
	IconEasyEnroll

	// NumIcons is the number of icon identifiers, IconNone included.
	NumIcons = iota
)

// IconBitmapBytes is the size of the packed icon bitmap.
const IconBitmapBytes = NumIcons/8 + 1

var (
	// ErrDigitRange is returned for a digit position outside Left2..Right2.
	ErrDigitRange = errors.New("hmi: digit out of range")
	// ErrIconRange is returned for an icon outside IconNone..IconEasyEnroll.
	ErrIconRange = errors.New("hmi: icon out of range")
)

// DigitState is what one digit shows when visible.
type DigitState struct {
	Char byte
	DP   bool
}

// Snapshot is a copy of the whole panel state.
type Snapshot struct {
	Digits     [NumDigits]DigitState
	Icons      [IconBitmapBytes]byte
	DigitBlink [NumDigits]BlinkState
	IconBlink  [NumIcons]BlinkState
}

// IconOn reports whether the icon bit is set in the bitmap.
func (s *Snapshot) IconOn(i Icon) bool {
	if i < 0 || i >= NumIcons {
		return false
	}
	return s.Icons[i/8]&(1<<(i%8)) != 0
}

// Display is the shared panel state.
//
// It is safe for concurrent use. The zero value is not usable; use New.
type Display struct {
	mu sync.RWMutex
	s  Snapshot
}

// DefaultText is shown after a cold start.
const DefaultText = "01234"

// New returns a Display with the cold start content: DefaultText, no
// decimal points, no icons and nothing blinking.
func New() *Display {
	d := &Display{}
	for i := range d.s.Digits {
		d.s.Digits[i] = DigitState{Char: DefaultText[i]}
		d.s.DigitBlink[i].Toggle = true
	}
	return d
}

// Snapshot returns a copy of the current state.
func (d *Display) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.s
}

// Digit returns the content of one digit.
func (d *Display) Digit(pos Digit) (DigitState, error) {
	if pos < 0 || pos >= NumDigits {
		return DigitState{}, ErrDigitRange
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.s.Digits[pos], nil
}

// SetDigit sets the character and decimal point of one digit.
func (d *Display) SetDigit(pos Digit, c byte, dp bool) error {
	if pos < 0 || pos >= NumDigits {
		return ErrDigitRange
	}
	d.mu.Lock()
	d.s.Digits[pos] = DigitState{Char: c, DP: dp}
	d.mu.Unlock()
	return nil
}

// SetText writes s on the digits, left aligned and padded with spaces.
//
// A '.' lights the decimal point of the previous character instead of using
// a digit of its own. Characters that do not fit are dropped.
func (d *Display) SetText(s string) {
	var digits [NumDigits]DigitState
	for i := range digits {
		digits[i].Char = ' '
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '.' && n > 0 && !digits[n-1].DP {
			digits[n-1].DP = true
			continue
		}
		if n == NumDigits {
			break
		}
		digits[n].Char = c
		n++
	}
	d.mu.Lock()
	d.s.Digits = digits
	d.mu.Unlock()
}

// TextWidth returns the number of digits SetText needs to show s whole.
func TextWidth(s string) int {
	n, dp := 0, false
	for i := 0; i < len(s); i++ {
		if s[i] == '.' && n > 0 && !dp {
			dp = true
			continue
		}
		n++
		dp = false
	}
	return n
}

// SetIcon turns the icon bit on or off.
func (d *Display) SetIcon(i Icon, on bool) error {
	if i < 0 || i >= NumIcons {
		return ErrIconRange
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if on {
		d.s.Icons[i/8] |= 1 << (i % 8)
	} else {
		d.s.Icons[i/8] &^= 1 << (i % 8)
	}
	return nil
}

// IconOn reports whether the icon bit is set.
func (d *Display) IconOn(i Icon) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.s.IconOn(i)
}

// Clear blanks every digit, clears every icon and stops all blinking.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.s.Digits {
		d.s.Digits[i] = DigitState{Char: ' '}
		d.s.DigitBlink[i].stop()
	}
	d.s.Icons = [IconBitmapBytes]byte{}
	for i := range d.s.IconBlink {
		d.s.IconBlink[i].stop()
	}
}
