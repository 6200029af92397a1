// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1632

import (
	"github.com/GermanBionicSystems/hmidevices/hmi"
	"github.com/GermanBionicSystems/hmidevices/ht1632/segment"
)

// RAMSize is the number of display RAM bytes refreshed on every write.
const RAMSize = 16

const (
	// digitShift is the bit of the leftmost digit in every RAM byte. The two
	// lower bits belong to digits that are not fitted on this panel.
	digitShift = 2
	// The wifi icon is wired on the row of the LEFT_1 decimal point.
	wifiByte = 1
	wifiBit  = 7
)

// Frame is an image of the controller display RAM. Byte n holds segment n of
// every digit, digit d on bit d+2.
type Frame [RAMSize]byte

// Encode renders s into f using t.
//
// A digit in the hidden phase of its blink contributes nothing. The wifi bit
// is lit by the LEFT_1 decimal point or by the wifi icon while it blinks in
// its visible phase.
func Encode(f *Frame, s *hmi.Snapshot, t *segment.Table) {
	*f = Frame{}
	var masks [hmi.NumDigits]segment.Mask
	for d := range s.Digits {
		if !s.DigitBlink[d].Toggle {
			continue
		}
		m := t.Lookup(s.Digits[d].Char)
		if s.Digits[d].DP {
			m |= segment.DP
		}
		masks[d] = m
		for seg := 0; seg < RAMSize; seg++ {
			if m&(1<<uint(seg)) != 0 {
				f[seg] |= 1 << uint(d+digitShift)
			}
		}
	}
	wifi := s.IconBlink[hmi.IconWifi]
	if masks[hmi.Left1]&segment.DP != 0 || (wifi.Active && wifi.Toggle) {
		f[wifiByte] |= 1 << wifiBit
	}
}

// Digit returns the segments lit for digit d. The decimal point is not
// stored in RAM and is never reported.
func (f *Frame) Digit(d hmi.Digit) segment.Mask {
	var m segment.Mask
	for seg := 0; seg < RAMSize; seg++ {
		if f[seg]&(1<<uint(int(d)+digitShift)) != 0 {
			m |= 1 << uint(seg)
		}
	}
	return m
}

// Wifi reports whether the shared wifi / LEFT_1 decimal point bit is lit.
func (f *Frame) Wifi() bool {
	return f[wifiByte]&(1<<wifiBit) != 0
}
