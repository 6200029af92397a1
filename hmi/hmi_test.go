// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hmi

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewDefaults(t *testing.T) {
	d := New()
	s := d.Snapshot()
	for i, c := range []byte(DefaultText) {
		if got := s.Digits[i]; got != (DigitState{Char: c}) {
			t.Errorf("digit %v = %+v, want %q without DP", Digit(i), got, c)
		}
		if !s.DigitBlink[i].Toggle || s.DigitBlink[i].Active {
			t.Errorf("digit %v blink = %+v, want visible and idle", Digit(i), s.DigitBlink[i])
		}
	}
	for i := range s.IconBlink {
		if s.IconBlink[i].Active {
			t.Errorf("icon %d blinking after New()", i)
		}
	}
	if s.Icons != [IconBitmapBytes]byte{} {
		t.Errorf("icons = %v, want all off", s.Icons)
	}
}

func TestIconBitmapSize(t *testing.T) {
	if NumIcons != 27 {
		t.Errorf("NumIcons = %d, want 27", NumIcons)
	}
	if IconBitmapBytes != 4 {
		t.Errorf("IconBitmapBytes = %d, want 4", IconBitmapBytes)
	}
}

func TestDigitString(t *testing.T) {
	if got := Left1.String(); got != "LEFT_1" {
		t.Errorf("Left1.String() = %q", got)
	}
	if got := Digit(7).String(); got != "Digit(7)" {
		t.Errorf("Digit(7).String() = %q", got)
	}
}

func TestSetDigit(t *testing.T) {
	d := New()
	if err := d.SetDigit(Middle, 'A', true); err != nil {
		t.Fatal(err)
	}
	got, err := d.Digit(Middle)
	if err != nil {
		t.Fatal(err)
	}
	if want := (DigitState{Char: 'A', DP: true}); got != want {
		t.Errorf("Digit(Middle) = %+v, want %+v", got, want)
	}
	if err := d.SetDigit(NumDigits, 'A', false); !errors.Is(err, ErrDigitRange) {
		t.Errorf("SetDigit(NumDigits) = %v, want ErrDigitRange", err)
	}
	if err := d.SetDigit(-1, 'A', false); !errors.Is(err, ErrDigitRange) {
		t.Errorf("SetDigit(-1) = %v, want ErrDigitRange", err)
	}
}

func TestSetText(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want [NumDigits]DigitState
	}{
		{
			in:   "12",
			want: [NumDigits]DigitState{{Char: '1'}, {Char: '2'}, {Char: ' '}, {Char: ' '}, {Char: ' '}},
		},
		{
			in:   "1.5h",
			want: [NumDigits]DigitState{{Char: '1', DP: true}, {Char: '5'}, {Char: 'h'}, {Char: ' '}, {Char: ' '}},
		},
		{
			in:   ".1",
			want: [NumDigits]DigitState{{Char: '.'}, {Char: '1'}, {Char: ' '}, {Char: ' '}, {Char: ' '}},
		},
		{
			in:   "1..",
			want: [NumDigits]DigitState{{Char: '1', DP: true}, {Char: '.'}, {Char: ' '}, {Char: ' '}, {Char: ' '}},
		},
		{
			in:   "ABCDEFG",
			want: [NumDigits]DigitState{{Char: 'A'}, {Char: 'B'}, {Char: 'C'}, {Char: 'D'}, {Char: 'E'}},
		},
		{
			in:   "ABCDE.",
			want: [NumDigits]DigitState{{Char: 'A'}, {Char: 'B'}, {Char: 'C'}, {Char: 'D'}, {Char: 'E', DP: true}},
		},
	} {
		t.Run(tc.in, func(t *testing.T) {
			d := New()
			d.SetText(tc.in)
			s := d.Snapshot()
			if diff := cmp.Diff(s.Digits, tc.want); diff != "" {
				t.Errorf("SetText(%q) difference (-got +want):\n%s", tc.in, diff)
			}
		})
	}
}

func TestTextWidth(t *testing.T) {
	for in, want := range map[string]int{
		"":       0,
		"01234":  5,
		"1.5h":   3,
		".1":     2,
		"1..":    2,
		"1...":   2,
		"1....":  3,
		"ABCDE.": 5,
	} {
		if got := TextWidth(in); got != want {
			t.Errorf("TextWidth(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestIcons(t *testing.T) {
	d := New()
	for _, i := range []Icon{IconWifi, IconSalt, IconEasyEnroll} {
		if err := d.SetIcon(i, true); err != nil {
			t.Fatal(err)
		}
	}
	s := d.Snapshot()
	if want := [IconBitmapBytes]byte{0x02, 0x00, 0x20, 0x04}; s.Icons != want {
		t.Errorf("bitmap = %#v, want %#v", s.Icons, want)
	}
	if !d.IconOn(IconSalt) || d.IconOn(IconP1) {
		t.Error("IconOn() mismatch")
	}
	if err := d.SetIcon(IconSalt, false); err != nil {
		t.Fatal(err)
	}
	if d.IconOn(IconSalt) {
		t.Error("IconSalt still on")
	}
	if err := d.SetIcon(NumIcons, true); !errors.Is(err, ErrIconRange) {
		t.Errorf("SetIcon(NumIcons) = %v, want ErrIconRange", err)
	}
	if d.IconOn(-1) {
		t.Error("IconOn(-1) = true")
	}
}

func TestClear(t *testing.T) {
	d := New()
	_ = d.SetIcon(IconWifi, true)
	_ = d.StartIconBlink(IconWifi, Timing{DutyOn: 1, DutyOff: 1, Endless: true})
	_ = d.StartDigitBlink(Left2, Timing{DutyOn: 1, DutyOff: 1, Endless: true})
	d.Clear()
	s := d.Snapshot()
	for i := range s.Digits {
		if s.Digits[i] != (DigitState{Char: ' '}) {
			t.Errorf("digit %d = %+v after Clear()", i, s.Digits[i])
		}
	}
	if s.IconOn(IconWifi) || s.IconBlink[IconWifi].Active || s.DigitBlink[Left2].Active {
		t.Error("Clear() left icons or blinks on")
	}
}
