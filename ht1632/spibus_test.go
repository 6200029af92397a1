// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1632

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"
)

func newTestBus(t *testing.T) (*SPIBus, *spitest.Record) {
	t.Helper()
	rec := &spitest.Record{}
	b := NewSPIBus(rec, ConfigProfile.Frequency, ConfigProfile.Mode)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	return b, rec
}

func TestPackCommands(t *testing.T) {
	b, rec := newTestBus(t)
	dev, err := b.Attach(&ConfigProfile)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := range configSequence {
		tx := &Transaction{Command: idCommand, Address: uint16(configSequence[i].value(15))}
		if err := dev.Queue(ctx, tx); err != nil {
			t.Fatal(err)
		}
		got, err := dev.Result(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != tx {
			t.Errorf("Result() = %p, want %p", got, tx)
		}
	}
	want := []conntest.IO{
		{W: []byte{0x80, 0x00}}, // SYS DIS
		{W: []byte{0x84, 0x00}}, // COM option
		{W: []byte{0x83, 0x00}}, // master mode
		{W: []byte{0x80, 0x20}}, // SYS ON
		{W: []byte{0x95, 0xe0}}, // PWM 16/16
		{W: []byte{0x81, 0x00}}, // blink off
		{W: []byte{0x80, 0x60}}, // LED ON
	}
	if diff := cmp.Diff(rec.Ops, want, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Queue() difference (-got +want):\n%s", diff)
	}
}

func TestPackRefresh(t *testing.T) {
	b, rec := newTestBus(t)
	dev, err := b.Attach(&RefreshProfile)
	if err != nil {
		t.Fatal(err)
	}
	var f Frame
	f[0] = 0xff
	f[15] = 0x81
	if err := dev.Queue(context.Background(), &Transaction{Command: idWrite, Data: f[:], Bits: 128}); err != nil {
		t.Fatal(err)
	}
	// 3 + 7 + 128 bits, the data is shifted by 10 bits.
	want := []conntest.IO{{W: []byte{
		0xa0, 0x3f, 0xc0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x20, 0x40,
	}}}
	if diff := cmp.Diff(rec.Ops, want, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Queue() difference (-got +want):\n%s", diff)
	}
}

func TestPackErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		p    Profile
		tx   Transaction
	}{
		{name: "command", p: ConfigProfile, tx: Transaction{Command: 8}},
		{name: "address", p: RefreshProfile, tx: Transaction{Command: idWrite, Address: 0x80}},
		{name: "data", p: RefreshProfile, tx: Transaction{Command: idWrite, Data: []byte{1}, Bits: 9}},
		{name: "negative bits", p: RefreshProfile, tx: Transaction{Bits: -1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := pack(&tc.p, &tc.tx); err == nil {
				t.Error("pack() succeeded")
			}
		})
	}
	if _, err := pack(&ConfigProfile, &Transaction{Command: 8}); !errors.Is(err, ErrFieldWidth) {
		t.Errorf("pack() = %v, want %v", err, ErrFieldWidth)
	}
}

func TestSPIBusAttach(t *testing.T) {
	rec := &spitest.Record{}
	b := NewSPIBus(rec, ConfigProfile.Frequency, ConfigProfile.Mode)
	if _, err := b.Attach(&ConfigProfile); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Attach() before Init = %v, want %v", err, ErrNotInitialized)
	}
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	// The port is only connected once.
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	dev, err := b.Attach(&ConfigProfile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Attach(&RefreshProfile); !errors.Is(err, ErrAttached) {
		t.Fatalf("second Attach() = %v, want %v", err, ErrAttached)
	}
	if err := dev.Detach(); err != nil {
		t.Fatal(err)
	}
	if err := dev.Detach(); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("second Detach() = %v, want %v", err, ErrNotAttached)
	}
	if err := dev.Queue(context.Background(), &Transaction{Command: idCommand}); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("Queue() on detached = %v, want %v", err, ErrNotAttached)
	}
	if _, err := dev.Result(context.Background()); !errors.Is(err, ErrNotAttached) {
		t.Fatalf("Result() on detached = %v, want %v", err, ErrNotAttached)
	}
	if _, err := b.Attach(&RefreshProfile); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Attach(&Profile{Name: "bad", CommandBits: 9}); !errors.Is(err, ErrAttached) {
		t.Fatalf("Attach() = %v, want %v", err, ErrAttached)
	}
}

func TestSPIBusQueueFull(t *testing.T) {
	b, _ := newTestBus(t)
	p := ConfigProfile
	p.QueueSize = 2
	dev, err := b.Attach(&p)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := dev.Queue(ctx, &Transaction{Command: idCommand}); err != nil {
			t.Fatal(err)
		}
	}
	if err := dev.Queue(ctx, &Transaction{Command: idCommand}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("Queue() = %v, want %v", err, ErrQueueFull)
	}
	if _, err := dev.Result(ctx); err != nil {
		t.Fatal(err)
	}
	if err := dev.Queue(ctx, &Transaction{Command: idCommand}); err != nil {
		t.Fatal(err)
	}
}

func TestSPIBusResultTimeout(t *testing.T) {
	b, _ := newTestBus(t)
	dev, err := b.Attach(&ConfigProfile)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	if _, err := dev.Result(ctx); !errors.Is(err, ErrTimeout) {
		t.Fatalf("Result() = %v, want %v", err, ErrTimeout)
	}
	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	if _, err := dev.Result(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Result() = %v, want %v", err, context.Canceled)
	}
	if err := dev.Queue(ctx, &Transaction{Command: idCommand}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Queue() = %v, want %v", err, context.Canceled)
	}
}

func TestSPIBusProfileMismatch(t *testing.T) {
	b, rec := newTestBus(t)
	for _, tc := range []struct {
		name string
		mod  func(p *Profile)
	}{
		{name: "frequency", mod: func(p *Profile) { p.Frequency = physic.MegaHertz }},
		{name: "mode", mod: func(p *Profile) { p.Mode = spi.Mode3 }},
		{name: "header", mod: func(p *Profile) { p.CommandBits = 9 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			p := RefreshProfile
			tc.mod(&p)
			if _, err := b.Attach(&p); !errors.Is(err, ErrProfile) {
				t.Fatalf("Attach() = %v, want %v", err, ErrProfile)
			}
		})
	}
	if len(rec.Ops) != 0 {
		t.Errorf("unexpected transfers %v", rec.Ops)
	}
	// The bus stays free after a rejected profile.
	if _, err := b.Attach(&RefreshProfile); err != nil {
		t.Fatal(err)
	}
}
