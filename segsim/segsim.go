// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package segsim emulates the HT1632C front panel on the terminal (stdout)
// using ANSI color codes.
//
// Bus implements ht1632.Bus so the driver can run unchanged on a development
// machine. Every RAM write is decoded and drawn as five 16-segment digits;
// Render draws a frame to an image.
package segsim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"

	"github.com/GermanBionicSystems/hmidevices/hmi"
	"github.com/GermanBionicSystems/hmidevices/ht1632"
	"github.com/GermanBionicSystems/hmidevices/ht1632/segment"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3"
)

// Transaction ids as sent by the driver.
const (
	idCommand = 0x4
	idWrite   = 0x5
)

// Opts represents the options available for the emulator.
type Opts struct {
	// Writer receives the terminal output. Defaults to a colorable stdout.
	Writer  io.Writer
	Palette *ansi256.Palette
	// On and Off are the colors of lit and unlit segments.
	On  color.NRGBA
	Off color.NRGBA

	_ struct{}
}

// DefaultOpts mimics the orange LEDs of the panel.
var DefaultOpts = Opts{
	On:  color.NRGBA{R: 255, G: 96, B: 0, A: 255},
	Off: color.NRGBA{R: 48, G: 16, B: 0, A: 255},
}

// Bus is a HT1632C emulator that outputs to the console.
type Bus struct {
	w       io.Writer
	palette ansi256.Palette
	on      color.NRGBA
	off     color.NRGBA

	mu          sync.Mutex
	initialized bool
	dev         *device
	last        ht1632.Frame
	frames      int
	commands    []uint8
	drawn       bool
	buf         bytes.Buffer
}

// New returns a Bus that displays at the console.
func New(opts *Opts) *Bus {
	if opts == nil {
		opts = &DefaultOpts
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Bus{w: w, palette: *p, on: opts.On, off: opts.Off}
}

func (b *Bus) String() string {
	return "SegSim"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (b *Bus) Halt() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, err := b.w.Write([]byte("\n\033[0m"))
	return err
}

// Init implements ht1632.Bus.
func (b *Bus) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

// Attach implements ht1632.Bus.
func (b *Bus) Attach(p *ht1632.Profile) (ht1632.Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, ht1632.ErrNotInitialized
	}
	if b.dev != nil {
		return nil, ht1632.ErrAttached
	}
	size := p.QueueSize
	if size <= 0 {
		size = 1
	}
	b.dev = &device{bus: b, results: make(chan *ht1632.Transaction, size)}
	return b.dev, nil
}

// Last returns the last frame written.
func (b *Bus) Last() ht1632.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

// Frames returns the number of RAM writes received.
func (b *Bus) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Commands returns the configuration commands received so far.
func (b *Bus) Commands() []uint8 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]uint8(nil), b.commands...)
}

type device struct {
	bus     *Bus
	results chan *ht1632.Transaction
}

func (d *device) Queue(ctx context.Context, tx *ht1632.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := d.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dev != d {
		return ht1632.ErrNotAttached
	}
	if len(d.results) == cap(d.results) {
		return ht1632.ErrQueueFull
	}
	switch tx.Command {
	case idCommand:
		b.commands = append(b.commands, uint8(tx.Address))
	case idWrite:
		if tx.Address != 0 || tx.Bits != ht1632.RAMSize*8 || len(tx.Data) < ht1632.RAMSize {
			return fmt.Errorf("segsim: unsupported write of %d bits at %d", tx.Bits, tx.Address)
		}
		copy(b.last[:], tx.Data)
		b.frames++
		if err := b.draw(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("segsim: unknown command id %d", tx.Command)
	}
	d.results <- tx
	return nil
}

func (d *device) Result(ctx context.Context) (*ht1632.Transaction, error) {
	select {
	case tx, ok := <-d.results:
		if !ok {
			return nil, ht1632.ErrNotAttached
		}
		return tx, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ht1632.ErrTimeout
		}
		return nil, ctx.Err()
	}
}

func (d *device) Detach() error {
	b := d.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dev != d {
		return ht1632.ErrNotAttached
	}
	b.dev = nil
	close(d.results)
	return nil
}

// cells lays a digit out on a 5x5 grid; a cell is lit when any of its
// segments is.
var cells = [5][5]segment.Mask{
	{segment.A1 | segment.F, segment.A1, segment.A1 | segment.A2 | segment.J, segment.A2, segment.A2 | segment.B},
	{segment.F, segment.H, segment.J, segment.K, segment.B},
	{segment.E | segment.F | segment.G1, segment.G1, segment.G1 | segment.G2 | segment.J | segment.M, segment.G2, segment.B | segment.C | segment.G2},
	{segment.E, segment.N, segment.M, segment.L, segment.C},
	{segment.E | segment.D1, segment.D1, segment.D1 | segment.D2 | segment.M, segment.D2, segment.C | segment.D2},
}

// lines is the number of terminal lines of a frame.
const lines = len(cells) + 1

// draw writes the last frame. It must be called with mu held.
func (b *Bus) draw() error {
	// This code is designed to minimize the amount of memory allocated per call.
	b.buf.Reset()
	if b.drawn {
		fmt.Fprintf(&b.buf, "\033[%dA", lines)
	}
	for row := range cells {
		_, _ = b.buf.WriteString("\r\033[0m")
		for d := hmi.Digit(0); d < hmi.NumDigits; d++ {
			m := b.last.Digit(d)
			for col := range cells[row] {
				c := b.off
				if m&cells[row][col] != 0 {
					c = b.on
				}
				_, _ = io.WriteString(&b.buf, b.palette.Block(c))
			}
			_, _ = b.buf.WriteString("\033[0m  ")
		}
		_, _ = b.buf.WriteString("\n")
	}
	c := b.off
	if b.last.Wifi() {
		c = b.on
	}
	_, _ = b.buf.WriteString("\r\033[0mwifi ")
	_, _ = io.WriteString(&b.buf, b.palette.Block(c))
	_, _ = b.buf.WriteString("\033[0m\n")
	b.drawn = true
	_, err := b.buf.WriteTo(b.w)
	return err
}

var _ ht1632.Bus = &Bus{}
var _ conn.Resource = &Bus{}
