// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1632

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPIBus is a Bus on a periph.io SPI port.
//
// The port is connected once with 8 bits words; the per profile header
// widths are produced by packing every transaction into a bit stream, so
// switching profiles does not reconnect the port. A profile must therefore
// use the frequency and mode the port was connected with.
//
// Chip select timing is left to the host driver: periph cannot hold CS for
// extra clock cycles around a transfer.
//
// Transfers are whole bytes. A RAM write of 3+7+128 bits is padded with 6
// zero bits, which land in RAM addresses 32 and 33; no segment is wired to
// them on this panel.
type SPIBus struct {
	port spi.Port
	freq physic.Frequency
	mode spi.Mode

	mu   sync.Mutex
	conn spi.Conn
	dev  *spiDevice
}

// NewSPIBus returns a Bus clocking p at f in the given mode.
func NewSPIBus(p spi.Port, f physic.Frequency, mode spi.Mode) *SPIBus {
	return &SPIBus{port: p, freq: f, mode: mode}
}

func (b *SPIBus) String() string {
	return fmt.Sprintf("SPIBus{%s}", b.port)
}

// Init implements Bus.
func (b *SPIBus) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		return nil
	}
	c, err := b.port.Connect(b.freq, b.mode, 8)
	if err != nil {
		return fmt.Errorf("ht1632: %w", err)
	}
	b.conn = c
	return nil
}

// Attach implements Bus.
func (b *SPIBus) Attach(p *Profile) (Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil, ErrNotInitialized
	}
	if b.dev != nil {
		return nil, ErrAttached
	}
	if p.CommandBits < 0 || p.AddressBits < 0 || p.CommandBits > 8 || p.AddressBits > 16 {
		return nil, fmt.Errorf("%w: %q header widths %d/%d", ErrProfile, p.Name, p.CommandBits, p.AddressBits)
	}
	if p.Frequency != b.freq || p.Mode != b.mode {
		return nil, fmt.Errorf("%w: %q wants %s %s, the port runs at %s %s", ErrProfile, p.Name, p.Frequency, p.Mode, b.freq, b.mode)
	}
	size := p.QueueSize
	if size <= 0 {
		size = 1
	}
	b.dev = &spiDevice{bus: b, profile: *p, results: make(chan *Transaction, size)}
	return b.dev, nil
}

type spiDevice struct {
	bus     *SPIBus
	profile Profile
	results chan *Transaction
}

func (d *spiDevice) String() string {
	return d.profile.Name
}

// Queue implements Device. The transfer is clocked out before Queue returns.
func (d *spiDevice) Queue(ctx context.Context, tx *Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b := d.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dev != d {
		return ErrNotAttached
	}
	if len(d.results) == cap(d.results) {
		return ErrQueueFull
	}
	w, err := pack(&d.profile, tx)
	if err != nil {
		return err
	}
	if err := b.conn.Tx(w, nil); err != nil {
		return fmt.Errorf("ht1632: %w", err)
	}
	d.results <- tx
	return nil
}

// Result implements Device.
func (d *spiDevice) Result(ctx context.Context) (*Transaction, error) {
	select {
	case tx, ok := <-d.results:
		if !ok {
			return nil, ErrNotAttached
		}
		return tx, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

// Detach implements Device. Results queued before Detach can still be
// collected.
func (d *spiDevice) Detach() error {
	b := d.bus
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dev != d {
		return ErrNotAttached
	}
	b.dev = nil
	close(d.results)
	return nil
}

// pack serializes tx MSB first: CommandBits of Command, AddressBits of
// Address, then Bits bits of Data. The last byte is padded with zeros.
func pack(p *Profile, tx *Transaction) ([]byte, error) {
	if uint(tx.Command) >= 1<<uint(p.CommandBits) || uint(tx.Address) >= 1<<uint(p.AddressBits) {
		return nil, ErrFieldWidth
	}
	if tx.Bits < 0 || tx.Bits > 8*len(tx.Data) {
		return nil, fmt.Errorf("ht1632: %d data bits with %d bytes of data", tx.Bits, len(tx.Data))
	}
	total := p.CommandBits + p.AddressBits + tx.Bits
	w := bitWriter{buf: make([]byte, (total+7)/8)}
	w.writeField(uint32(tx.Command), p.CommandBits)
	w.writeField(uint32(tx.Address), p.AddressBits)
	for i := 0; i < tx.Bits; i++ {
		w.writeBit(tx.Data[i/8] >> (7 - uint(i%8)) & 1)
	}
	return w.buf, nil
}

type bitWriter struct {
	buf []byte
	n   int
}

func (w *bitWriter) writeBit(bit byte) {
	if bit != 0 {
		w.buf[w.n/8] |= 0x80 >> uint(w.n%8)
	}
	w.n++
}

func (w *bitWriter) writeField(v uint32, bits int) {
	for i := bits - 1; i >= 0; i-- {
		w.writeBit(byte(v>>uint(i)) & 1)
	}
}
