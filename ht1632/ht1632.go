// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1632

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GermanBionicSystems/hmidevices/hmi"
	"github.com/GermanBionicSystems/hmidevices/ht1632/segment"
	"github.com/jpillora/backoff"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// ConfigProfile is the wire format used to send configuration commands.
var ConfigProfile = Profile{
	Name:        "config",
	CommandBits: 3,
	AddressBits: 8,
	Frequency:   50 * physic.KiloHertz,
	Mode:        spi.Mode0 | spi.HalfDuplex,
	QueueSize:   10,
}

// RefreshProfile is the wire format used to write the display RAM.
var RefreshProfile = Profile{
	Name:        "refresh",
	CommandBits: 3,
	AddressBits: 7,
	Frequency:   50 * physic.KiloHertz,
	Mode:        spi.Mode0 | spi.HalfDuplex,
	QueueSize:   10,
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	ConfigProfile:  ConfigProfile,
	RefreshProfile: RefreshProfile,
	RefreshPeriod:  5 * time.Second,
	Tick:           100 * time.Millisecond,
	RetryMax:       2 * time.Second,
	ResultTimeout:  time.Second,
	ResultRetries:  3,
	Duty:           15,
}

// Opts holds the configuration options.
type Opts struct {
	ConfigProfile  Profile
	RefreshProfile Profile
	// RefreshPeriod is how long the RAM is refreshed before the whole
	// configuration is sent again.
	RefreshPeriod time.Duration
	// Tick is the pause between two steps of Run.
	Tick time.Duration
	// RetryMax caps the pause between steps of Run after failures.
	RetryMax time.Duration
	// ResultTimeout bounds the wait for a transaction result. Zero waits
	// forever.
	ResultTimeout time.Duration
	// ResultRetries is the number of consecutive failed waits after which
	// the chip is configured again. Zero retries forever. It has no effect
	// when ResultTimeout is zero.
	ResultRetries int
	// Duty is the PWM duty, 0 (1/16) to 15 (16/16).
	Duty uint8
	// Table maps characters to segments. Defaults to segment.Default.
	Table *segment.Table
	// Logger receives failures. Defaults to log.Default().
	Logger *log.Logger
	// Trace logs every state transition.
	Trace bool
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Dev is a handle to a HT1632C refreshed from an hmi.Display.
//
// Step and Run must be called from a single goroutine. Halt, State and the
// Display methods are safe for concurrent use.
type Dev struct {
	bus   Bus
	disp  *hmi.Display
	opts  Opts
	table *segment.Table
	log   *log.Logger
	now   func() time.Time
	retry backoff.Backoff

	dev          Device
	startup      bool
	periodStart  time.Time
	waitFailures int
	ram          Frame
	tx           Transaction
	halt         atomic.Bool

	mu    sync.Mutex
	state state
	prev  state
}

// New returns a Dev driving the controller on bus and showing disp.
//
// A new hmi.Display is created when disp is nil. Nothing is sent to the bus
// until Step or Run is called.
func New(bus Bus, disp *hmi.Display, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Duty > 15 {
		return nil, fmt.Errorf("ht1632: invalid PWM duty %d", opts.Duty)
	}
	if opts.RefreshPeriod <= 0 || opts.Tick <= 0 {
		return nil, errors.New("ht1632: refresh period and tick must be positive")
	}
	if opts.ResultTimeout < 0 || opts.ResultRetries < 0 {
		return nil, errors.New("ht1632: negative result timeout or retries")
	}
	if disp == nil {
		disp = hmi.New()
	}
	d := &Dev{
		bus:     bus,
		disp:    disp,
		opts:    *opts,
		table:   opts.Table,
		log:     opts.Logger,
		now:     opts.Now,
		startup: true,
		state:   initPeripheral{},
		prev:    initPeripheral{},
	}
	if d.table == nil {
		d.table = &segment.Default
	}
	if d.log == nil {
		d.log = log.Default()
	}
	if d.now == nil {
		d.now = time.Now
	}
	retryMax := opts.RetryMax
	if retryMax < opts.Tick {
		retryMax = opts.Tick
	}
	d.retry = backoff.Backoff{Min: opts.Tick, Max: retryMax, Factor: 2}
	return d, nil
}

// NewSPI returns a Dev on a periph.io SPI port.
func NewSPI(p spi.Port, disp *hmi.Display, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	return New(NewSPIBus(p, opts.ConfigProfile.Frequency, opts.ConfigProfile.Mode), disp, opts)
}

func (d *Dev) String() string {
	return fmt.Sprintf("HT1632{%v}", d.bus)
}

// Display returns the display state shown by d.
func (d *Dev) Display() *hmi.Display {
	return d.disp
}

// State returns the name of the state the next Step evaluates.
func (d *Dev) State() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.String()
}

// Halt requests the controller to be released. Run returns once the device
// is detached. A pending result is still awaited; a failed wait gives up on
// it. With a zero Opts.ResultTimeout only canceling the context of Run ends
// that wait.
//
// It implements conn.Resource.
func (d *Dev) Halt() error {
	d.halt.Store(true)
	return nil
}

// Run steps the state machine until Halt completes or ctx is canceled.
//
// Steps are paced by Opts.Tick; after a failed step the pause grows up to
// Opts.RetryMax.
func (d *Dev) Run(ctx context.Context) error {
	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		delay := d.opts.Tick
		if err := d.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			delay = d.retry.Duration()
		} else {
			d.retry.Reset()
		}
		if _, ok := d.current().(offMode); ok {
			return nil
		}
		t.Reset(delay)
	}
}

// Step evaluates the current state once. It issues at most one bus
// operation and returns its error, if any. A failed state is evaluated again
// on the next call.
func (d *Dev) Step(ctx context.Context) error {
	if d.halt.Load() {
		switch d.current().(type) {
		case waitReady, cancelOffMode, offMode:
		default:
			if d.dev != nil {
				d.setState(cancelOffMode{})
			} else {
				d.setState(offMode{})
			}
		}
	}
	switch s := d.current().(type) {
	case initPeripheral:
		if err := d.bus.Init(); err != nil {
			return d.fail(err)
		}
		d.setState(setConfigFormat{})
	case setConfigFormat:
		dev, err := d.bus.Attach(&d.opts.ConfigProfile)
		if err != nil {
			return d.fail(err)
		}
		d.dev = dev
		d.setState(configure{})
	case configure:
		return d.configure(ctx, s)
	case cancelConfigFormat:
		if err := d.detach(); err != nil {
			return d.fail(err)
		}
		d.setState(setWriteFormat{})
	case setWriteFormat:
		dev, err := d.bus.Attach(&d.opts.RefreshProfile)
		if err != nil {
			return d.fail(err)
		}
		d.dev = dev
		d.periodStart = d.now()
		d.setState(refresh{})
	case refresh:
		return d.refresh(ctx)
	case prepareReinit:
		if err := d.detach(); err != nil {
			err = d.fail(err)
			d.setState(waitReady{next: prepareReinit{}})
			return err
		}
		d.setState(setConfigFormat{})
	case waitReady:
		return d.wait(ctx, s)
	case cancelOffMode:
		if err := d.detach(); err != nil {
			return d.fail(err)
		}
		d.setState(offMode{})
	case offMode:
	}
	return nil
}

func (d *Dev) configure(ctx context.Context, s configure) error {
	c := &configSequence[s.step]
	var next resumable = cancelConfigFormat{}
	if s.step+1 < len(configSequence) {
		next = configure{step: s.step + 1}
	}
	if c.startupOnly && !d.startup {
		d.setState(next)
		return nil
	}
	d.tx = Transaction{Command: idCommand, Address: uint16(c.value(d.opts.Duty))}
	if err := d.dev.Queue(ctx, &d.tx); err != nil {
		return d.fail(err)
	}
	d.setState(waitReady{next: next})
	return nil
}

func (d *Dev) refresh(ctx context.Context) error {
	d.startup = false
	if now := d.now(); now.Sub(d.periodStart) >= d.opts.RefreshPeriod {
		d.periodStart = now
		d.setState(prepareReinit{})
		return nil
	}
	s := d.disp.Snapshot()
	Encode(&d.ram, &s, d.table)
	d.tx = Transaction{Command: idWrite, Address: 0, Data: d.ram[:], Bits: RAMSize * 8}
	if err := d.dev.Queue(ctx, &d.tx); err != nil {
		return d.fail(err)
	}
	d.setState(waitReady{next: refresh{}})
	return nil
}

func (d *Dev) wait(ctx context.Context, s waitReady) error {
	if d.dev == nil {
		d.setState(s.next)
		return nil
	}
	wctx := ctx
	if d.opts.ResultTimeout > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, d.opts.ResultTimeout)
		defer cancel()
	}
	if _, err := d.dev.Result(wctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = d.fail(err)
		d.waitFailures++
		if d.halt.Load() {
			d.waitFailures = 0
			d.setState(cancelOffMode{})
		} else if d.opts.ResultRetries > 0 && d.waitFailures >= d.opts.ResultRetries {
			d.waitFailures = 0
			d.setState(prepareReinit{})
		}
		return err
	}
	d.waitFailures = 0
	d.setState(s.next)
	return nil
}

// detach releases the attached profile. A device that is already gone
// counts as detached.
func (d *Dev) detach() error {
	if d.dev == nil {
		return nil
	}
	if err := d.dev.Detach(); err != nil && !errors.Is(err, ErrNotAttached) {
		return err
	}
	d.dev = nil
	return nil
}

func (d *Dev) fail(err error) error {
	d.log.Printf("ht1632: %s: %v", d.current(), err)
	return err
}

func (d *Dev) current() state {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dev) setState(s state) {
	d.mu.Lock()
	d.prev, d.state = d.state, s
	prev := d.prev
	d.mu.Unlock()
	if d.opts.Trace {
		d.log.Printf("ht1632: %s -> %s", prev, s)
	}
}

var _ conn.Resource = &Dev{}
