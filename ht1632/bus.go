// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1632

import (
	"context"
	"errors"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	// ErrNotInitialized is returned when a device is attached before Init.
	ErrNotInitialized = errors.New("ht1632: bus not initialized")
	// ErrAttached is returned when attaching while a profile is attached.
	ErrAttached = errors.New("ht1632: device already attached")
	// ErrNotAttached is returned when using a detached device.
	ErrNotAttached = errors.New("ht1632: device not attached")
	// ErrQueueFull is returned when too many results are left uncollected.
	ErrQueueFull = errors.New("ht1632: transaction queue full")
	// ErrTimeout is returned when a transaction result did not show up in
	// time.
	ErrTimeout = errors.New("ht1632: timed out waiting for transaction")
	// ErrFieldWidth is returned when a header value does not fit in the
	// profile.
	ErrFieldWidth = errors.New("ht1632: header field too wide")
	// ErrProfile is returned when a profile cannot be served by the bus.
	ErrProfile = errors.New("ht1632: profile not supported by the bus")
)

// Profile is a wire format the controller is attached with.
type Profile struct {
	Name        string
	CommandBits int
	AddressBits int
	Frequency   physic.Frequency
	Mode        spi.Mode
	// QueueSize is the number of transactions that may await collection.
	QueueSize int
}

// Transaction is one chip select cycle: the Command and Address header
// fields followed by Bits bits of Data.
type Transaction struct {
	Command uint8
	Address uint16
	Data    []byte
	Bits    int
}

// Bus is the serial bus the controller sits on.
type Bus interface {
	// Init brings up the bus. It is safe to call again after a success.
	Init() error
	// Attach registers the controller with the given wire format. Only one
	// profile can be attached at a time.
	Attach(p *Profile) (Device, error)
}

// Device is the controller attached with one Profile.
type Device interface {
	// Queue starts tx. The transaction must not be modified until its
	// result is collected.
	Queue(ctx context.Context, tx *Transaction) error
	// Result blocks until the oldest queued transaction completed.
	Result(ctx context.Context) (*Transaction, error)
	// Detach releases the profile.
	Detach() error
}
