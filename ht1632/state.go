// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1632

// Transaction ids, sent in the 3 bit command field.
const (
	idCommand uint8 = 0x4 // 100: command mode
	idWrite   uint8 = 0x5 // 101: RAM write mode
)

// command is one step of the configuration pass.
type command struct {
	name string
	code uint8
	// startupOnly commands are sent on the first pass after power up only.
	startupOnly bool
	// duty commands carry the PWM duty in their low nibble.
	duty bool
}

func (c *command) value(duty uint8) uint8 {
	if c.duty {
		return c.code | duty&0x0f
	}
	return c.code
}

var configSequence = [...]command{
	{name: "CFG_SYS_DIS", code: 0x00, startupOnly: true},
	{name: "CFG_COM_OPTION", code: 0x20}, // N-MOS open drain, 8 COM
	{name: "CFG_MASTER_MODE", code: 0x18},
	{name: "CFG_SYS_ON", code: 0x01},
	{name: "CFG_PWM_MODE", code: 0xa0, duty: true},
	{name: "CFG_BLINK_MODE", code: 0x08}, // blink off
	{name: "CFG_LED_ON", code: 0x03},
}

// state is a step of the sequencer.
type state interface {
	String() string
	isState()
}

// resumable states can follow waitReady.
type resumable interface {
	state
	resumable()
}

type (
	initPeripheral     struct{}
	setConfigFormat    struct{}
	configure          struct{ step int }
	cancelConfigFormat struct{}
	setWriteFormat     struct{}
	refresh            struct{}
	prepareReinit      struct{}
	// waitReady collects the last queued transaction then moves to next.
	waitReady     struct{ next resumable }
	cancelOffMode struct{}
	offMode       struct{}
)

func (initPeripheral) String() string     { return "INIT_PERIPHERAL" }
func (setConfigFormat) String() string    { return "SET_CFG_PROTOCOL_FORMAT" }
func (s configure) String() string        { return configSequence[s.step].name }
func (cancelConfigFormat) String() string { return "CANCEL_CFG_PROTOCOL_FORMAT" }
func (setWriteFormat) String() string     { return "SET_WRITE_PROTOCOL_FORMAT" }
func (refresh) String() string            { return "REFRESH" }
func (prepareReinit) String() string      { return "PREPARE_REINIT" }
func (waitReady) String() string          { return "WAIT_DRIVER_READY" }
func (cancelOffMode) String() string      { return "CANCEL_CFG_OFF_MODE" }
func (offMode) String() string            { return "OFF_MODE" }

func (initPeripheral) isState()     {}
func (setConfigFormat) isState()    {}
func (configure) isState()          {}
func (cancelConfigFormat) isState() {}
func (setWriteFormat) isState()     {}
func (refresh) isState()            {}
func (prepareReinit) isState()      {}
func (waitReady) isState()          {}
func (cancelOffMode) isState()      {}
func (offMode) isState()            {}

func (configure) resumable()          {}
func (cancelConfigFormat) resumable() {}
func (refresh) resumable()            {}
func (prepareReinit) resumable()      {}
