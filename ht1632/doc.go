// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ht1632 drives a Holtek HT1632C LED controller wired to a five digit
// 16-segment appliance display.
//
// The controller speaks two serial formats on the same wires: a command
// format (3 bit id, 8 bit command) used to configure it and a write format
// (3 bit id, 7 bit address, data) used to fill its display RAM. Dev owns the
// bus and runs a small state machine that configures the chip, refreshes its
// RAM from an hmi.Display and re-runs the whole configuration every
// RefreshPeriod so that a chip that lost its setup comes back on its own.
//
// # Datasheet
//
// https://www.holtek.com/documents/10179/116711/HT1632Cv170.pdf
package ht1632
