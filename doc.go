// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hmidevices is a container for the appliance front panel drivers.
//
// The ht1632 package drives the LED controller, hmi holds what the panel
// shows and segsim emulates the panel on a development machine.
package hmidevices
