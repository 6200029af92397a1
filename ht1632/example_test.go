// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ht1632_test

import (
	"context"
	"log"
	"time"

	"github.com/GermanBionicSystems/hmidevices/hmi"
	"github.com/GermanBionicSystems/hmidevices/ht1632"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func Example() {
	// Make sure periph is initialized.
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}
	p, err := spireg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer p.Close()

	disp := hmi.New()
	dev, err := ht1632.NewSPI(p, disp, &ht1632.DefaultOpts)
	if err != nil {
		log.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go disp.Run(ctx, 100*time.Millisecond)
	done := make(chan error)
	go func() {
		done <- dev.Run(ctx)
	}()

	disp.SetText("HELLO")
	_ = disp.StartIconBlink(hmi.IconWifi, hmi.Timing{DutyOn: 5, DutyOff: 5, Endless: true})
	time.Sleep(10 * time.Second)
	_ = dev.Halt()
	// Run returns once the controller is released.
	if err := <-done; err != nil {
		log.Fatal(err)
	}
}
