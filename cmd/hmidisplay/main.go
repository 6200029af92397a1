// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// hmidisplay drives the HT1632C front panel, or its terminal emulation, with
// a fixed text until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GermanBionicSystems/hmidevices/hmi"
	"github.com/GermanBionicSystems/hmidevices/ht1632"
	"github.com/GermanBionicSystems/hmidevices/internal/config"
	"github.com/GermanBionicSystems/hmidevices/segsim"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Parse(nil)
	}
	return config.Load(path)
}

func mainImpl() error {
	cfgPath := flag.String("config", "", "YAML configuration file")
	sim := flag.Bool("sim", false, "emulate the panel on the terminal instead of using the SPI port")
	png := flag.String("png", "", "with -sim, save the last frame to this PNG file on exit")
	text := flag.String("text", "", "text to show, overrides display.text")
	verbose := flag.Bool("v", false, "log every state transition")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unexpected argument, try -help")
	}
	if *png != "" && !*sim {
		return errors.New("-png requires -sim")
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	if *text != "" {
		if w := hmi.TextWidth(*text); w > hmi.NumDigits {
			return fmt.Errorf("-text %q needs %d digits, the panel has %d", *text, w, hmi.NumDigits)
		}
		cfg.Display.Text = *text
	}
	opts := cfg.DriverOpts()
	opts.Trace = *verbose

	disp := hmi.New()
	disp.SetText(cfg.Display.Text)

	var dev *ht1632.Dev
	var emu *segsim.Bus
	if *sim {
		emu = segsim.New(&segsim.DefaultOpts)
		if dev, err = ht1632.New(emu, disp, &opts); err != nil {
			return err
		}
	} else {
		if _, err := host.Init(); err != nil {
			return err
		}
		p, err := spireg.Open(cfg.SPI.Port)
		if err != nil {
			return err
		}
		defer p.Close()
		if dev, err = ht1632.NewSPI(p, disp, &opts); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		// A second signal kills the process if the bus does not let go.
		stop()
		_ = dev.Halt()
	}()

	blinkCtx, cancelBlink := context.WithCancel(context.Background())
	defer cancelBlink()
	go disp.Run(blinkCtx, cfg.BlinkTick())

	if err := dev.Run(context.Background()); err != nil {
		return err
	}
	log.Printf("%s halted", dev)

	if emu != nil {
		if err := emu.Halt(); err != nil {
			return err
		}
		if *png != "" {
			return segsim.SavePNG(*png, emu.Last())
		}
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "hmidisplay: %s.\n", err)
		os.Exit(1)
	}
}
