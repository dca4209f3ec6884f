package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phinze/pointerflow/internal/binding"
	"github.com/phinze/pointerflow/internal/coordinator"
	"github.com/phinze/pointerflow/internal/device"
	"github.com/phinze/pointerflow/internal/emulator"
	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/recorder"
	"github.com/phinze/pointerflow/internal/visualizer"
	"github.com/phinze/pointerflow/internal/window"
)

var (
	recordFlag string
	noStrip    bool
)

var emulateCmd = &cobra.Command{
	Use:   "emulate",
	Short: "Open a window that visualizes normalized mouse and touch input",
	RunE:  runEmulate,
}

func emulateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&recordFlag, "record", "", "record events as JSON lines to this file")
	cmd.Flags().BoolVar(&noStrip, "no-strip", false, "hide the virtual touch strip")
}

func runEmulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.For("emulate")

	ctx, cancel := signalContext()
	defer cancel()

	fixed := cfg.Window.ScaleFactor > 0
	win := window.New(pointer.WindowID(cfg.Window.ID), cfg.Window.ScaleFactor)

	var consumers []coordinator.Consumer
	path := cfg.Record.Path
	if recordFlag != "" {
		path = recordFlag
	}
	if path != "" {
		rec, err := recorder.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if err := rec.Close(); err != nil {
				log.Errorf("closing recording: %v", err)
			}
			fmt.Printf("Recorded %d events to %s\n", rec.Count(), path)
		}()
		consumers = append(consumers, rec)
	}

	opts := emulator.Options{
		Window:     win,
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		FixedScale: fixed,
		Consumers:  consumers,
	}

	// The virtual strip runs the same pipeline the deck command runs against
	// hardware, in its own window.
	var coord *coordinator.Coordinator
	if !noStrip {
		strip := device.NewVirtual()
		if err := strip.Open(); err != nil {
			return err
		}
		defer strip.Close()

		deckWin := window.New(pointer.WindowID(cfg.Deck.WindowID), 1)
		if err := binding.RegisterDeck(strip, deckWin); err != nil {
			return err
		}
		coord = coordinator.New(deckWin.Events(), strip, cfg.Coordinator.DrainInterval)
		coord.Register(visualizer.New(0))
		for _, c := range consumers {
			coord.Register(c)
		}
		go func() {
			if err := coord.Start(ctx); err != nil {
				log.Errorf("strip pipeline stopped: %v", err)
				cancel()
			}
		}()
		opts.Strip = strip
	}

	emu := emulator.New(opts)
	go func() {
		<-ctx.Done()
		emu.Stop()
	}()

	runErr := emu.Run()
	cancel()
	if coord != nil {
		if err := coord.Stop(); err != nil {
			log.Errorf("flushing strip events: %v", err)
		}
	}
	return runErr
}
