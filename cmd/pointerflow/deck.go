package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kataras/golog"
	"github.com/spf13/cobra"

	"github.com/phinze/pointerflow/internal/binding"
	"github.com/phinze/pointerflow/internal/config"
	"github.com/phinze/pointerflow/internal/coordinator"
	"github.com/phinze/pointerflow/internal/device"
	"github.com/phinze/pointerflow/internal/hotplug"
	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/pointer"
	"github.com/phinze/pointerflow/internal/recorder"
	"github.com/phinze/pointerflow/internal/sink"
	"github.com/phinze/pointerflow/internal/visualizer"
	"github.com/phinze/pointerflow/internal/window"
)

const deviceTimeout = 5 * time.Second

var (
	deckRecord string
	deckQuiet  bool
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Stream normalized events from a Stream Deck touch strip",
	Long: `Waits for a Stream Deck with a touch strip, turns taps and swipes into
pointer events and prints them. The strip shows the recent trail. The device
is reopened after it is unplugged or the machine wakes from sleep.`,
	RunE: runDeck,
}

func init() {
	deckCmd.Flags().StringVar(&deckRecord, "record", "", "record events as JSON lines to this file")
	deckCmd.Flags().BoolVarP(&deckQuiet, "quiet", "q", false, "do not print events")
}

func runDeck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logging.For("deck")

	ctx, cancel := signalContext()
	defer cancel()

	var consumers []coordinator.Consumer
	if !deckQuiet {
		consumers = append(consumers, &printer{out: cmd.OutOrStdout()})
	}
	path := cfg.Record.Path
	if deckRecord != "" {
		path = deckRecord
	}
	if path != "" {
		rec, err := recorder.Create(path)
		if err != nil {
			return err
		}
		defer rec.Close()
		consumers = append(consumers, rec)
	}

	wakeCh := wakeSignals(ctx)
	plugCh := hotplug.Watch(ctx, hotplug.ElgatoVendorID)

	// Wait for a device, run until it goes away, repeat.
	for {
		dev := waitForDevice(ctx, log, cfg.Deck.Serial, wakeCh, plugCh)
		if dev == nil {
			return nil
		}

		// Avoid racing a device that connected after shutdown was requested.
		select {
		case <-ctx.Done():
			dev.Close()
			return nil
		default:
		}

		// A wake signal from before enumeration must not tear the new
		// connection down immediately.
	drainWake:
		for {
			select {
			case <-wakeCh:
				log.Debug("draining stale wake signal")
			default:
				break drainWake
			}
		}

		// USB enumeration may still be settling after GetDevice succeeds.
		time.Sleep(500 * time.Millisecond)

		if err := runWithDevice(ctx, log, cfg, dev, wakeCh, consumers); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		default:
			log.Info("waiting for device reconnect...")
		}
	}
}

// waitForDevice returns an open device, or nil once ctx is cancelled. Wake and
// hotplug signals trigger an immediate retry instead of waiting for the poll
// interval.
func waitForDevice(ctx context.Context, log *golog.Logger, serial string, wakeCh, plugCh <-chan struct{}) device.Device {
	if dev := probe(log, serial); dev != nil {
		return dev
	}
	log.Info("waiting for device...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-wakeCh:
			// Devices can take several seconds to enumerate after wake.
			log.Info("wake signal received, probing for device...")
			for i := 0; i < 10; i++ {
				if dev := probe(log, serial); dev != nil {
					return dev
				}
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(500 * time.Millisecond):
				}
			}
			log.Info("device not found after wake, resuming polling")
		case <-plugCh:
			log.Debug("hotplug signal received")
		case <-time.After(2 * time.Second):
		}

		if dev := probe(log, serial); dev != nil {
			return dev
		}
	}
}

func probe(log *golog.Logger, serial string) device.Device {
	dev, err := device.OpenHardware(serial, deviceTimeout)
	if err != nil {
		if errors.Is(err, device.ErrNoTouchStrip) {
			log.Warnf("ignoring device: %v", err)
		} else {
			log.Debugf("probe: %v", err)
		}
		return nil
	}
	log.Infof("connected to %s", dev.GetModelName())
	return dev
}

// runWithDevice runs the strip pipeline until disconnect, wake, or ctx
// cancellation. Only a poisoned sink is returned as an error.
func runWithDevice(ctx context.Context, log *golog.Logger, cfg *config.Config, dev device.Device, wakeCh <-chan struct{}, consumers []coordinator.Consumer) error {
	if err := dev.SetBrightness(byte(cfg.Deck.Brightness)); err != nil {
		log.Warnf("setting brightness: %v", err)
	}

	// Fresh window and coordinator for each connection.
	win := window.New(pointer.WindowID(cfg.Deck.WindowID), 1)
	if err := binding.RegisterDeck(dev, win); err != nil {
		dev.Close()
		return fmt.Errorf("binding strip: %w", err)
	}

	coord := coordinator.New(win.Events(), dev, cfg.Coordinator.DrainInterval)
	coord.Register(visualizer.New(0))
	for _, c := range consumers {
		coord.Register(c)
	}

	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- coord.Start(runCtx)
	}()

	log.Info("ready, touch the strip")

	var fatal error
	select {
	case <-ctx.Done():
		log.Info("shutting down...")
	case err := <-errChan:
		if errors.Is(err, sink.ErrPoisoned) {
			fatal = err
		} else if err != nil {
			log.Warnf("device disconnected: %v", err)
		}
	case <-wakeCh:
		log.Info("reconnecting device after wake...")
	}

	runCancel()

	done := make(chan struct{})
	go func() {
		if err := coord.Stop(); err != nil && fatal == nil {
			log.Errorf("flushing events: %v", err)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		log.Warn("cleanup timed out")
	}

	// The HID library does not cancel in-flight I/O on close, so give pending
	// callbacks a moment to complete.
	time.Sleep(200 * time.Millisecond)

	closeDone := make(chan struct{})
	go func() {
		dev.Close()
		close(closeDone)
	}()

	// Close can block indefinitely; on shutdown exit instead of waiting.
	select {
	case <-ctx.Done():
		if fatal == nil {
			log.Info("exiting...")
			os.Exit(0)
		}
	case <-closeDone:
	case <-time.After(3 * time.Second):
		log.Warn("device close timed out")
	}
	return fatal
}

// printer writes one line per event.
type printer struct {
	out io.Writer
}

func (p *printer) ID() string { return "printer" }

func (p *printer) Consume(evs []pointer.WindowEvent) error {
	for _, ev := range evs {
		e := ev.Pointer
		if _, err := fmt.Fprintf(p.out, "window=%d id=%d %-5s %-5s x=%.1f y=%.1f primary=%t\n",
			ev.Window, e.ID, e.Type, e.Phase, e.Position.X, e.Position.Y, e.Primary); err != nil {
			return err
		}
	}
	return nil
}
