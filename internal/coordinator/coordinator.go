// Package coordinator drains a window's event sink for hosts that have no
// frame loop of their own, and fans the events out to consumers.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/kataras/golog"

	"github.com/phinze/pointerflow/internal/device"
	"github.com/phinze/pointerflow/internal/logging"
	"github.com/phinze/pointerflow/internal/pointer"
)

// DefaultDrainInterval bounds how long events wait when a Ready signal is
// missed.
const DefaultDrainInterval = 50 * time.Millisecond

const renderInterval = 500 * time.Millisecond

// Source is the consuming side of a window's sink.
type Source interface {
	Ready() <-chan struct{}
	Drain() ([]pointer.WindowEvent, error)
}

// Consumer receives every drained batch in order.
type Consumer interface {
	ID() string
	Consume(evs []pointer.WindowEvent) error
}

// StripRenderer is implemented by consumers that can draw onto the touch
// strip of the attached device.
type StripRenderer interface {
	RenderStrip(rect image.Rectangle) image.Image
}

// Coordinator owns the drain loop and, when a device is attached, the device
// listener and strip render loop.
type Coordinator struct {
	source    Source
	device    device.Device
	interval  time.Duration
	consumers []Consumer

	stripRect image.Rectangle

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu  sync.RWMutex
	log *golog.Logger
}

// New creates a coordinator draining src. dev may be nil.
func New(src Source, dev device.Device, interval time.Duration) *Coordinator {
	if interval <= 0 {
		interval = DefaultDrainInterval
	}
	return &Coordinator{
		source:   src,
		device:   dev,
		interval: interval,
		log:      logging.For("coordinator"),
	}
}

// Register adds a consumer. Must be called before Start.
func (c *Coordinator) Register(con Consumer) error {
	if con == nil {
		return errors.New("coordinator: nil consumer")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consumers = append(c.consumers, con)
	return nil
}

// Start runs until ctx is cancelled, the sink fails, or the device listener
// returns. Cancellation is not an error.
func (c *Coordinator) Start(ctx context.Context) error {
	c.ctx, c.cancel = context.WithCancel(ctx)

	errCh := make(chan error, 2)

	if c.device != nil {
		if c.device.GetTouchStripSupported() {
			if rect, err := c.device.GetTouchStripImageRectangle(); err == nil {
				c.stripRect = rect
			}
		}

		handlerErrs := make(chan error, 8)
		go func() {
			err := c.device.Listen(handlerErrs)
			if err == nil {
				err = errors.New("device listener stopped")
			}
			errCh <- err
		}()
		c.wg.Add(1)
		go c.logHandlerErrors(handlerErrs)

		c.wg.Add(1)
		go c.renderLoop()
	}

	c.wg.Add(1)
	go c.drainLoop(errCh)

	select {
	case <-c.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Stop shuts the loops down and flushes anything still queued to the
// consumers.
func (c *Coordinator) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.drain()
}

func (c *Coordinator) drainLoop(errCh chan<- error) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.source.Ready():
		case <-ticker.C:
		}
		if err := c.drain(); err != nil {
			errCh <- err
			return
		}
	}
}

// drain hands one batch to every consumer. Consumer failures are logged and
// do not stop delivery to the others.
func (c *Coordinator) drain() error {
	evs, err := c.source.Drain()
	if err != nil {
		return fmt.Errorf("draining events: %w", err)
	}
	if len(evs) == 0 {
		return nil
	}

	c.mu.RLock()
	consumers := c.consumers
	c.mu.RUnlock()

	for _, con := range consumers {
		if err := con.Consume(evs); err != nil {
			c.log.Warnf("consumer %s: %v", con.ID(), err)
		}
	}
	return nil
}

func (c *Coordinator) logHandlerErrors(errs <-chan error) {
	defer c.wg.Done()
	for {
		select {
		case <-c.ctx.Done():
			return
		case err := <-errs:
			c.log.Warnf("strip handler: %v", err)
		}
	}
}

func (c *Coordinator) renderLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(renderInterval)
	defer ticker.Stop()

	c.renderStrip()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.renderStrip()
		}
	}
}

// renderStrip composites every StripRenderer consumer onto the strip.
func (c *Coordinator) renderStrip() {
	if c.stripRect.Empty() {
		return
	}

	c.mu.RLock()
	consumers := c.consumers
	c.mu.RUnlock()

	var composite *image.RGBA
	for _, con := range consumers {
		r, ok := con.(StripRenderer)
		if !ok {
			continue
		}
		img := r.RenderStrip(c.stripRect)
		if img == nil {
			continue
		}
		if composite == nil {
			composite = image.NewRGBA(c.stripRect)
		}
		draw.Draw(composite, c.stripRect, img, img.Bounds().Min, draw.Over)
	}
	if composite == nil {
		return
	}
	if err := c.device.SetTouchStripImage(composite); err != nil {
		c.log.Debugf("strip image: %v", err)
	}
}
