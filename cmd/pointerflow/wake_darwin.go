package main

import (
	"context"

	"github.com/prashantgupta24/mac-sleep-notifier/notifier"

	"github.com/phinze/pointerflow/internal/logging"
)

// wakeSignals fires after the system wakes from sleep, when USB devices have
// usually been reset.
func wakeSignals(ctx context.Context) <-chan struct{} {
	sleepCh := notifier.GetInstance().Start()
	wakeCh := make(chan struct{}, 1)
	log := logging.For("wake")

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case activity, ok := <-sleepCh:
				if !ok {
					return
				}
				if activity.Type != notifier.Awake {
					continue
				}
				log.Info("system wake detected")
				select {
				case wakeCh <- struct{}{}:
				default:
				}
			}
		}
	}()
	return wakeCh
}
