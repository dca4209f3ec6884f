//go:build !darwin

package main

import "context"

// wakeSignals never fires; sleep notifications are only wired up on macOS.
func wakeSignals(ctx context.Context) <-chan struct{} {
	return nil
}
