//go:build !darwin

package hotplug

import (
	"context"
	"testing"
	"time"
)

func TestWatchNeverFires(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	select {
	case <-Watch(ctx, ElgatoVendorID):
		t.Fatal("unexpected hotplug signal")
	case <-time.After(10 * time.Millisecond):
	}
}
