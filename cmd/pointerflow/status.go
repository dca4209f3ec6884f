package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/phinze/pointerflow/internal/config"
	"github.com/phinze/pointerflow/internal/device"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check config and Stream Deck health",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Pointerflow Status ===")
	fmt.Println()

	allOK := true

	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n", configPath)
	if _, err := os.Stat(configPath); err == nil {
		fmt.Println("  Status: found")
	} else {
		fmt.Println("  Status: not found, using defaults")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("  Load error: %v\n", err)
		cfg = config.Default()
		allOK = false
	}
	fmt.Println()

	fmt.Println("Window:")
	fmt.Printf("  ID: %d\n", cfg.Window.ID)
	fmt.Printf("  Size: %dx%d\n", cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.ScaleFactor > 0 {
		fmt.Printf("  Scale factor: %.2f (fixed)\n", cfg.Window.ScaleFactor)
	} else {
		fmt.Println("  Scale factor: follows monitor")
	}
	if cfg.Record.Path != "" {
		fmt.Printf("  Recording to: %s\n", cfg.Record.Path)
	}
	fmt.Println()

	fmt.Println("Stream Deck:")
	fmt.Printf("  Window ID: %d\n", cfg.Deck.WindowID)
	dev, err := device.OpenHardware(cfg.Deck.Serial, 2*time.Second)
	if err != nil {
		fmt.Printf("  Device: not available (%v)\n", err)
	} else {
		fmt.Printf("  Device: %s\n", dev.GetModelName())
		if rect, err := dev.GetTouchStripImageRectangle(); err == nil {
			fmt.Printf("  Touch strip: %dx%d\n", rect.Dx(), rect.Dy())
		}
		dev.Close()
	}
	fmt.Println()

	if allOK {
		fmt.Println("All checks passed.")
	} else {
		fmt.Println("Some checks failed. Run 'pointerflow setup' to configure.")
	}
	return nil
}
