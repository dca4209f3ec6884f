// Command pointerflow runs the pointer normalization pipeline against an
// emulator window or a Stream Deck touch strip, and inspects recordings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/phinze/pointerflow/internal/config"
	"github.com/phinze/pointerflow/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "pointerflow",
	Short:        "Normalize pointer input into one canonical event stream",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configPath != "" {
			os.Setenv("POINTERFLOW_CONFIG", configPath)
		}
	},
	RunE: runEmulate,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")
	emulateFlags(rootCmd)
	emulateFlags(emulateCmd)
	rootCmd.AddCommand(emulateCmd, deckCmd, inspectCmd, statusCmd, setupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads the configuration and applies its log level.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := logging.Configure(cfg.Log.Level, nil); err != nil {
		return nil, err
	}
	return cfg, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			logging.For("main").Info("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}
