package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phinze/pointerflow/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup: write the config file",
	RunE:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)
	fmt.Println("=== Pointerflow Setup ===")
	fmt.Println()

	// Existing values become the prompt defaults.
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Ignoring unreadable config: %v\n", err)
		cfg = config.Default()
	}

	fmt.Println("-- Window --")
	cfg.Window.Title = prompt(reader, "Title", cfg.Window.Title)
	cfg.Window.Width = promptInt(reader, "Width", cfg.Window.Width)
	cfg.Window.Height = promptInt(reader, "Height", cfg.Window.Height)
	cfg.Window.ScaleFactor = promptFloat(reader, "Scale factor (0 follows the monitor)", cfg.Window.ScaleFactor)
	fmt.Println()

	fmt.Println("-- Stream Deck --")
	cfg.Deck.Serial = prompt(reader, "Serial number (empty for first found)", cfg.Deck.Serial)
	cfg.Deck.Brightness = promptInt(reader, "Brightness percent", cfg.Deck.Brightness)
	fmt.Println()

	fmt.Println("-- Recording --")
	cfg.Record.Path = prompt(reader, "Record events to (empty to disable)", cfg.Record.Path)
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.WriteConfigFile(cfg); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Printf("Config written to %s\n", config.DefaultConfigPath())
	fmt.Println("Setup complete!")
	return nil
}

// prompt asks for a value with an optional default.
func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("  %s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("  %s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultVal
	}
	return line
}

func promptInt(reader *bufio.Reader, label string, defaultVal int) int {
	for {
		v, err := strconv.Atoi(prompt(reader, label, strconv.Itoa(defaultVal)))
		if err == nil {
			return v
		}
		fmt.Println("  -> not a whole number")
	}
}

func promptFloat(reader *bufio.Reader, label string, defaultVal float64) float64 {
	for {
		v, err := strconv.ParseFloat(prompt(reader, label, strconv.FormatFloat(defaultVal, 'g', -1, 64)), 64)
		if err == nil {
			return v
		}
		fmt.Println("  -> not a number")
	}
}
