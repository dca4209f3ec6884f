// Package logging configures the shared golog logger and hands out
// prefixed child loggers to the rest of the module.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/kataras/golog"
)

var levels = map[string]bool{
	"disable": true,
	"fatal":   true,
	"error":   true,
	"warn":    true,
	"info":    true,
	"debug":   true,
}

// Configure sets the global log level and, when out is non-nil, the output.
func Configure(level string, out io.Writer) error {
	lvl := strings.ToLower(strings.TrimSpace(level))
	if lvl == "" {
		lvl = "info"
	}
	if !levels[lvl] {
		return fmt.Errorf("unsupported log level %q", level)
	}
	golog.SetLevel(lvl)
	if out != nil {
		golog.SetOutput(out)
	}
	return nil
}

// For returns a child logger whose lines are prefixed with [name].
func For(name string) *golog.Logger {
	return golog.Child("[" + name + "]")
}
