package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"", false},
		{"debug", false},
		{" WARN ", false},
		{"disable", false},
		{"verbose", true},
	}
	for _, tt := range tests {
		err := Configure(tt.level, nil)
		if (err != nil) != tt.wantErr {
			t.Errorf("Configure(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
		}
	}
}

func TestChildPrefix(t *testing.T) {
	var buf bytes.Buffer
	if err := Configure("info", &buf); err != nil {
		t.Fatal(err)
	}
	For("sink").Info("hello")
	if !strings.Contains(buf.String(), "[sink]") || !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected prefixed line, got %q", buf.String())
	}
}
