package cursor

import (
	"testing"

	"github.com/go-data-exporter/rowcursor/scanner"
)

func TestOptionsFromProperties(t *testing.T) {
	tests := []struct {
		props   map[string]string
		quiet   bool
		wantErr bool
	}{
		{nil, false, false},
		{map[string]string{"quiet": "true"}, true, false},
		{map[string]string{"QUIET": " 1 "}, true, false},
		{map[string]string{"quiet": "false", "consistency": "ONE"}, false, false},
		{map[string]string{"quiet": "maybe"}, false, true},
	}
	for _, tt := range tests {
		opts, err := OptionsFromProperties(tt.props)
		if (err != nil) != tt.wantErr {
			t.Fatalf("OptionsFromProperties(%v) error = %v", tt.props, err)
		}
		if err != nil {
			continue
		}
		c := New(scanner.FromData(nil), opts...)
		if c.quiet != tt.quiet {
			t.Errorf("OptionsFromProperties(%v) quiet = %v, want %v", tt.props, c.quiet, tt.quiet)
		}
	}
}

func TestWithLoggerIgnoresNil(t *testing.T) {
	c := New(nil, WithLogger(nil))
	if c.logger == nil {
		t.Error("logger should fall back to a no-op logger")
	}
}
