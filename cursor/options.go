package cursor

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// PropertyQuiet is the connection property that enables quiet mode.
const PropertyQuiet = "quiet"

// Option configures a Cursor.
type Option func(*Cursor)

// WithQuiet makes failed conversions return a nil value instead of an
// error. Cursors are strict by default.
func WithQuiet(quiet bool) Option {
	return func(c *Cursor) {
		c.quiet = quiet
	}
}

// WithLogger sets the logger that receives read and fetch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cursor) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// OptionsFromProperties builds options from connection properties. Keys are
// matched case-insensitively; unknown keys are ignored.
func OptionsFromProperties(props map[string]string) ([]Option, error) {
	var opts []Option
	for k, v := range props {
		switch strings.ToLower(k) {
		case PropertyQuiet:
			quiet, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("invalid value for connection property '%s': %q", k, v)
			}
			opts = append(opts, WithQuiet(quiet))
		}
	}
	return opts, nil
}
