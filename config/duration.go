package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"timeline/internal/timecode"
)

// Duration is a time.Duration that reads and writes as text in config files
// and on the command line.
//
// Accepted forms:
//
//	"90s", "2m30s", "1h"   Go duration syntax
//	"90", "12.5"           seconds
//	"00:02:30", "1:30:00.5" timecode
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements flag.Value.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Set implements flag.Value.
func (d *Duration) Set(s string) error {
	return d.UnmarshalText([]byte(s))
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*d = 0
		return nil
	}

	if v, err := time.ParseDuration(s); err == nil {
		*d = Duration(v)
		return nil
	}
	if seconds, err := strconv.ParseFloat(s, 64); err == nil {
		*d = Duration(seconds * float64(time.Second))
		return nil
	}
	if v, err := timecode.Parse(s); err == nil {
		*d = Duration(v)
		return nil
	}

	return fmt.Errorf("invalid duration %q", s)
}
