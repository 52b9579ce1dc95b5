// Package timecode formats and parses the time values shown on the ruler,
// the seeker readout and the ffmpeg command lines built for thumbnails.
package timecode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned by Parse for text that is not a timecode.
var ErrInvalidFormat = errors.New("invalid timecode")

// ticksPerSecond is the resolution of label fractions (100ns ticks).
const ticksPerSecond = 10_000_000

// FormatSeconds converts seconds to HH:MM:SS.MS format for FFmpeg.
//
// Example:
//
//	FormatSeconds(0)      // "00:00:00.00"
//	FormatSeconds(90)     // "00:01:30.00"
//	FormatSeconds(30.53)  // "00:00:30.53"
func FormatSeconds(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := seconds - float64(hours*3600) - float64(minutes*60)
	return fmt.Sprintf("%02d:%02d:%05.2f", hours, minutes, secs)
}

// Format renders d as hh:mm:ss, or hh:mm:ss.fff when fractional is set.
// Hours are not wrapped at 24.
//
// Example:
//
//	Format(90*time.Second, false)           // "00:01:30"
//	Format(1500*time.Millisecond, true)     // "00:00:01.500"
func Format(d time.Duration, fractional bool) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	hours := int64(d / time.Hour)
	minutes := int64(d%time.Hour) / int64(time.Minute)
	seconds := int64(d%time.Minute) / int64(time.Second)

	if !fractional {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, hours, minutes, seconds)
	}

	millis := int64(d%time.Second) / int64(time.Millisecond)
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, hours, minutes, seconds, millis)
}

// FormatLabel renders a ruler label: [-][d.]hh:mm:ss[.fffffff].
// The day prefix appears from 24h on, the 7-digit fraction only when the
// value is not a whole second.
func FormatLabel(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}

	days := int64(d / (24 * time.Hour))
	hours := int64(d%(24*time.Hour)) / int64(time.Hour)
	minutes := int64(d%time.Hour) / int64(time.Minute)
	seconds := int64(d%time.Minute) / int64(time.Second)
	ticks := int64(d%time.Second) / 100

	var b strings.Builder
	b.WriteString(sign)
	if days > 0 {
		fmt.Fprintf(&b, "%d.", days)
	}
	fmt.Fprintf(&b, "%02d:%02d:%02d", hours, minutes, seconds)
	if ticks > 0 {
		fmt.Fprintf(&b, ".%07d", ticks)
	}
	return b.String()
}

// Parse reads [-]d, [-][d.]hh:mm or [-][d.]hh:mm:ss[.fffffff].
//
// Without a day prefix the hour field is unbounded, so every string produced
// by Format parses back to the same value. With a day prefix hours must be
// below 24. Minutes and seconds must be below 60.
func Parse(s string) (time.Duration, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}

	negative := strings.HasPrefix(text, "-")
	if negative {
		text = text[1:]
	}

	d, err := parseUnsigned(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, s, err)
	}
	if negative {
		d = -d
	}
	return d, nil
}

func parseUnsigned(text string) (time.Duration, error) {
	if !strings.Contains(text, ":") {
		days, err := parseField(text, -1)
		if err != nil {
			return 0, err
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	var days int64
	hasDays := false
	colon := strings.Index(text, ":")
	if dot := strings.Index(text[:colon], "."); dot >= 0 {
		var err error
		if days, err = parseField(text[:dot], -1); err != nil {
			return 0, err
		}
		hasDays = true
		text = text[dot+1:]
	}

	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("expected hh:mm or hh:mm:ss")
	}

	hourLimit := int64(-1)
	if hasDays {
		hourLimit = 24
	}
	hours, err := parseField(parts[0], hourLimit)
	if err != nil {
		return 0, fmt.Errorf("hours: %w", err)
	}
	minutes, err := parseField(parts[1], 60)
	if err != nil {
		return 0, fmt.Errorf("minutes: %w", err)
	}

	var seconds int64
	var fraction time.Duration
	if len(parts) == 3 {
		secText := parts[2]
		if dot := strings.Index(secText, "."); dot >= 0 {
			if fraction, err = parseFraction(secText[dot+1:]); err != nil {
				return 0, fmt.Errorf("fraction: %w", err)
			}
			secText = secText[:dot]
		}
		if seconds, err = parseField(secText, 60); err != nil {
			return 0, fmt.Errorf("seconds: %w", err)
		}
	}

	return time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		fraction, nil
}

// parseField parses a non-negative integer, rejecting values >= limit when
// limit is positive.
func parseField(text string, limit int64) (int64, error) {
	if text == "" {
		return 0, fmt.Errorf("missing value")
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	if limit > 0 && v >= limit {
		return 0, fmt.Errorf("%d out of range (must be below %d)", v, limit)
	}
	return v, nil
}

// parseFraction parses up to seven fractional digits (100ns ticks).
func parseFraction(text string) (time.Duration, error) {
	if text == "" || len(text) > 7 {
		return 0, fmt.Errorf("expected 1 to 7 digits, got %q", text)
	}
	padded := text + strings.Repeat("0", 7-len(text))
	ticks, err := strconv.ParseInt(padded, 10, 64)
	if err != nil || ticks < 0 {
		return 0, fmt.Errorf("not a number: %q", text)
	}
	return time.Duration(ticks) * time.Second / ticksPerSecond, nil
}

// Clamp bounds d to [minimum, maximum]. When ignoreZeroMaximum is set a zero
// maximum means "no upper bound", which is what an input bound to a media
// duration needs before the duration is known.
func Clamp(d, minimum, maximum time.Duration, ignoreZeroMaximum bool) time.Duration {
	if d < minimum {
		return minimum
	}
	if d > maximum && (maximum > 0 || !ignoreZeroMaximum) {
		return maximum
	}
	return d
}
