// Package playback turns the status output of an external player into
// playback positions the timeline can follow.
package playback

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"timeline/internal/timecode"
	"timeline/models"
)

const (
	// FrameDuration is one frame at 24 fps.
	FrameDuration = 41 * time.Millisecond

	// DefaultMinInterval is the shortest time between two delivered
	// updates: twelve frames at 24 fps.
	DefaultMinInterval = 492 * time.Millisecond
)

// StatusParser parses player status lines. It understands ffmpeg stats
// lines and stream headers, mpv terminal status lines and ffplay clock lines.
type StatusParser struct {
	// MinInterval throttles StreamStatus callbacks. Zero delivers every update.
	MinInterval time.Duration

	now func() time.Time

	durationRegex *regexp.Regexp
	timeRegex     *regexp.Regexp
	mpvRegex      *regexp.Regexp
	ffplayRegex   *regexp.Regexp
}

// NewStatusParser creates a parser with the default update interval.
func NewStatusParser() *StatusParser {
	return &StatusParser{
		MinInterval: DefaultMinInterval,
		now:         time.Now,
		// "  Duration: 00:30:00.04, start: 0.000000, bitrate: 2000 kb/s"
		durationRegex: regexp.MustCompile(`Duration:\s*([0-9]+:[0-9]{2}:[0-9]{2}(?:\.[0-9]+)?)`),
		// Match both "-stats" lines and "-progress" out_time= lines
		timeRegex: regexp.MustCompile(`(?:^|\s)(?:out_)?time=\s*(-?[0-9]+:[0-9]{2}:[0-9]{2}(?:\.[0-9]+)?)`),
		// "(Paused) AV: 00:01:23 / 00:30:00 (4%) A-V:  0.000"
		mpvRegex: regexp.MustCompile(`^(\(Paused\)\s*)?(?:AV|A|V):\s*([0-9:.]+)\s*/\s*([0-9:.]+)`),
		// "  12.34 A-V: -0.001 fd=   0 aq=   14KB vq=  120KB sq=    0B f=0/0"
		ffplayRegex: regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)\s+(?:A-V|M-V|M-A):`),
	}
}

// ParseLine parses a single line of player output and updates status.
// It reports whether anything was recognised.
func (sp *StatusParser) ParseLine(line string, status *models.PlaybackStatus) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	updated := false

	if matches := sp.durationRegex.FindStringSubmatch(line); len(matches) > 1 {
		if d, err := timecode.Parse(matches[1]); err == nil && d > 0 {
			status.SetDuration(d)
			updated = true
		}
	}

	if matches := sp.mpvRegex.FindStringSubmatch(line); len(matches) > 3 {
		position, err := timecode.Parse(matches[2])
		if err == nil {
			if d, err := timecode.Parse(matches[3]); err == nil && d > 0 {
				status.SetDuration(d)
			}
			setPosition(status, position, matches[1] != "")
			updated = true
		}
	} else if matches := sp.timeRegex.FindStringSubmatch(line); len(matches) > 1 {
		if position, err := timecode.Parse(matches[1]); err == nil {
			setPosition(status, position, false)
			updated = true
		}
	} else if matches := sp.ffplayRegex.FindStringSubmatch(line); len(matches) > 1 {
		if seconds, err := strconv.ParseFloat(matches[1], 64); err == nil {
			setPosition(status, time.Duration(math.Round(seconds*float64(time.Second))), false)
			updated = true
		}
	}

	// mpv: "Exiting... (End of file)"
	if strings.Contains(line, "(End of file)") {
		status.State = models.PlaybackStateEnded
		updated = true
	}

	return updated
}

// StreamStatus reads player output and reports status changes through
// callback. Players redraw their status line with \r, so both \r and \n end
// a line. Updates closer together than MinInterval are dropped unless the
// playback state changed; the last update is always delivered.
func (sp *StatusParser) StreamStatus(reader io.Reader, status *models.PlaybackStatus, callback models.StatusCallback) error {
	scanner := bufio.NewScanner(reader)

	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)
	scanner.Split(scanStatusLines)

	var (
		captured  bool
		pending   bool
		delivered bool
		last      time.Time
		lastState models.PlaybackState
	)

	for scanner.Scan() {
		if !sp.ParseLine(scanner.Text(), status) {
			continue
		}
		captured = true
		pending = true

		now := sp.now()
		if delivered && status.State == lastState && now.Sub(last) < sp.MinInterval {
			continue
		}

		delivered = true
		pending = false
		last = now
		lastState = status.State
		if callback != nil {
			callback(status)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading player output: %w", err)
	}

	if !captured {
		return fmt.Errorf("no playback status captured from player output")
	}

	if pending && callback != nil {
		callback(status)
	}

	return nil
}

// CloseToEnd reports whether position is within one frame of duration.
func CloseToEnd(position, duration time.Duration) bool {
	return duration > 0 && duration-position <= FrameDuration
}

func setPosition(status *models.PlaybackStatus, position time.Duration, paused bool) {
	if position < 0 {
		position = 0
	}
	status.SetPosition(position)

	switch {
	case CloseToEnd(position, status.Duration):
		status.State = models.PlaybackStateEnded
	case paused:
		status.State = models.PlaybackStatePaused
	default:
		status.State = models.PlaybackStatePlaying
	}
}

// scanStatusLines is bufio.ScanLines that also splits on a bare \r.
func scanStatusLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
