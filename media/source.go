// Package media finds out how long a piece of media is, either by probing a
// video file with ffprobe or by summing the segments of an HLS playlist.
package media

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoDuration is returned when a source does not report a usable duration.
var ErrNoDuration = errors.New("duration not available")

// Source represents the minimal media metadata the timeline needs.
//
// This interface decouples the timeline from specific probing
// implementations (ffprobe, HLS playlists, a fixed value), making it more
// testable and flexible.
type Source interface {
	// Duration returns the media duration.
	// Returns an error if the duration is not available or invalid.
	Duration() (time.Duration, error)

	// VideoSize returns the natural frame size of the first video stream.
	// ok is false when the source has no video.
	VideoSize() (width, height int, ok bool)
}

// Fixed is a Source with a known duration and no video.
type Fixed time.Duration

// Duration implements Source.
func (f Fixed) Duration() (time.Duration, error) {
	if f <= 0 {
		return 0, ErrNoDuration
	}
	return time.Duration(f), nil
}

// VideoSize implements Source.
func (f Fixed) VideoSize() (int, int, bool) {
	return 0, 0, false
}

// IsPlaylist reports whether input names an HLS playlist.
func IsPlaylist(input string) bool {
	ext := strings.ToLower(filepath.Ext(stripQuery(input)))
	return ext == ".m3u8" || ext == ".m3u"
}

// Open returns a Source for input: local playlists are parsed, anything else
// (including remote playlists, which ffprobe reads itself) is probed with
// ffprobe.
func Open(ctx context.Context, input string) (Source, error) {
	if IsPlaylist(input) && !strings.Contains(input, "://") {
		playlist, err := LoadPlaylist(input)
		if err != nil {
			return nil, err
		}
		return playlist, nil
	}

	result, err := Probe(ctx, input)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func stripQuery(input string) string {
	if i := strings.IndexAny(input, "?#"); i >= 0 {
		return input[:i]
	}
	return input
}
