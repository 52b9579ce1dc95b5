package media

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/grafov/m3u8"
)

// ErrMasterPlaylist is returned for a master playlist, which lists variant
// streams instead of segments and therefore has no duration of its own.
var ErrMasterPlaylist = errors.New("master playlist has no segments")

// Playlist is an HLS media playlist used as a duration source.
type Playlist struct {
	Segments       int
	TargetDuration time.Duration
	Live           bool // no EXT-X-ENDLIST, duration covers the current window only

	duration time.Duration
}

// Duration implements Source.
func (p *Playlist) Duration() (time.Duration, error) {
	if p.duration <= 0 {
		return 0, fmt.Errorf("%w: playlist has no segments", ErrNoDuration)
	}
	return p.duration, nil
}

// VideoSize implements Source. Media playlists carry no frame size.
func (p *Playlist) VideoSize() (int, int, bool) {
	return 0, 0, false
}

// LoadPlaylist reads an HLS media playlist from disk.
func LoadPlaylist(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}
	defer f.Close()

	return ReadPlaylist(f)
}

// ReadPlaylist decodes an HLS media playlist and sums its segment durations.
func ReadPlaylist(r io.Reader) (*Playlist, error) {
	decoded, listType, err := m3u8.DecodeFrom(r, false)
	if err != nil {
		return nil, fmt.Errorf("failed to parse playlist: %w", err)
	}
	if listType == m3u8.MASTER {
		return nil, ErrMasterPlaylist
	}

	media, ok := decoded.(*m3u8.MediaPlaylist)
	if !ok {
		return nil, fmt.Errorf("unexpected playlist type %T", decoded)
	}

	playlist := &Playlist{
		TargetDuration: seconds(media.TargetDuration),
		Live:           !media.Closed,
	}
	var total float64
	for _, segment := range media.Segments {
		// The segment slice is preallocated; unused slots are nil.
		if segment == nil {
			continue
		}
		total += segment.Duration
		playlist.Segments++
	}
	playlist.duration = seconds(total)

	return playlist, nil
}

// PlaylistDuration returns the summed segment duration of a media playlist.
func PlaylistDuration(r io.Reader) (time.Duration, error) {
	playlist, err := ReadPlaylist(r)
	if err != nil {
		return 0, err
	}
	return playlist.Duration()
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
