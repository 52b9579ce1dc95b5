package media

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"time"
)

// Stream represents a media stream (audio, video, subtitle, etc.)
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	Duration  string `json:"duration,omitempty"`
}

// Format represents the container format information.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// ProbeResult holds the metadata ffprobe reports for a media file.
type ProbeResult struct {
	Streams []Stream `json:"streams"`
	Format  Format   `json:"format"`
}

// Duration returns the container duration, falling back to the longest
// stream when the container does not report one.
//
// Returns an error if no duration can be parsed.
func (pr *ProbeResult) Duration() (time.Duration, error) {
	if pr.Format.Duration != "" {
		return parseSeconds(pr.Format.Duration)
	}

	var longest time.Duration
	for _, stream := range pr.Streams {
		if stream.Duration == "" {
			continue
		}
		d, err := parseSeconds(stream.Duration)
		if err != nil {
			return 0, err
		}
		if d > longest {
			longest = d
		}
	}
	if longest <= 0 {
		return 0, fmt.Errorf("%w in format or stream metadata", ErrNoDuration)
	}
	return longest, nil
}

// VideoSize returns the frame size of the first video stream.
func (pr *ProbeResult) VideoSize() (int, int, bool) {
	for _, stream := range pr.VideoStreams() {
		if stream.Width > 0 && stream.Height > 0 {
			return stream.Width, stream.Height, true
		}
	}
	return 0, 0, false
}

// VideoStreams returns all video streams from the media file.
func (pr *ProbeResult) VideoStreams() []Stream {
	var videoStreams []Stream
	for _, stream := range pr.Streams {
		if stream.CodecType == "video" {
			videoStreams = append(videoStreams, stream)
		}
	}
	return videoStreams
}

// Probe analyzes a media file and extracts its metadata using ffprobe.
//
// Example:
//
//	result, err := media.Probe(ctx, "/path/to/video.mp4")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	duration, _ := result.Duration()
func Probe(ctx context.Context, sourcePath string) (*ProbeResult, error) {
	if sourcePath == "" {
		return nil, fmt.Errorf("source path cannot be empty")
	}

	// -v quiet: suppress verbose output
	// -print_format json: output in JSON format
	// -show_streams / -show_format: stream sizes and container duration
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-show_format",
		sourcePath,
	}

	cmd := exec.CommandContext(ctx, "ffprobe", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w (output: %s)", err, string(output))
	}

	return ParseProbeOutput(output)
}

// ParseProbeOutput decodes the JSON printed by
// ffprobe -print_format json -show_streams -show_format.
func ParseProbeOutput(data []byte) (*ProbeResult, error) {
	var result ProbeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe JSON output: %w", err)
	}
	return &result, nil
}

func parseSeconds(s string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration '%s': %w", s, err)
	}
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: %s seconds", ErrNoDuration, s)
	}
	return time.Duration(math.Round(seconds * float64(time.Second))), nil
}
