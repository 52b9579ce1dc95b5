package media

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

const sampleProbeOutput = `{
    "streams": [
        {
            "index": 0,
            "codec_name": "h264",
            "codec_type": "video",
            "width": 1280,
            "height": 720,
            "duration": "30.500000"
        },
        {
            "index": 1,
            "codec_name": "aac",
            "codec_type": "audio",
            "duration": "30.533333"
        }
    ],
    "format": {
        "filename": "sample.mp4",
        "format_name": "mov,mp4,m4a,3gp,3g2,mj2",
        "duration": "30.533333"
    }
}`

func TestProbe_EmptyPath(t *testing.T) {
	_, err := Probe(context.Background(), "")
	if err == nil {
		t.Fatal("Expected error for empty path")
	}
	if !strings.Contains(err.Error(), "cannot be empty") {
		t.Errorf("Expected 'cannot be empty' error, got: %v", err)
	}
}

func TestProbe_NonExistentFile(t *testing.T) {
	_, err := Probe(context.Background(), "/nonexistent/file.mp4")
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
	if !strings.Contains(err.Error(), "ffprobe failed") {
		t.Errorf("Expected ffprobe error, got: %v", err)
	}
}

func TestProbe_WithRealFile(t *testing.T) {
	testFile := os.Getenv("TIMELINE_TEST_VIDEO")
	if testFile == "" {
		t.Skip("TIMELINE_TEST_VIDEO not set, skipping real file test")
	}

	result, err := Probe(context.Background(), testFile)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}

	duration, err := result.Duration()
	if err != nil {
		t.Errorf("Failed to get duration: %v", err)
	}
	if duration <= 0 {
		t.Errorf("Expected positive duration, got %v", duration)
	}
}

func TestParseProbeOutput(t *testing.T) {
	result, err := ParseProbeOutput([]byte(sampleProbeOutput))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	d, err := result.Duration()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if d != 30533333*time.Microsecond {
		t.Errorf("Expected 30.533333s, got %v", d)
	}

	w, h, ok := result.VideoSize()
	if !ok || w != 1280 || h != 720 {
		t.Errorf("Expected 1280x720 video, got %dx%d (ok=%v)", w, h, ok)
	}

	if len(result.VideoStreams()) != 1 {
		t.Errorf("Expected 1 video stream, got %d", len(result.VideoStreams()))
	}
}

func TestParseProbeOutput_Invalid(t *testing.T) {
	if _, err := ParseProbeOutput([]byte("{not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestProbeResult_Duration(t *testing.T) {
	tests := []struct {
		name        string
		result      ProbeResult
		expected    time.Duration
		expectError bool
	}{
		{
			name:     "Format duration",
			result:   ProbeResult{Format: Format{Duration: "30.5"}},
			expected: 30500 * time.Millisecond,
		},
		{
			name: "Longest stream when format has none",
			result: ProbeResult{Streams: []Stream{
				{CodecType: "video", Duration: "12.0"},
				{CodecType: "audio", Duration: "12.25"},
			}},
			expected: 12250 * time.Millisecond,
		},
		{
			name:        "Nothing reported",
			result:      ProbeResult{},
			expectError: true,
		},
		{
			name:        "Unparseable",
			result:      ProbeResult{Format: Format{Duration: "N/A"}},
			expectError: true,
		},
		{
			name:        "Zero",
			result:      ProbeResult{Format: Format{Duration: "0.000000"}},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.result.Duration()
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error, got %v", d)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if d != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, d)
			}
		})
	}
}

func TestProbeResult_VideoSize_AudioOnly(t *testing.T) {
	result := ProbeResult{Streams: []Stream{{CodecType: "audio"}}}
	if _, _, ok := result.VideoSize(); ok {
		t.Error("Expected no video size for audio-only media")
	}
}

func TestFixed(t *testing.T) {
	d, err := Fixed(30 * time.Minute).Duration()
	if err != nil || d != 30*time.Minute {
		t.Errorf("Expected 30m, got %v (%v)", d, err)
	}

	if _, err := Fixed(0).Duration(); !errors.Is(err, ErrNoDuration) {
		t.Errorf("Expected ErrNoDuration, got %v", err)
	}
}

func TestIsPlaylist(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"index.m3u8", true},
		{"/var/hls/INDEX.M3U8", true},
		{"list.m3u", true},
		{"https://cdn.example.com/live/index.m3u8?token=abc", true},
		{"movie.mp4", false},
		{"m3u8", false},
	}

	for _, tt := range tests {
		if got := IsPlaylist(tt.input); got != tt.want {
			t.Errorf("IsPlaylist(%q): expected %v, got %v", tt.input, tt.want, got)
		}
	}
}
