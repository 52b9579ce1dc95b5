// Package preview plans the thumbnail strip shown under the ruler.
//
// A Planner works out how many frames are needed to cover the timeline
// width at the panel height and at which times they should be grabbed. Each
// Frame knows the ffmpeg arguments that extract it; running them is left to
// the caller.
package preview

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"timeline/internal/timecode"
)

// DefaultPanelHeight is the height of the thumbnail strip in pixels.
const DefaultPanelHeight = 70

// ErrNoVideoSize is returned when the frame size of the video is unknown.
var ErrNoVideoSize = errors.New("video frame size unknown")

// Frame is a single thumbnail to extract.
type Frame struct {
	Index int
	Time  time.Duration
	Path  string

	sourcePath string
	height     int
}

// BuildArgs constructs the FFmpeg arguments that grab this frame.
// Seeking before -i makes ffmpeg jump to the nearest keyframe first.
func (f Frame) BuildArgs() []string {
	return []string{
		"-ss", timecode.FormatSeconds(f.Time.Seconds()),
		"-i", f.sourcePath,
		"-frames:v", "1",
		"-vf", fmt.Sprintf("scale=w=-1:h=%d", f.height),
		f.Path,
	}
}

// DryRun returns the command string without executing.
func (f Frame) DryRun() string {
	return fmt.Sprintf("ffmpeg %s", strings.Join(f.BuildArgs(), " "))
}

// Planner plans thumbnails for one video.
type Planner struct {
	videoPath   string
	outputDir   string
	panelHeight int
}

// NewPlanner creates a planner writing frames into outputDir.
func NewPlanner(videoPath, outputDir string) *Planner {
	return &Planner{
		videoPath:   videoPath,
		outputDir:   outputDir,
		panelHeight: DefaultPanelHeight,
	}
}

// SetPanelHeight sets the thumbnail height in pixels.
func (p *Planner) SetPanelHeight(height int) *Planner {
	p.panelHeight = height
	return p
}

// PanelHeight returns the thumbnail height in pixels.
func (p *Planner) PanelHeight() int {
	return p.panelHeight
}

// ThumbnailWidth returns the width of one thumbnail scaled to the panel
// height, keeping the video aspect ratio.
func (p *Planner) ThumbnailWidth(videoWidth, videoHeight int) (float64, error) {
	if videoWidth <= 0 || videoHeight <= 0 {
		return 0, fmt.Errorf("%w: got %dx%d", ErrNoVideoSize, videoWidth, videoHeight)
	}
	if p.panelHeight <= 0 {
		return 0, fmt.Errorf("panel height must be positive, got %d", p.panelHeight)
	}
	return float64(videoWidth) * float64(p.panelHeight) / float64(videoHeight), nil
}

// Plan lays thumbnails side by side across timelineWidth pixels. Frames are
// spaced evenly in time so that frame i sits under the part of the ruler it
// shows; the last one may be cut off by the end of the timeline.
//
// Plan returns no frames when there is nothing to cover (no duration or no
// width yet).
func (p *Planner) Plan(duration time.Duration, timelineWidth float64, videoWidth, videoHeight int) ([]Frame, error) {
	thumbWidth, err := p.ThumbnailWidth(videoWidth, videoHeight)
	if err != nil {
		return nil, err
	}
	if duration <= 0 || timelineWidth <= 0 || math.IsNaN(timelineWidth) {
		return nil, nil
	}

	numOfPreviews := timelineWidth / thumbWidth
	interval := float64(duration) / numOfPreviews
	count := int(math.Ceil(numOfPreviews))

	frames := make([]Frame, 0, count)
	for i := 0; i < count; i++ {
		frames = append(frames, Frame{
			Index:      i,
			Time:       time.Duration(math.Round(float64(i) * interval)),
			Path:       filepath.Join(p.outputDir, fmt.Sprintf("%d.png", i)),
			sourcePath: p.videoPath,
			height:     p.panelHeight,
		})
	}

	return frames, nil
}
