package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// Media source
	if c.Input == "" && c.Duration <= 0 {
		errors = append(errors, "input file or a positive duration is required")
	}
	if c.Input != "" && !isRemote(c.Input) {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("input file does not exist: %s", c.Input))
		}
	}
	if c.Duration < 0 {
		errors = append(errors, "duration cannot be negative")
	}
	if c.Position < 0 {
		errors = append(errors, "position cannot be negative")
	}

	// Viewport
	if c.ViewportWidth <= 0 {
		errors = append(errors, "viewport width must be positive")
	}
	if c.SeekerWidth < 0 {
		errors = append(errors, "seeker width cannot be negative")
	}
	if c.Zoom > 100 {
		errors = append(errors, "zoom cannot exceed 100 (use a negative value to fit)")
	}

	if err := c.Curve.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("curve config: %v", err))
	}
	if err := c.Ruler.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("ruler config: %v", err))
	}
	if err := c.Preview.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("preview config: %v", err))
	}

	if c.Interactive && c.Follow {
		errors = append(errors, "interactive and follow modes cannot be combined")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if the curve configuration is valid
func (cc *CurveConfig) Validate() error {
	cfg := Config{Curve: *cc}
	if _, err := cfg.BuildCurve(); err != nil {
		return err
	}
	return nil
}

// Validate checks if ruler configuration is valid
func (rc *RulerConfig) Validate() error {
	var errors []string

	if rc.LineOffset < 0 {
		errors = append(errors, "line offset cannot be negative")
	}
	if rc.TrailingMargin < 0 {
		errors = append(errors, "trailing margin cannot be negative")
	}
	if rc.LabelWidth <= 0 {
		errors = append(errors, "label width must be positive")
	}

	if len(rc.TickHeights) != 3 {
		errors = append(errors, "tick heights must list short, medium and tall heights")
	} else {
		for i, h := range rc.TickHeights {
			if h <= 0 {
				errors = append(errors, fmt.Sprintf("tick height %d must be positive", i+1))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// Validate checks if preview configuration is valid
func (pc *PreviewConfig) Validate() error {
	if !pc.Enabled {
		return nil
	}

	var errors []string

	if pc.PanelHeight <= 0 {
		errors = append(errors, "panel height must be positive")
	}
	if pc.OutputDir == "" {
		errors = append(errors, "output directory is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// isRemote reports whether input is a URL rather than a local path
func isRemote(input string) bool {
	return strings.Contains(input, "://")
}
