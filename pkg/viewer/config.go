package viewer

import (
	"fmt"
	"time"

	"github.com/gardar/ocrview/pkg/ocrpage"
)

// Config tunes the controller. Start from DefaultConfig and override.
type Config struct {
	Thresholds ocrpage.Thresholds `yaml:"thresholds"`

	// BatchSize is the number of pages projected between yields
	BatchSize int `yaml:"batch_size"`

	// LargeDocumentPages is the page count above which work is batched
	// and progress is reported
	LargeDocumentPages int `yaml:"large_document_pages"`

	NotificationMS int `yaml:"notification_ms"`
	HoverHideMS    int `yaml:"hover_hide_ms"`

	// Initial is the display state applied after initialization
	Initial DisplayState `yaml:"initial"`
}

// DefaultConfig returns the stock configuration
func DefaultConfig() Config {
	return Config{
		Thresholds:         ocrpage.DefaultThresholds,
		BatchSize:          10,
		LargeDocumentPages: 50,
		NotificationMS:     2000,
		HoverHideMS:        100,
		Initial:            DefaultDisplayState(),
	}
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.LargeDocumentPages < 0 {
		return fmt.Errorf("large_document_pages must not be negative, got %d", c.LargeDocumentPages)
	}
	if c.NotificationMS < 0 || c.HoverHideMS < 0 {
		return fmt.Errorf("timeouts must not be negative (notification_ms %d, hover_hide_ms %d)", c.NotificationMS, c.HoverHideMS)
	}
	return nil
}

func (c Config) notificationDelay() time.Duration {
	return time.Duration(c.NotificationMS) * time.Millisecond
}

func (c Config) hoverHideDelay() time.Duration {
	return time.Duration(c.HoverHideMS) * time.Millisecond
}
