package ocrpage

import "fmt"

// Thresholds split confidences into levels. High >= High, Medium >=
// Medium, everything else is Low.
type Thresholds struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
}

// DefaultThresholds are the 80% / 50% cut-offs
var DefaultThresholds = Thresholds{High: 0.8, Medium: 0.5}

// Validate checks 0 <= Medium <= High <= 1
func (t Thresholds) Validate() error {
	if t.Medium < 0 || t.High > 1 || t.Medium > t.High {
		return fmt.Errorf("invalid confidence thresholds: medium %.2f, high %.2f", t.Medium, t.High)
	}
	return nil
}

// ConfidenceLevel tags a word's confidence
type ConfidenceLevel int

const (
	Low ConfidenceLevel = iota
	Medium
	High
)

// Classify maps a confidence to its level
func (t Thresholds) Classify(confidence float64) ConfidenceLevel {
	switch {
	case confidence >= t.High:
		return High
	case confidence >= t.Medium:
		return Medium
	default:
		return Low
	}
}

func (c ConfidenceLevel) String() string {
	switch c {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

// HTMLClass is the class applied to words in the XHTML text layer
func (c ConfidenceLevel) HTMLClass() string {
	switch c {
	case High:
		return "confidence-high"
	case Medium:
		return "confidence-med"
	default:
		return "confidence-low"
	}
}

// SVGClass is the class applied to word polygons in the SVG layer
func (c ConfidenceLevel) SVGClass() string {
	switch c {
	case High:
		return "word-box-high"
	case Medium:
		return "word-box-med"
	default:
		return "word-box-low"
	}
}

// Color is the level's stroke and legend color: green, amber or red
func (c ConfidenceLevel) Color() string {
	switch c {
	case High:
		return "#00aa00"
	case Medium:
		return "#ffaa00"
	default:
		return "#ff0000"
	}
}

// Levels lists the levels from high to low
var Levels = []ConfidenceLevel{High, Medium, Low}

// Percent formats a 0..1 confidence as a percentage with one decimal
func Percent(confidence float64) string {
	return FormatCoord(confidence*100) + "%"
}
