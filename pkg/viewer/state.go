package viewer

import (
	"fmt"
	"strings"
)

// DisplayState records which layers are visible. It is a value type:
// With and WithInitialized return successors and never modify the
// receiver.
type DisplayState struct {
	LineBoxes     bool `yaml:"line_boxes"`
	WordBoxes     bool `yaml:"word_boxes"`
	XHTMLText     bool `yaml:"xhtml_text"`
	SVGText       bool `yaml:"svg_text"`
	HoverControls bool `yaml:"hover_controls"`
	SVGSection    bool `yaml:"svg_section"`
	SVGBackground bool `yaml:"svg_background"`
	Initialized   bool `yaml:"-"`
}

// DefaultDisplayState shows the XHTML text and nothing else
func DefaultDisplayState() DisplayState {
	return DisplayState{XHTMLText: true}
}

// Toggle names one of the seven user-facing switches
type Toggle int

const (
	ToggleLineBoxes Toggle = iota
	ToggleWordBoxes
	ToggleXHTMLText
	ToggleSVGText
	ToggleHoverControls
	ToggleSVGSection
	ToggleSVGBackground
)

// Toggles lists every toggle in control bar order
var Toggles = []Toggle{
	ToggleLineBoxes,
	ToggleWordBoxes,
	ToggleXHTMLText,
	ToggleSVGText,
	ToggleHoverControls,
	ToggleSVGSection,
	ToggleSVGBackground,
}

var toggleInfo = map[Toggle]struct {
	name  string
	label string
}{
	ToggleLineBoxes:     {"line-boxes", "Line Boxes"},
	ToggleWordBoxes:     {"word-boxes", "Word Boxes"},
	ToggleXHTMLText:     {"xhtml-text", "Text Content (XHTML)"},
	ToggleSVGText:       {"svg-text", "Text Content (SVG)"},
	ToggleHoverControls: {"hover-controls", "Hover Controls"},
	ToggleSVGSection:    {"svg-section", "SVG Section"},
	ToggleSVGBackground: {"svg-background", "SVG Background"},
}

// Name is the short name used on the command line, e.g. "word-boxes"
func (t Toggle) Name() string {
	return toggleInfo[t].name
}

// ID is the element id of the toggle's checkbox
func (t Toggle) ID() string {
	return "toggle-" + t.Name()
}

// Label is the text shown next to the switch
func (t Toggle) Label() string {
	return toggleInfo[t].label
}

func (t Toggle) String() string {
	if n := t.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("Toggle(%d)", int(t))
}

// ParseToggle resolves a short name, with or without the "toggle-" prefix
func ParseToggle(name string) (Toggle, error) {
	name = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), "toggle-")
	for _, t := range Toggles {
		if t.Name() == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown toggle %q", name)
}

// Get reports the value of one toggle
func (s DisplayState) Get(t Toggle) bool {
	switch t {
	case ToggleLineBoxes:
		return s.LineBoxes
	case ToggleWordBoxes:
		return s.WordBoxes
	case ToggleXHTMLText:
		return s.XHTMLText
	case ToggleSVGText:
		return s.SVGText
	case ToggleHoverControls:
		return s.HoverControls
	case ToggleSVGSection:
		return s.SVGSection
	case ToggleSVGBackground:
		return s.SVGBackground
	}
	return false
}

// With returns a successor with one toggle set to on
func (s DisplayState) With(t Toggle, on bool) DisplayState {
	switch t {
	case ToggleLineBoxes:
		s.LineBoxes = on
	case ToggleWordBoxes:
		s.WordBoxes = on
	case ToggleXHTMLText:
		s.XHTMLText = on
	case ToggleSVGText:
		s.SVGText = on
	case ToggleHoverControls:
		s.HoverControls = on
	case ToggleSVGSection:
		s.SVGSection = on
	case ToggleSVGBackground:
		s.SVGBackground = on
	}
	return s
}

// WithInitialized returns a successor with the initialized flag set
func (s DisplayState) WithInitialized(initialized bool) DisplayState {
	s.Initialized = initialized
	return s
}
