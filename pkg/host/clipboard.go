package host

import (
	"errors"
	"fmt"
	"io"
)

// ErrClipboardUnavailable is returned by clipboards that cannot accept text
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// Clipboard is the clipboard collaborator
type Clipboard interface {
	WriteText(text string) error
}

// MemoryClipboard keeps every written text. Setting Err makes writes fail.
type MemoryClipboard struct {
	Writes []string
	Err    error
}

// WriteText implements Clipboard
func (c *MemoryClipboard) WriteText(text string) error {
	if c.Err != nil {
		return c.Err
	}
	c.Writes = append(c.Writes, text)
	return nil
}

// Last returns the most recent write, or "" when nothing was written
func (c *MemoryClipboard) Last() string {
	if len(c.Writes) == 0 {
		return ""
	}
	return c.Writes[len(c.Writes)-1]
}

// WriterClipboard copies text to an io.Writer, one entry per line
type WriterClipboard struct {
	W io.Writer
}

// WriteText implements Clipboard
func (c WriterClipboard) WriteText(text string) error {
	if c.W == nil {
		return ErrClipboardUnavailable
	}
	if _, err := fmt.Fprintln(c.W, text); err != nil {
		return fmt.Errorf("writing clipboard text: %w", err)
	}
	return nil
}
