package ocrpage

import "strings"

// LineText joins a line's words with single spaces
func LineText(line LineData) string {
	words := make([]string, 0, len(line.Words))
	for _, w := range line.Words {
		words = append(words, w.Text)
	}
	return strings.Join(words, " ")
}

// PageText joins the page's lines with line feeds
func PageText(page PageModel) string {
	lines := make([]string, 0, len(page.Lines))
	for _, l := range page.Lines {
		lines = append(lines, LineText(l))
	}
	return strings.Join(lines, "\n")
}
