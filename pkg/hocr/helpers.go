package hocr

// WordCount counts the words on the page
func (p Page) WordCount() int {
	n := 0
	for _, line := range p.Lines {
		n += len(line.Words)
	}
	return n
}

// AverageConfidence is the mean x_wconf of the words that carry one,
// scaled to 0..1. ok is false when no word does.
func (p Page) AverageConfidence() (avg float64, ok bool) {
	var sum float64
	var rated int
	for _, line := range p.Lines {
		for _, w := range line.Words {
			if w.HasConfidence() {
				sum += confidence(w.Confidence)
				rated++
			}
		}
	}
	if rated == 0 {
		return 0, false
	}
	return sum / float64(rated), true
}

// WordCount counts the words in the document
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.Pages {
		n += p.WordCount()
	}
	return n
}

// LineCount counts the lines in the document
func (d *Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// confidence scales an x_wconf to 0..1
func confidence(wconf float64) float64 {
	return max(0, min(1, wconf/100))
}
