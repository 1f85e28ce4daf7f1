// ocrview is a command-line tool for turning win11OneOcr XHTML documents
// into interactive viewers.
//
// It runs the viewer initialization over the document, with confidence
// styling, the control bar and an SVG rendering of every page, and
// writes the enriched document. hOCR output from Tesseract and similar
// engines can be imported in place of XHTML.
//
// Usage:
//
//	ocrview -input document.xhtml -output enriched.xhtml [options]
//
// Required flags:
//
//	-output string    Path to save the enriched XHTML
//
// Input options (exactly one required):
//
//	-input string     Path to a win11OneOcr XHTML document
//	-hocr string      Path to an hOCR document to import
//
// Viewer options:
//
//	-config string    Path to a YAML file overriding the viewer defaults
//	-show string      Comma separated toggles to switch on, e.g. word-boxes,svg-section
//	-copy-page int    Copy the text of this page number to stdout
//	-overwrite        Overwrite output file if it exists
//	-log-level string Log level: debug, info, warn or error (default "info")
//	-debug            Enable debug logging, same as -log-level debug
//
// Configuration:
//
//	thresholds: {high: 0.8, medium: 0.5}
//	batch_size: 10
//	large_document_pages: 50
//	initial:
//	  word_boxes: true
//	  svg_section: true
//
// Examples:
//
//	ocrview -input scan.xhtml -output scan_viewer.xhtml -show word-boxes
//	ocrview -hocr scan.hocr -output scan_viewer.xhtml -copy-page 2
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/hocr"
	"github.com/gardar/ocrview/pkg/host"
	"github.com/gardar/ocrview/pkg/logging"
	"github.com/gardar/ocrview/pkg/viewer"
)

type options struct {
	inputPath  string
	hocrPath   string
	outputPath string
	configPath string
	show       string
	copyPage   int
	overwrite  bool
	logLevel   string
	debug      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.inputPath, "input", "", "Path to a win11OneOcr XHTML document")
	flag.StringVar(&opts.hocrPath, "hocr", "", "Path to an hOCR document to import instead of -input")
	flag.StringVar(&opts.outputPath, "output", "", "Path to save the enriched XHTML (required)")
	flag.StringVar(&opts.configPath, "config", "", "Path to the viewer config YAML file")
	flag.StringVar(&opts.show, "show", "", "Comma-separated toggles to switch on after initialization")
	flag.IntVar(&opts.copyPage, "copy-page", 0, "Copy the text of this page number (1-based) to stdout")
	flag.BoolVar(&opts.overwrite, "overwrite", false, "Overwrite the output file if it already exists")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flag.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if (opts.inputPath == "") == (opts.hocrPath == "") {
		fmt.Fprintln(os.Stderr, "Error: Either -input or -hocr flag must be provided (but not both)")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if opts.outputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -output flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := logging.NewLogger("ocrview")
	logger.SetLevel(opts.level())
	if err := run(opts, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ Viewer document created:", opts.outputPath)
}

func (o options) level() logging.Level {
	if o.debug {
		return logging.LevelDebug
	}
	return logging.ParseLevel(o.logLevel)
}

// run enriches one document. Copied text goes to stdout.
func run(opts options, stdout io.Writer, logger *logging.Logger) error {
	if _, err := os.Stat(opts.outputPath); err == nil && !opts.overwrite {
		return fmt.Errorf("output file %s already exists, use -overwrite to overwrite", opts.outputPath)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	toggles, err := parseShow(opts.show)
	if err != nil {
		return err
	}

	data, err := readInput(opts)
	if err != nil {
		return err
	}
	doc, err := dom.Parse(data)
	if err != nil {
		return err
	}

	loop := host.NewLoop()
	c, err := viewer.New(doc, cfg, viewer.Env{
		Scheduler: loop,
		Clipboard: host.WriterClipboard{W: stdout},
		Log:       logger,
	})
	if err != nil {
		return err
	}

	c.Initialize()
	loop.RunUntilIdle(0)
	for _, t := range toggles {
		if err := c.SetToggle(t, true); err != nil {
			return err
		}
		loop.RunUntilIdle(0)
	}

	if opts.copyPage > 0 {
		if err := copyPage(c, opts.copyPage); err != nil {
			return err
		}
		// drop the notification before rendering
		loop.RunUntilIdle(0)
	}

	return writeOutput(doc, opts.outputPath)
}

func readInput(opts options) ([]byte, error) {
	if opts.hocrPath == "" {
		data, err := os.ReadFile(opts.inputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return data, nil
	}

	raw, err := os.ReadFile(opts.hocrPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read hOCR file: %w", err)
	}
	parsed, err := hocr.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}
	xhtml, err := hocr.RenderXHTML(parsed)
	if err != nil {
		return nil, err
	}
	return []byte(xhtml), nil
}

func copyPage(c *viewer.Controller, number int) error {
	page := c.Coordinator().PageByNumber(number)
	for i, p := range c.Pages() {
		if p == page {
			c.CopyPage(i)
			return nil
		}
	}
	return fmt.Errorf("page %d not found", number)
}

func writeOutput(doc *dom.Document, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := doc.Render(f); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
