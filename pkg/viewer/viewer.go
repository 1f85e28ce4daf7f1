// Package viewer turns a static win11OneOcr XHTML document into an
// interactive viewer.
//
// The Controller owns the single DisplayState. Initialize runs eight
// ordered stages (cleanup, page models, XHTML annotation, control bar, SVG
// sections, toggle bindings, first projection, ready) and every toggle
// change projects the successor state onto each page. Documents above
// Config.LargeDocumentPages yield to the host scheduler between stages and
// between projection batches and report progress in an overlay.
//
// All host facilities come in through Env, so the same code runs under a
// virtual-time host.Loop in tests and in the ocrview command.
package viewer

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/net/html"

	"github.com/gardar/ocrview/pkg/dom"
	"github.com/gardar/ocrview/pkg/host"
	"github.com/gardar/ocrview/pkg/logging"
	"github.com/gardar/ocrview/pkg/multipage"
	"github.com/gardar/ocrview/pkg/ocrpage"
	"github.com/gardar/ocrview/pkg/styler"
)

// ErrNoControlBar is returned when a toggle is driven before the control
// bar exists
var ErrNoControlBar = errors.New("control bar not built")

// YieldDelay is the pause between stages and batches of large documents
const YieldDelay = time.Millisecond

// Env carries the host collaborators
type Env struct {
	Scheduler host.Scheduler
	Clipboard host.Clipboard
	Layout    host.Layout
	Log       *logging.Logger
}

// stage progress values reported after each initialization stage
var stageProgress = [...]int{10, 20, 40, 60, 75, 85, 95, 100}

// Controller drives one document
type Controller struct {
	doc    *dom.Document
	cfg    Config
	env    Env
	log    *logging.Logger
	coord  *multipage.Coordinator
	styler *styler.Styler

	state       DisplayState
	pages       []*html.Node
	models      []ocrpage.PageModel
	initRunning bool
	ready       []func()

	// generation invalidates scheduled work of an earlier Initialize
	generation int
	passing    bool
	rerun      bool

	hover hoverMachine
}

// New validates cfg and returns a Controller for doc. A nil Scheduler
// gets a private host.Loop, which only advances when driven.
func New(doc *dom.Document, cfg Config, env Env) (*Controller, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid viewer configuration: %w", err)
	}
	if env.Scheduler == nil {
		env.Scheduler = host.NewLoop()
	}
	if env.Layout == nil {
		env.Layout = &host.StaticLayout{}
	}

	c := &Controller{
		doc:   doc,
		cfg:   cfg,
		env:   env,
		log:   env.Log.With("viewer"),
		coord: multipage.New(doc.Root, env.Log.With("multipage")),
		state: cfg.Initial.WithInitialized(false),
	}
	s, err := styler.New(doc, cfg.Thresholds, env.Log.With("styler"), c)
	if err != nil {
		return nil, err
	}
	c.styler = s
	return c, nil
}

// State returns the current display state
func (c *Controller) State() DisplayState {
	return c.state
}

// Pages returns the page sections found by the last initialization
func (c *Controller) Pages() []*html.Node {
	return c.pages
}

// Models returns the page models built by the last initialization
func (c *Controller) Models() []ocrpage.PageModel {
	return c.models
}

// Coordinator exposes the document's page coordinator
func (c *Controller) Coordinator() *multipage.Coordinator {
	return c.coord
}

// OnReady registers fn to run once initialization completes. If it has
// already completed fn runs immediately.
func (c *Controller) OnReady(fn func()) {
	if c.state.Initialized && !c.initRunning {
		fn()
		return
	}
	c.ready = append(c.ready, fn)
}

func (c *Controller) large() bool {
	return len(c.pages) > c.cfg.LargeDocumentPages
}

// Initialize (re)builds the viewer. Small documents are done when it
// returns; large ones finish on the scheduler. Calling it while an
// initialization is still running is a no-op.
func (c *Controller) Initialize() {
	if c.initRunning {
		c.log.Warn("initialization already running")
		return
	}
	c.initRunning = true
	c.generation++
	c.passing = false
	c.rerun = false
	c.hideFloating()
	c.hideProgress()
	c.state = c.cfg.Initial.WithInitialized(false)
	c.pages = c.coord.Pages()
	c.log.Info("initializing", "pages", len(c.pages), "large", c.large())

	if c.large() {
		c.showProgress(0)
	}
	c.runStages(c.generation, 0)
}

func (c *Controller) stages() []func() {
	return []func(){
		c.cleanup,
		c.buildModels,
		c.annotatePages,
		c.buildControls,
		c.buildSVGSections,
		c.bindToggles,
		func() { c.projectPages(c.pages, c.state) },
		c.finishInit,
	}
}

func (c *Controller) runStages(gen, from int) {
	stages := c.stages()
	for i := from; i < len(stages); i++ {
		if gen != c.generation {
			return
		}
		c.runStage(i, stages[i])
		if c.large() {
			// a projection pass started by an early toggle owns the overlay
			if !c.passing {
				c.setProgress(stageProgress[i])
			}
			if i+1 < len(stages) {
				next := i + 1
				c.env.Scheduler.Schedule(YieldDelay, func() { c.runStages(gen, next) })
				return
			}
		}
	}
}

// runStage keeps one failing stage from aborting the rest
func (c *Controller) runStage(i int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("initialization stage failed", "stage", i+1, "err", r)
		}
	}()
	c.log.Debug("initialization stage", "stage", i+1)
	fn()
}

func (c *Controller) cleanup() {
	root := c.doc.Root
	removed := 0
	for _, sel := range []string{
		"#" + controlBarID,
		"." + metadataStripClass,
		"." + styler.SectionClass,
		"." + styler.CopyButtonClass,
		"." + styler.BadgeClass,
		"." + styler.BackgroundImageClass,
		"#" + floatingControlsID,
		"." + notificationClass,
		"." + wordDetailsClass,
	} {
		removed += c.doc.RemoveAll(root, sel)
	}
	if removed > 0 {
		c.log.Debug("removed artifacts of a previous run", "count", removed)
	}
}

func (c *Controller) buildModels() {
	c.models = make([]ocrpage.PageModel, len(c.pages))
	for i := range c.models {
		c.models[i] = ocrpage.EmptyPageModel()
	}
	c.forEachPage(func(i int, page *html.Node, _ int, _ bool) error {
		c.models[i] = ocrpage.BuildPageModel(page, c.log)
		return nil
	})
	if len(c.pages) == 0 {
		c.log.Error("no OCR page sections, continuing with an empty document")
	}
}

func (c *Controller) annotatePages() {
	c.forEachPage(func(i int, page *html.Node, number int, multi bool) error {
		c.styler.Annotate(page, c.models[i], i, number, multi)
		return nil
	})
}

func (c *Controller) buildSVGSections() {
	c.forEachPage(func(i int, page *html.Node, number int, _ bool) error {
		_, err := c.styler.BuildSVG(page, c.models[i], i, number)
		return err
	})
}

func (c *Controller) finishInit() {
	c.state = c.state.WithInitialized(true)
	if !c.passing {
		c.hideProgress()
	}
	c.initRunning = false
	c.log.Info("viewer initialized", "pages", len(c.pages))

	ready := c.ready
	c.ready = nil
	for _, fn := range ready {
		fn()
	}
}

// forEachPage walks the pages found at the start of Initialize, pairing
// each with its index
func (c *Controller) forEachPage(fn func(i int, page *html.Node, number int, multi bool) error) {
	if len(c.pages) == 0 {
		return
	}
	index := make(map[*html.Node]int, len(c.pages))
	for i, p := range c.pages {
		index[p] = i
	}
	_ = c.coord.ForEachPage(func(page *html.Node, number int, multi bool) error {
		i, ok := index[page]
		if !ok {
			return fmt.Errorf("page %d appeared during initialization", number)
		}
		return fn(i, page, number, multi)
	})
}
