package gallery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventgallery/internal/dom"
	"eventgallery/internal/model"
)

// Ids of the page elements the controller needs.
const (
	PromptInputID  = "promptInput"
	GalleryID      = "imageGrid"
	ModalID        = "myModal"
	VideoID        = "videoPlayer"
	ModalCloseID   = "modalClose"
	EventInfoID    = "eventInfo"
	QueryFailedCSS = "query-failed"
)

var ErrMissingElement = errors.New("missing page element")

// Options configures a Controller.
type Options struct {
	Strategy  Strategy
	Rand      Rand // nil for a random seed
	ImageBase string
	VideoBase string
	Location  *time.Location
	// ShowErrors renders a notice in the gallery when a query fails.
	ShowErrors bool
}

// Request is a query the controller wants issued.
type Request struct {
	Seq      uint64
	Prompt   string
	Trigger  model.Trigger
	IssuedAt time.Time
}

// Result is what came back for a Request.
type Result struct {
	Request Request
	Events  []model.Event
	Err     error
}

// ModalView is the part of the modal state the browser applies.
type ModalView struct {
	Open     bool
	Src      string
	Poster   string
	Paused   bool
	Position float64
	Reset    uint64
}

// View holds the regions changed since the last Flush. Nil means unchanged.
type View struct {
	Gallery *string
	Info    *string
	Modal   *ModalView
	Notice  *string
}

func (v View) Empty() bool {
	return v.Gallery == nil && v.Info == nil && v.Modal == nil && v.Notice == nil
}

// Controller is the gallery of one browser session. It is not safe for
// concurrent use; the session loop owns it.
type Controller struct {
	doc      *dom.Document
	prompt   *dom.Element
	grid     *dom.Element
	renderer *Renderer
	modal    *PlaybackModal
	info     *EventInfoPanel
	opts     Options

	lastPrompt string
	issued     uint64
	state      GalleryState
	notice     string

	galleryDirty bool
	infoDirty    bool
	noticeDirty  bool
}

// New wires a controller to doc. Every element of the page contract must
// be present.
func New(doc *dom.Document, opts Options) (*Controller, error) {
	els := make(map[string]*dom.Element)
	for _, id := range []string{PromptInputID, GalleryID, ModalID, VideoID, ModalCloseID, EventInfoID} {
		el := doc.ElementByID(id)
		if el == nil {
			return nil, fmt.Errorf("%w: #%s", ErrMissingElement, id)
		}
		els[id] = el
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	colors := NewColorAssigner(opts.Strategy, opts.Rand)
	c := &Controller{
		doc:      doc,
		prompt:   els[PromptInputID],
		grid:     els[GalleryID],
		renderer: NewRenderer(NewCardBuilder(colors, opts.ImageBase, opts.VideoBase)),
		modal:    NewPlaybackModal(els[ModalID], els[VideoID], els[ModalCloseID]),
		info:     NewEventInfoPanel(els[EventInfoID], opts.Location),
		opts:     opts,
	}
	return c, nil
}

// NewDocument builds a document with every element the controller expects.
func NewDocument() *dom.Document {
	doc := dom.NewDocument()
	body := doc.Body()
	body.AppendChild(dom.NewElementWithID("input", PromptInputID).SetAttr("type", "text"))
	body.AppendChild(dom.NewElementWithID("div", GalleryID))
	body.AppendChild(dom.NewElementWithID("div", EventInfoID))

	modal := body.AppendChild(dom.NewElementWithID("div", ModalID).AddClass("modal"))
	content := modal.AppendChild(dom.NewElement("div").AddClass("modal-content"))
	content.AppendChild(dom.NewElementWithID("span", ModalCloseID).AddClass("close").SetText("×"))
	content.AppendChild(dom.NewElementWithID("video", VideoID).SetAttr("controls", "controls"))
	return doc
}

// Input records the text currently typed in the prompt box.
func (c *Controller) Input(text string) {
	c.lastPrompt = text
	c.prompt.SetAttr("value", text)
}

// Submit starts a user query. Blank prompts are ignored and change nothing.
// The gallery is cleared right away, before any response arrives.
func (c *Controller) Submit(prompt string) (Request, bool) {
	if strings.TrimSpace(prompt) == "" {
		return Request{}, false
	}
	c.Input(prompt)
	return c.issue(prompt, model.TriggerUser), true
}

// Refresh re-issues the last typed prompt, if there is one.
func (c *Controller) Refresh() (Request, bool) {
	if strings.TrimSpace(c.lastPrompt) == "" {
		return Request{}, false
	}
	return c.issue(c.lastPrompt, model.TriggerRefresh), true
}

func (c *Controller) issue(prompt string, trigger model.Trigger) Request {
	c.issued++
	c.grid.Clear()
	c.state = GalleryState{}
	c.galleryDirty = true
	c.setNotice("")
	return Request{Seq: c.issued, Prompt: prompt, Trigger: trigger, IssuedAt: time.Now()}
}

// Apply handles a finished request. Only the most recently issued request
// may change the gallery; anything older is reported stale.
func (c *Controller) Apply(res Result) model.Outcome {
	if res.Request.Seq != c.issued {
		return model.OutcomeStale
	}
	if res.Err != nil {
		if c.opts.ShowErrors {
			c.grid.Clear()
			c.grid.AppendChild(dom.NewElement("div").AddClass(QueryFailedCSS).SetText("Query failed"))
			c.galleryDirty = true
			c.setNotice(res.Err.Error())
		}
		return model.OutcomeFailed
	}

	c.state = c.renderer.Render(res.Events)
	c.renderer.Mount(c.grid, c.state, c.open)
	c.galleryDirty = true
	return model.OutcomeApplied
}

func (c *Controller) open(card Card, event model.Event) {
	c.modal.Open(card.VideoURL, card.ImageURL)
	c.info.Render(event)
	c.infoDirty = true
}

// Click dispatches a browser click. It reports false for unknown targets.
func (c *Controller) Click(targetID string) bool {
	return c.doc.Click(targetID)
}

// ReportPlayback records what the player reported. Ignored while closed.
func (c *Controller) ReportPlayback(paused bool, position float64) {
	if c.modal.State() != ModalOpen {
		return
	}
	if paused {
		c.modal.Pause()
	} else {
		c.modal.Play()
	}
	c.modal.Seek(position)
}

// Flush returns the regions changed since the previous call.
func (c *Controller) Flush() View {
	var v View
	if c.galleryDirty {
		html := dom.InnerHTML(c.grid)
		v.Gallery = &html
		c.galleryDirty = false
	}
	if c.infoDirty {
		html := dom.InnerHTML(c.info.panel)
		v.Info = &html
		c.infoDirty = false
	}
	if c.modal.takeChanged() {
		mv := c.modalView()
		v.Modal = &mv
	}
	if c.noticeDirty {
		n := c.notice
		v.Notice = &n
		c.noticeDirty = false
	}
	return v
}

// FullView returns every region, for a freshly connected browser.
func (c *Controller) FullView() View {
	gallery := dom.InnerHTML(c.grid)
	info := dom.InnerHTML(c.info.panel)
	mv := c.modalView()
	notice := c.notice
	c.galleryDirty, c.infoDirty, c.noticeDirty = false, false, false
	c.modal.takeChanged()
	return View{Gallery: &gallery, Info: &info, Modal: &mv, Notice: &notice}
}

func (c *Controller) modalView() ModalView {
	video := c.modal.Video()
	return ModalView{
		Open:     c.modal.State() == ModalOpen,
		Src:      video.Src,
		Poster:   video.Poster,
		Paused:   video.Paused,
		Position: video.Position,
		Reset:    c.modal.Resets(),
	}
}

func (c *Controller) setNotice(n string) {
	if c.notice != n {
		c.notice = n
		c.noticeDirty = true
	}
}

func (c *Controller) State() GalleryState {
	return c.state
}

func (c *Controller) Modal() *PlaybackModal {
	return c.modal
}

func (c *Controller) Info() *EventInfoPanel {
	return c.info
}

func (c *Controller) LastPrompt() string {
	return c.lastPrompt
}

// Issued is the sequence number of the latest request.
func (c *Controller) Issued() uint64 {
	return c.issued
}

// Gallery is the gallery container element.
func (c *Controller) Gallery() *dom.Element {
	return c.grid
}
