package gallery

import "eventgallery/internal/dom"

type ModalState int

const (
	ModalClosed ModalState = iota
	ModalOpen
)

func (s ModalState) String() string {
	if s == ModalOpen {
		return "open"
	}
	return "closed"
}

// VideoState mirrors the video element inside the modal.
type VideoState struct {
	Src      string
	Poster   string
	Paused   bool
	Position float64 // seconds
}

// PlaybackModal is the video overlay. Clicking the backdrop (the container
// itself, not one of its children) or the close control closes it.
type PlaybackModal struct {
	container *dom.Element
	video     *dom.Element

	state    ModalState
	playback VideoState
	// resets counts closes; the browser rewinds its player whenever it grows.
	resets  uint64
	changed bool
}

func NewPlaybackModal(container, video, closeControl *dom.Element) *PlaybackModal {
	m := &PlaybackModal{
		container: container,
		video:     video,
		playback:  VideoState{Paused: true},
	}
	container.SetStyle("display", "none")

	container.OnClick(func(e *dom.Event) {
		if e.Target == container {
			m.Close()
		}
	})
	closeControl.OnClick(func(*dom.Event) {
		m.Close()
	})
	return m
}

// Open shows the modal with a new source and poster. Opening an already
// open modal swaps the payload in place.
func (m *PlaybackModal) Open(src, poster string) {
	m.state = ModalOpen
	m.playback = VideoState{Src: src, Poster: poster, Paused: true}
	m.video.SetAttr("src", src)
	m.video.SetAttr("poster", poster)
	m.container.SetStyle("display", "block")
	m.changed = true
}

// Close hides the modal, pauses the video and rewinds it to the start.
// It returns false when the modal was not open.
func (m *PlaybackModal) Close() bool {
	if m.state != ModalOpen {
		return false
	}
	m.state = ModalClosed
	m.playback.Paused = true
	m.playback.Position = 0
	m.resets++
	m.container.SetStyle("display", "none")
	m.changed = true
	return true
}

func (m *PlaybackModal) Play() {
	if m.state == ModalOpen {
		m.playback.Paused = false
	}
}

func (m *PlaybackModal) Pause() {
	m.playback.Paused = true
}

// Seek records the position reported by the player.
func (m *PlaybackModal) Seek(position float64) {
	if m.state != ModalOpen {
		return
	}
	if position < 0 {
		position = 0
	}
	m.playback.Position = position
}

func (m *PlaybackModal) State() ModalState {
	return m.state
}

func (m *PlaybackModal) Video() VideoState {
	return m.playback
}

func (m *PlaybackModal) Resets() uint64 {
	return m.resets
}

func (m *PlaybackModal) takeChanged() bool {
	c := m.changed
	m.changed = false
	return c
}
