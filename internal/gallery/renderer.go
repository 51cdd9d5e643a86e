package gallery

import (
	"strings"

	"eventgallery/internal/dom"
	"eventgallery/internal/model"
)

// Entry is one event together with the cards built from it.
type Entry struct {
	Event model.Event
	Cards []Card
}

// GalleryState is everything currently shown in the gallery.
// It is replaced as a whole on every query cycle.
type GalleryState struct {
	Entries []Entry
}

// Cards returns all cards in display order.
func (s GalleryState) Cards() []Card {
	var cards []Card
	for _, e := range s.Entries {
		cards = append(cards, e.Cards...)
	}
	return cards
}

func (s GalleryState) Len() int {
	n := 0
	for _, e := range s.Entries {
		n += len(e.Cards)
	}
	return n
}

// OpenFunc is called when a card image is clicked.
type OpenFunc func(card Card, event model.Event)

type Renderer struct {
	builder *CardBuilder
}

func NewRenderer(builder *CardBuilder) *Renderer {
	return &Renderer{builder: builder}
}

// Render projects events onto cards, keeping the order of events and
// of snapshots inside each event.
func (r *Renderer) Render(events []model.Event) GalleryState {
	state := GalleryState{Entries: make([]Entry, 0, len(events))}
	for _, ev := range events {
		ev = ev.Clone()
		state.Entries = append(state.Entries, Entry{Event: ev, Cards: r.builder.Build(ev)})
	}
	return state
}

// Mount clears container and rebuilds it from state:
//
//	div.image-wrapper > img + div.icons > i.objectIcon
func (r *Renderer) Mount(container *dom.Element, state GalleryState, open OpenFunc) {
	container.Clear()
	for _, entry := range state.Entries {
		for _, card := range entry.Cards {
			container.AppendChild(cardNode(card, entry.Event, open))
		}
	}
}

func cardNode(card Card, event model.Event, open OpenFunc) *dom.Element {
	wrapper := dom.NewElement("div").AddClass("image-wrapper")

	img := dom.NewElement("img").
		SetAttr("src", card.ImageURL).
		SetAttr("data-event", card.EventID).
		SetStyle("box-shadow", "0 0 6px 2px "+card.Color.String())
	img.OnClick(func(*dom.Event) {
		if open != nil {
			open(card, event)
		}
	})
	wrapper.AppendChild(img)

	icons := dom.NewElement("div").AddClass("icons")
	for _, icon := range card.Icons {
		i := dom.NewElement("i").AddClass(strings.Fields(icon)...)
		icons.AppendChild(i.AddClass("objectIcon"))
	}
	wrapper.AppendChild(icons)
	return wrapper
}
