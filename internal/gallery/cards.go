package gallery

import "eventgallery/internal/model"

// Card is one gallery tile, built from a single snapshot of an event.
type Card struct {
	EventID  string
	Index    int // position of the snapshot inside the event
	Snapshot string
	ImageURL string
	VideoURL string
	Color    Color
	Icons    []string
}

// CardBuilder turns events into cards.
type CardBuilder struct {
	colors    *ColorAssigner
	imageBase string
	videoBase string
}

func NewCardBuilder(colors *ColorAssigner, imageBase, videoBase string) *CardBuilder {
	return &CardBuilder{colors: colors, imageBase: imageBase, videoBase: videoBase}
}

// Build returns one card per snapshot. The event is only read.
func (b *CardBuilder) Build(event model.Event) []Card {
	if len(event.Snapshots) == 0 {
		return nil
	}

	color := b.colors.ColorFor(event.ID)
	classes := UniqueClasses(event.Objects)
	videoURL := b.VideoURL(event.VideoFile)

	cards := make([]Card, 0, len(event.Snapshots))
	for i, snapshot := range event.Snapshots {
		icons := make([]string, 0, len(classes))
		for _, class := range classes {
			icons = append(icons, IconFor(class))
		}
		cards = append(cards, Card{
			EventID:  event.ID,
			Index:    i,
			Snapshot: snapshot,
			ImageURL: b.ImageURL(snapshot),
			VideoURL: videoURL,
			Color:    color,
			Icons:    icons,
		})
	}
	return cards
}

func (b *CardBuilder) ImageURL(snapshot string) string {
	return b.imageBase + snapshot
}

// VideoURL is empty for events without a recording.
func (b *CardBuilder) VideoURL(file string) string {
	if file == "" {
		return ""
	}
	return b.videoBase + file
}
