package gallery

import (
	"time"

	"eventgallery/internal/dom"
	"eventgallery/internal/model"
)

// TimestampLayout is DD/MM/YY HH:MM:SS.
const TimestampLayout = "02/01/06 15:04:05"

// FormatTimestamp formats t in loc (local time when loc is nil).
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(TimestampLayout)
}

// EventInfoPanel shows the metadata of the last activated event.
type EventInfoPanel struct {
	panel *dom.Element
	loc   *time.Location
}

func NewEventInfoPanel(panel *dom.Element, loc *time.Location) *EventInfoPanel {
	return &EventInfoPanel{panel: panel, loc: loc}
}

// Render replaces the panel content with the event's labels.
func (p *EventInfoPanel) Render(event model.Event) {
	p.panel.Clear()
	p.addLabel("ID: "+event.ID, "infoLabelEventID")
	p.addLabel("T: "+FormatTimestamp(event.MotionStart, p.loc), "infoLabelTime")
	p.addLabel("Cam: "+event.CameraName, "infoLabelCameraName")
	for _, class := range UniqueClasses(event.Objects) {
		p.addLabel(class, "")
	}
}

// Labels returns the text of every label, in order.
func (p *EventInfoPanel) Labels() []string {
	children := p.panel.Children()
	out := make([]string, 0, len(children))
	for _, c := range children {
		out = append(out, c.Text)
	}
	return out
}

func (p *EventInfoPanel) addLabel(text, class string) {
	label := dom.NewElement("label").SetText(text).AddClass("infoLabel", class)
	p.panel.AppendChild(label)
}
