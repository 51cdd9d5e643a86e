package model

import "time"

// Event is one detected motion occurrence as returned by the query endpoint.
type Event struct {
	ID          string           `json:"ID"`
	MotionStart time.Time        `json:"MotionStart"`
	MotionEnd   *time.Time       `json:"MotionEnd,omitempty"`
	CameraName  string           `json:"CameraName"`
	VideoFile   string           `json:"VideoFile"`
	Snapshots   []string         `json:"Snapshots"`
	Objects     []DetectedObject `json:"Objects"`
}

// DetectedObject is a single classified object inside an event.
// Only Class is displayed; the geometry is carried through untouched.
type DetectedObject struct {
	Class      string  `json:"Class"`
	Confidence float64 `json:"Confidence"`
	BBox       *BBox   `json:"BBox,omitempty"`
	Center     *Coords `json:"Center,omitempty"`
	Area       int     `json:"Area,omitempty"`
	LastMoved  string  `json:"LastMoved,omitempty"`
}

type BBox struct {
	Min Coords `json:"Min"`
	Max Coords `json:"Max"`
}

type Coords struct {
	X int `json:"X"`
	Y int `json:"Y"`
}

// Clone returns a deep copy so callers can hand events to closures safely.
func (e Event) Clone() Event {
	c := e
	if e.MotionEnd != nil {
		end := *e.MotionEnd
		c.MotionEnd = &end
	}
	if e.Snapshots != nil {
		c.Snapshots = append([]string(nil), e.Snapshots...)
	}
	if e.Objects != nil {
		c.Objects = make([]DetectedObject, len(e.Objects))
		for i, o := range e.Objects {
			c.Objects[i] = o
			if o.BBox != nil {
				b := *o.BBox
				c.Objects[i].BBox = &b
			}
			if o.Center != nil {
				p := *o.Center
				c.Objects[i].Center = &p
			}
		}
	}
	return c
}
