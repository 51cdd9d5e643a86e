package dto

import "eventgallery/internal/gallery"

// Browser actions sent over the websocket.
const (
	ActionInput      = "input"
	ActionSubmit     = "submit"
	ActionClick      = "click"
	ActionTimeUpdate = "timeupdate"
	ActionPlay       = "play"
	ActionPause      = "pause"
)

// ViewAction is one user interaction forwarded by the page.
type ViewAction struct {
	Type     string  `json:"type"`
	Prompt   string  `json:"prompt,omitempty"`
	Target   string  `json:"target,omitempty"`
	Position float64 `json:"position,omitempty"`
	Paused   bool    `json:"paused,omitempty"`
}

type ModalView struct {
	Open     bool    `json:"open"`
	Src      string  `json:"src"`
	Poster   string  `json:"poster"`
	Paused   bool    `json:"paused"`
	Position float64 `json:"position"`
	Reset    uint64  `json:"reset"`
}

// ViewUpdate carries the regions the page has to replace. Absent regions
// are unchanged.
type ViewUpdate struct {
	Session string     `json:"session,omitempty"`
	Gallery *string    `json:"gallery,omitempty"`
	Info    *string    `json:"info,omitempty"`
	Modal   *ModalView `json:"modal,omitempty"`
	Notice  *string    `json:"notice,omitempty"`
}

func NewViewUpdate(v gallery.View) ViewUpdate {
	u := ViewUpdate{
		Gallery: v.Gallery,
		Info:    v.Info,
		Notice:  v.Notice,
	}
	if v.Modal != nil {
		u.Modal = &ModalView{
			Open:     v.Modal.Open,
			Src:      v.Modal.Src,
			Poster:   v.Modal.Poster,
			Paused:   v.Modal.Paused,
			Position: v.Modal.Position,
			Reset:    v.Modal.Reset,
		}
	}
	return u
}
