// Diagnostics is the payload of /api/diagnostics.
package dto

import "eventgallery/internal/model"

type Diagnostics struct {
	Stats    *model.JournalStats `json:"stats"`
	Recent   []model.QueryRecord `json:"recent"`
	Buffered int                 `json:"buffered"`
	Dropped  int                 `json:"dropped"`
	Sessions int                 `json:"sessions"`
}
