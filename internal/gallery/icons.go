package gallery

import "eventgallery/internal/model"

// UnknownIcon is shown for classes without a dedicated icon.
const UnknownIcon = "fas fa-question"

var objectIcons = map[string]string{
	"car":        "fas fa-car",
	"truck":      "fas fa-truck",
	"person":     "fas fa-user",
	"bicycle":    "fas fa-bicycle",
	"motorcycle": "fas fa-motorcycle",
	"bus":        "fas fa-bus",
	"cat":        "fas fa-cat",
	"dog":        "fas fa-dog",
	"boat":       "fas fa-ship",
}

// IconFor maps a detected object class to an icon class. Never fails.
func IconFor(class string) string {
	if icon, ok := objectIcons[class]; ok {
		return icon
	}
	return UnknownIcon
}

// UniqueClasses returns the object classes of an event without duplicates,
// in order of first appearance.
func UniqueClasses(objects []model.DetectedObject) []string {
	seen := make(map[string]bool, len(objects))
	classes := make([]string, 0, len(objects))
	for _, o := range objects {
		if seen[o.Class] {
			continue
		}
		seen[o.Class] = true
		classes = append(classes, o.Class)
	}
	return classes
}
