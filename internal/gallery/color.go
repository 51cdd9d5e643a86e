package gallery

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Color is an HSLA color used for the glow around snapshots of one event.
type Color struct {
	Label      string
	Hue        float64
	Saturation float64 // percent
	Lightness  float64 // percent
	Alpha      float64
}

// String renders the color as a CSS hsla() value.
func (c Color) String() string {
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)",
		formatFloat(c.Hue), formatFloat(c.Saturation), formatFloat(c.Lightness), formatFloat(c.Alpha))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// UnassignedColor is returned for events without an id.
var UnassignedColor = Color{Label: "Gray", Hue: 0, Saturation: 0, Lightness: 50, Alpha: 0.9}

// Strategy selects how colors are assigned to new events.
type Strategy int

const (
	// StrategyGrouped picks from three thematic palette groups and avoids
	// reusing either of the two most recently used groups.
	StrategyGrouped Strategy = iota
	// StrategyRandomHue picks a random hue with no anti-repetition.
	StrategyRandomHue
)

// ParseStrategy maps a configuration value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "grouped":
		return StrategyGrouped, nil
	case "random":
		return StrategyRandomHue, nil
	default:
		return StrategyGrouped, fmt.Errorf("unknown color strategy %q", s)
	}
}

const (
	groupRetries = 10
	noGroup      = -1
)

// defaultPalette holds warm, cool and purple/pink groups.
func defaultPalette() [][]Color {
	hsla := func(label string, hue, lightness float64) Color {
		return Color{Label: label, Hue: hue, Saturation: 100, Lightness: lightness, Alpha: 0.9}
	}
	return [][]Color{
		{
			hsla("Red", 0, 55),
			hsla("Light Red", 15, 55),
			hsla("Orange", 30, 55),
			hsla("Gold", 45, 55),
			hsla("Pale Gold", 54, 63),
			hsla("Yellow", 60, 55),
		},
		{
			hsla("Light Yellow", 75, 55),
			hsla("Lime", 90, 55),
			hsla("Light Green", 150, 55),
			hsla("Cyan", 180, 55),
		},
		{
			hsla("Purple", 270, 55),
			hsla("Lavender", 285, 55),
			hsla("Magenta", 300, 55),
			hsla("Pink", 330, 55),
		},
	}
}

// Rand is the random source used by the assigner.
type Rand interface {
	IntN(n int) int
}

// Assignment is the cached color choice for one event.
type Assignment struct {
	Color      Color
	GroupIndex int
	ColorIndex int
}

// ColorAssigner hands out a sticky color per event id.
// It is not safe for concurrent use; every gallery session owns its own.
type ColorAssigner struct {
	strategy Strategy
	rnd      Rand
	groups   [][]Color
	assigned map[string]Assignment
	// lastGroups is a FIFO of the two most recently chosen group indices.
	lastGroups [2]int
}

// NewColorAssigner creates an assigner; rnd may be nil for a time-seeded source.
// The palette groups are shuffled once here.
func NewColorAssigner(strategy Strategy, rnd Rand) *ColorAssigner {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	a := &ColorAssigner{
		strategy:   strategy,
		rnd:        rnd,
		groups:     defaultPalette(),
		assigned:   make(map[string]Assignment),
		lastGroups: [2]int{noGroup, noGroup},
	}
	for _, g := range a.groups {
		shuffle(g, rnd)
	}
	return a
}

// shuffle is an in-place Fisher–Yates shuffle.
func shuffle(colors []Color, rnd Rand) {
	for i := len(colors) - 1; i > 0; i-- {
		j := rnd.IntN(i + 1)
		colors[i], colors[j] = colors[j], colors[i]
	}
}

// ColorFor returns the event's color, assigning one on first use.
func (a *ColorAssigner) ColorFor(eventID string) Color {
	return a.Assign(eventID).Color
}

// Assign returns the cached assignment for eventID or creates it.
// Blank ids get UnassignedColor and are neither cached nor counted.
func (a *ColorAssigner) Assign(eventID string) Assignment {
	if strings.TrimSpace(eventID) == "" {
		return Assignment{Color: UnassignedColor, GroupIndex: noGroup, ColorIndex: noGroup}
	}
	if existing, ok := a.assigned[eventID]; ok {
		return existing
	}

	var as Assignment
	switch a.strategy {
	case StrategyRandomHue:
		as = Assignment{
			Color: Color{
				Hue:        float64(a.rnd.IntN(360)),
				Saturation: 100,
				Lightness:  50,
				Alpha:      0.7,
			},
			GroupIndex: noGroup,
			ColorIndex: noGroup,
		}
	default:
		group := a.nextGroup()
		colors := a.groups[group]
		idx := a.rnd.IntN(len(colors))
		as = Assignment{Color: colors[idx], GroupIndex: group, ColorIndex: idx}
	}

	a.assigned[eventID] = as
	return as
}

// nextGroup picks a group not in the recency window and records it.
func (a *ColorAssigner) nextGroup() int {
	n := len(a.groups)
	group := noGroup
	for tries := 1; ; tries++ {
		if tries > groupRetries {
			group = (a.lastGroups[0] + 1) % n
			break
		}
		group = a.rnd.IntN(n)
		if group != a.lastGroups[0] && group != a.lastGroups[1] {
			break
		}
	}
	a.lastGroups[0] = a.lastGroups[1]
	a.lastGroups[1] = group
	return group
}

// RecentGroups returns the recency window, oldest first.
func (a *ColorAssigner) RecentGroups() [2]int {
	return a.lastGroups
}

// Groups returns a copy of the shuffled palette.
func (a *ColorAssigner) Groups() [][]Color {
	out := make([][]Color, len(a.groups))
	for i, g := range a.groups {
		out[i] = append([]Color(nil), g...)
	}
	return out
}

// Len reports how many events have a cached color.
func (a *ColorAssigner) Len() int {
	return len(a.assigned)
}
