package gallery

import (
	"math/rand/v2"
	"sort"
	"testing"
)

// seqRand replays vals and returns 0 once they run out.
type seqRand struct {
	vals  []int
	calls int
}

func (r *seqRand) IntN(n int) int {
	r.calls++
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v % n
}

func TestColorFor_Stable(t *testing.T) {
	a := NewColorAssigner(StrategyGrouped, rand.New(rand.NewPCG(1, 2)))

	ids := []string{"e1", "e2", "e3", "e4", "e5"}
	first := make(map[string]Color)
	for _, id := range ids {
		first[id] = a.ColorFor(id)
	}
	for round := 0; round < 3; round++ {
		for _, id := range ids {
			if got := a.ColorFor(id); got != first[id] {
				t.Errorf("color for %s changed: %v -> %v", id, first[id], got)
			}
		}
	}
	if a.Len() != len(ids) {
		t.Errorf("expected %d cached colors, got %d", len(ids), a.Len())
	}
}

func TestAssign_BlankIDNotCached(t *testing.T) {
	a := NewColorAssigner(StrategyGrouped, rand.New(rand.NewPCG(3, 4)))

	for _, id := range []string{"", "   "} {
		as := a.Assign(id)
		if as.Color != UnassignedColor {
			t.Errorf("expected unassigned color for %q, got %v", id, as.Color)
		}
		if as.GroupIndex != -1 {
			t.Errorf("expected no group for %q, got %d", id, as.GroupIndex)
		}
	}
	if a.Len() != 0 {
		t.Errorf("blank ids must not be cached, got %d entries", a.Len())
	}
	if a.RecentGroups() != [2]int{-1, -1} {
		t.Errorf("blank ids must not touch the recency window, got %v", a.RecentGroups())
	}
}

func TestAssign_AvoidsRecentGroups(t *testing.T) {
	a := NewColorAssigner(StrategyGrouped, &seqRand{})
	// group pick, then color pick; rejected picks are retried
	a.rnd = &seqRand{vals: []int{
		0, 0, // e1: group 0
		0, 1, 0, // e2: 0 rejected, group 1
		1, 0, 2, 0, // e3: 1 and 0 rejected, group 2
	}}

	want := []int{0, 1, 2}
	for i, id := range []string{"e1", "e2", "e3"} {
		if got := a.Assign(id).GroupIndex; got != want[i] {
			t.Errorf("%s: expected group %d, got %d", id, want[i], got)
		}
	}
	if a.RecentGroups() != [2]int{1, 2} {
		t.Errorf("expected recency window [1 2], got %v", a.RecentGroups())
	}
}

func TestAssign_FallbackAfterRetries(t *testing.T) {
	a := NewColorAssigner(StrategyGrouped, &seqRand{})
	r := &seqRand{}
	a.rnd = r

	if g := a.Assign("e1").GroupIndex; g != 0 {
		t.Fatalf("expected first group 0, got %d", g)
	}
	r.calls = 0
	// every pick hits the window: (-1+1) mod 3
	if g := a.Assign("e2").GroupIndex; g != 0 {
		t.Errorf("expected fallback group 0, got %d", g)
	}
	if r.calls != groupRetries+1 {
		t.Errorf("expected %d random draws, got %d", groupRetries+1, r.calls)
	}
	// window is [0 0] now: (0+1) mod 3
	if g := a.Assign("e3").GroupIndex; g != 1 {
		t.Errorf("expected fallback group 1, got %d", g)
	}
	if a.RecentGroups() != [2]int{0, 1} {
		t.Errorf("expected recency window [0 1], got %v", a.RecentGroups())
	}
}

func TestAssign_ConsecutiveGroupsDiffer(t *testing.T) {
	a := NewColorAssigner(StrategyGrouped, rand.New(rand.NewPCG(7, 7)))
	// picks cycle through every group so the retry loop always succeeds
	vals := make([]int, 0, 300)
	for i := 0; i < 100; i++ {
		vals = append(vals, i%3, 0)
	}
	a.rnd = &seqRand{vals: vals}

	prev := -1
	for i := 0; i < 20; i++ {
		g := a.Assign(string(rune('a' + i))).GroupIndex
		if g == prev {
			t.Fatalf("assignment %d reused group %d", i, g)
		}
		prev = g
	}
}

func TestNewColorAssigner_ShufflesWithinGroups(t *testing.T) {
	a := NewColorAssigner(StrategyGrouped, rand.New(rand.NewPCG(42, 1)))
	labels := func(cs []Color) []string {
		out := make([]string, 0, len(cs))
		for _, c := range cs {
			out = append(out, c.String())
		}
		sort.Strings(out)
		return out
	}

	palette := defaultPalette()
	groups := a.Groups()
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	for i := range palette {
		got, want := labels(groups[i]), labels(palette[i])
		if len(got) != len(want) {
			t.Fatalf("group %d: expected %d colors, got %d", i, len(want), len(got))
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("group %d is not a permutation of the palette: %v vs %v", i, got, want)
				break
			}
		}
	}
}

func TestAssign_PaletteColor(t *testing.T) {
	a := NewColorAssigner(StrategyGrouped, rand.New(rand.NewPCG(5, 6)))
	as := a.Assign("e1")
	groups := a.Groups()
	if as.Color != groups[as.GroupIndex][as.ColorIndex] {
		t.Errorf("assignment does not point at its palette entry: %+v", as)
	}
}

func TestAssign_RandomHue(t *testing.T) {
	a := NewColorAssigner(StrategyRandomHue, &seqRand{})
	a.rnd = &seqRand{vals: []int{200}}

	c := a.ColorFor("e1")
	if got, want := c.String(), "hsla(200, 100%, 50%, 0.7)"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
	if a.ColorFor("e1") != c {
		t.Error("random hue must still be sticky")
	}
	if a.RecentGroups() != [2]int{-1, -1} {
		t.Error("random hue must not use the recency window")
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", StrategyGrouped, false},
		{"grouped", StrategyGrouped, false},
		{" Random ", StrategyRandomHue, false},
		{"rainbow", StrategyGrouped, true},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColor_String(t *testing.T) {
	c := Color{Hue: 54, Saturation: 100, Lightness: 63, Alpha: 0.9}
	if got := c.String(); got != "hsla(54, 100%, 63%, 0.9)" {
		t.Errorf("unexpected css value %s", got)
	}
}
