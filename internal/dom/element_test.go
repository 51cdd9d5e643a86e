package dom

import (
	"strings"
	"testing"
)

func buildTree(t *testing.T) (*Document, *Element, *Element) {
	t.Helper()
	doc := NewDocument()
	modal := doc.Body().AppendChild(NewElementWithID("div", "myModal"))
	video := modal.AppendChild(NewElementWithID("video", "videoPlayer"))
	return doc, modal, video
}

func TestClick_BubblesWithTarget(t *testing.T) {
	doc, modal, video := buildTree(t)

	var seen []string
	modal.OnClick(func(e *Event) {
		seen = append(seen, "modal:"+e.Target.ID)
	})
	video.OnClick(func(e *Event) {
		seen = append(seen, "video:"+e.Target.ID)
	})

	if !doc.Click("videoPlayer") {
		t.Fatal("expected click to be dispatched")
	}
	want := []string{"video:videoPlayer", "modal:videoPlayer"}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, seen)
	}

	seen = nil
	doc.Click("myModal")
	if len(seen) != 1 || seen[0] != "modal:myModal" {
		t.Errorf("expected only the modal handler, got %v", seen)
	}
}

func TestClick_StopPropagation(t *testing.T) {
	doc, modal, video := buildTree(t)

	modalCalled := false
	modal.OnClick(func(e *Event) { modalCalled = true })
	video.OnClick(func(e *Event) { e.StopPropagation() })

	doc.Click("videoPlayer")
	if modalCalled {
		t.Error("propagation should have stopped at the video")
	}
}

func TestClick_UnknownTarget(t *testing.T) {
	doc := NewDocument()
	if doc.Click("nope") {
		t.Error("expected false for unknown target")
	}
}

func TestClear_UnregistersSubtree(t *testing.T) {
	doc := NewDocument()
	grid := doc.Body().AppendChild(NewElementWithID("div", "imageGrid"))
	wrapper := grid.AppendChild(NewElement("div"))
	img := wrapper.AppendChild(NewElement("img"))

	if img.ID == "" || doc.ElementByID(img.ID) == nil {
		t.Fatal("appended element should get an id and be indexed")
	}
	imgID := img.ID

	grid.Clear()

	if doc.ElementByID(imgID) != nil {
		t.Error("cleared element should not be reachable")
	}
	if len(grid.Children()) != 0 {
		t.Error("grid should have no children")
	}
	if doc.ElementByID("imageGrid") == nil {
		t.Error("grid itself must stay attached")
	}
}

func TestAutoIDs_NotReused(t *testing.T) {
	doc := NewDocument()
	grid := doc.Body().AppendChild(NewElementWithID("div", "imageGrid"))
	first := grid.AppendChild(NewElement("img")).ID
	grid.Clear()
	second := grid.AppendChild(NewElement("img")).ID
	if first == second {
		t.Errorf("expected fresh id after clear, got %s twice", first)
	}
}

func TestRender_EscapesAndOrders(t *testing.T) {
	el := NewElementWithID("div", "w")
	el.AddClass("image-wrapper")
	img := NewElementWithID("img", "i")
	img.SetAttr("src", `/images/a"b.jpg`)
	img.SetStyle("box-shadow", "0 0 6px 2px hsla(0, 100%, 55%, 0.9)")
	el.AppendChild(img)
	label := NewElement("label").SetText("<car>")
	el.AppendChild(label)

	var b strings.Builder
	if err := Render(&b, el); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	got := b.String()

	want := `<div id="w" class="image-wrapper"><img id="i" style="box-shadow: 0 0 6px 2px hsla(0, 100%, 55%, 0.9)" src="/images/a&#34;b.jpg"><label>&lt;car&gt;</label></div>`
	if got != want {
		t.Errorf("unexpected HTML:\n got: %s\nwant: %s", got, want)
	}

	if inner := InnerHTML(el); !strings.HasPrefix(inner, `<img id="i"`) {
		t.Errorf("InnerHTML should start with the first child, got %s", inner)
	}
}
