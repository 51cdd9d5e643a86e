// Package dom is a small in-memory element tree that the gallery renders into.
// The browser only mirrors serialized regions of it; click events are
// dispatched here by element id and bubble towards the root.
package dom

import "strconv"

// Event is a click event travelling from Target up to the document body.
type Event struct {
	Target  *Element
	Current *Element
	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Handler reacts to a dispatched event.
type Handler func(e *Event)

// Element is a node of the tree.
type Element struct {
	ID      string
	Tag     string
	Text    string
	classes []string
	attrs   map[string]string
	style   map[string]string

	children []*Element
	parent   *Element
	doc      *Document
	handlers []Handler
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{
		Tag:   tag,
		attrs: make(map[string]string),
		style: make(map[string]string),
	}
}

// NewElementWithID creates a detached element with a fixed id.
func NewElementWithID(tag, id string) *Element {
	el := NewElement(tag)
	el.ID = id
	return el
}

func (e *Element) AddClass(classes ...string) *Element {
	for _, c := range classes {
		if c != "" && !e.HasClass(c) {
			e.classes = append(e.classes, c)
		}
	}
	return e
}

func (e *Element) HasClass(class string) bool {
	for _, c := range e.classes {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) Classes() []string {
	return append([]string(nil), e.classes...)
}

func (e *Element) SetAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

func (e *Element) SetStyle(property, value string) *Element {
	if value == "" {
		delete(e.style, property)
		return e
	}
	e.style[property] = value
	return e
}

func (e *Element) Style(property string) string {
	return e.style[property]
}

func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// OnClick registers a click handler on the element.
func (e *Element) OnClick(h Handler) {
	e.handlers = append(e.handlers, h)
}

func (e *Element) Parent() *Element {
	return e.parent
}

func (e *Element) Children() []*Element {
	return append([]*Element(nil), e.children...)
}

// AppendChild attaches child (and its subtree) as the last child of e.
func (e *Element) AppendChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.doc != nil {
		e.doc.register(child)
	}
	return child
}

// Clear removes every child of e, like assigning an empty innerHTML.
func (e *Element) Clear() {
	for _, c := range e.children {
		c.parent = nil
		if e.doc != nil {
			e.doc.unregister(c)
		}
	}
	e.children = nil
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			break
		}
	}
	if e.doc != nil {
		e.doc.unregister(child)
	}
	child.parent = nil
}

// Document indexes attached elements by id.
type Document struct {
	body *Element
	byID map[string]*Element
	next int
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{byID: make(map[string]*Element)}
	d.body = NewElementWithID("body", "body")
	d.register(d.body)
	return d
}

func (d *Document) Body() *Element {
	return d.body
}

// ElementByID returns the attached element with the given id or nil.
func (d *Document) ElementByID(id string) *Element {
	return d.byID[id]
}

// Click dispatches a click on the element with targetID.
// It reports false when no such element is attached.
func (d *Document) Click(targetID string) bool {
	target := d.byID[targetID]
	if target == nil {
		return false
	}
	ev := &Event{Target: target}
	for cur := target; cur != nil && !ev.stopped; cur = cur.parent {
		ev.Current = cur
		for _, h := range cur.handlers {
			h(ev)
		}
	}
	return true
}

// Len returns the number of attached elements.
func (d *Document) Len() int {
	return len(d.byID)
}

func (d *Document) register(el *Element) {
	el.doc = d
	if el.ID == "" {
		d.next++
		el.ID = "n" + strconv.Itoa(d.next)
	}
	d.byID[el.ID] = el
	for _, c := range el.children {
		d.register(c)
	}
}

func (d *Document) unregister(el *Element) {
	if d.byID[el.ID] == el {
		delete(d.byID, el.ID)
	}
	el.doc = nil
	for _, c := range el.children {
		d.unregister(c)
	}
}
