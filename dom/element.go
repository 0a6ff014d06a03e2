package dom

import (
	"fmt"
	"slices"
	"strings"
)

type styleValue struct {
	value     string
	important bool
}

// Element is a node of a Document.
type Element struct {
	doc      *Document
	tag      string
	attrs    map[string]string
	classes  []string
	style    map[string]styleValue
	parent   *Element
	children []*Element
}

// Tag returns the lower-cased tag name.
func (e *Element) Tag() string {
	return e.tag
}

// ID returns the id attribute.
func (e *Element) ID() string {
	return e.attrs["id"]
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// IsConnected reports whether the element is reachable from the document body.
func (e *Element) IsConnected() bool {
	return e.doc.body.Contains(e)
}

// AppendChild moves child to the end of e's child list.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child.Contains(e) {
		return
	}

	prev := child.detach()
	child.parent = e
	e.children = append(e.children, child)

	if prev != nil {
		e.doc.record(prev, nil, []*Element{child})
	}
	e.doc.record(e, []*Element{child}, nil)
}

// RemoveChild detaches child from e. It reports false if child was not a child of e.
func (e *Element) RemoveChild(child *Element) bool {
	if child == nil || child.parent != e {
		return false
	}

	child.detach()
	e.doc.record(e, nil, []*Element{child})
	return true
}

// detach unlinks e from its parent without recording a mutation and returns the former parent.
func (e *Element) detach() *Element {
	prev := e.parent
	if prev == nil {
		return nil
	}

	if i := slices.Index(prev.children, e); i >= 0 {
		prev.children = slices.Delete(prev.children, i, i+1)
	}
	e.parent = nil
	return prev
}

// ReplaceChildren detaches every child of e and appends the given ones, as a host re-render would.
func (e *Element) ReplaceChildren(children ...*Element) {
	removed := e.children
	for _, c := range removed {
		c.parent = nil
	}
	e.children = nil

	moved := make(map[*Element][]*Element)
	for _, c := range children {
		if c == nil || c.Contains(e) {
			continue
		}
		if prev := c.detach(); prev != nil {
			moved[prev] = append(moved[prev], c)
		}
		c.parent = e
		e.children = append(e.children, c)
	}

	for prev, lost := range moved {
		e.doc.record(prev, nil, lost)
	}
	e.doc.record(e, slices.Clone(e.children), removed)
}

// Remove detaches e from its parent.
func (e *Element) Remove() {
	if e.parent != nil {
		e.parent.RemoveChild(e)
	}
}

// SetAttribute sets an attribute value.
func (e *Element) SetAttribute(name, value string) {
	e.attrs[name] = value
}

// Attribute returns an attribute value.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttribute deletes an attribute.
func (e *Element) RemoveAttribute(name string) {
	delete(e.attrs, name)
}

// AddClass adds classes that are not present yet.
func (e *Element) AddClass(classes ...string) {
	for _, c := range classes {
		if !slices.Contains(e.classes, c) {
			e.classes = append(e.classes, c)
		}
	}
}

// RemoveClass removes classes.
func (e *Element) RemoveClass(classes ...string) {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool {
		return slices.Contains(classes, c)
	})
}

// HasClass reports whether the class is present.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// Classes returns the class list.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// SetStyle sets an inline style property. Important properties are not overridden by plain ones.
func (e *Element) SetStyle(property, value string, important bool) {
	if prev, ok := e.style[property]; ok && prev.important && !important {
		return
	}
	e.style[property] = styleValue{value: value, important: important}
}

// Style returns an inline style property value.
func (e *Element) Style(property string) string {
	return e.style[property].value
}

func (e *Element) walk(visit func(*Element) bool) bool {
	if !visit(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(visit) {
			return false
		}
	}
	return true
}

func (e *Element) String() string {
	var b strings.Builder
	b.WriteString("<" + e.tag)
	if id := e.ID(); id != "" {
		fmt.Fprintf(&b, " id=%q", id)
	}
	if len(e.classes) > 0 {
		fmt.Fprintf(&b, " class=%q", strings.Join(e.classes, " "))
	}
	b.WriteString(">")
	return b.String()
}
