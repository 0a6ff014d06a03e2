// Package dom is a small in-memory element tree with child-list mutation observers.
//
// It stands in for the host page: the host owns and rebuilds parts of the tree,
// the overlay attaches one element to it and heals that attachment from observer
// notifications. A Document is not safe for concurrent use; mutate it from the
// goroutine its executor posts to.
package dom

import (
	"strings"

	"github.com/segskip/segskip/loop"
)

// Document is the root of an element tree.
type Document struct {
	body      *Element
	exec      loop.Executor
	observers []*Observer
	scheduled bool
}

// NewDocument creates an empty document. Observer notifications are delivered through exec.
func NewDocument(exec loop.Executor) *Document {
	d := &Document{exec: exec}
	d.body = d.CreateElement("body")
	return d
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement creates a detached element owned by the document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		doc:   d,
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
		style: make(map[string]styleValue),
	}
}

// QuerySelector returns the first connected element, in document order, matching sel.
// Supported selectors are a tag name, #id and .class.
func (d *Document) QuerySelector(sel string) *Element {
	match := compile(sel)
	if match == nil {
		return nil
	}

	var found *Element
	d.body.walk(func(e *Element) bool {
		if match(e) {
			found = e
			return false
		}
		return true
	})
	return found
}

func compile(sel string) func(*Element) bool {
	sel = strings.TrimSpace(sel)
	switch {
	case sel == "":
		return nil
	case strings.HasPrefix(sel, "#"):
		id := sel[1:]
		return func(e *Element) bool { return e.ID() == id }
	case strings.HasPrefix(sel, "."):
		class := sel[1:]
		return func(e *Element) bool { return e.HasClass(class) }
	default:
		tag := strings.ToLower(sel)
		return func(e *Element) bool { return e.tag == tag }
	}
}

// record queues a child-list mutation of parent for every interested observer.
func (d *Document) record(parent *Element, added, removed []*Element) {
	rec := MutationRecord{Target: parent, Added: added, Removed: removed}

	var queued bool
	for _, o := range d.observers {
		if o.interested(parent) {
			o.records = append(o.records, rec)
			queued = true
		}
	}

	if queued && !d.scheduled {
		d.scheduled = true
		d.exec.Post(d.deliver)
	}
}

// deliver hands queued records to their observers until none are left.
func (d *Document) deliver() {
	for {
		var pending []*Observer
		for _, o := range d.observers {
			if len(o.records) > 0 {
				pending = append(pending, o)
			}
		}

		if len(pending) == 0 {
			d.scheduled = false
			return
		}

		for _, o := range pending {
			records := o.takeRecords()
			if len(records) > 0 {
				o.callback(records)
			}
		}
	}
}

func (d *Document) detach(o *Observer) {
	for i, other := range d.observers {
		if other == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}
