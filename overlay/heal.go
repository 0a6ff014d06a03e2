package overlay

import (
	"slices"

	"github.com/segskip/segskip/dom"
)

// attachment is the desired state "child is a child of parent".
// The host may tear it down at any time; reconcile restores it.
type attachment struct {
	child  *dom.Element
	parent *dom.Element
}

// reconcile re-appends child if any record shows it was removed and it is not back under parent.
// It reports whether the attachment had to be restored.
func (a attachment) reconcile(records []dom.MutationRecord) bool {
	if a.child == nil || a.parent == nil {
		return false
	}

	removed := slices.ContainsFunc(records, func(r dom.MutationRecord) bool {
		return slices.Contains(r.Removed, a.child)
	})
	if !removed || a.child.Parent() == a.parent {
		return false
	}

	a.parent.AppendChild(a.child)
	return true
}
