package segment

import "github.com/samber/lo"

// Policy tells which categories may be auto-skipped.
// A category outside the eligible set is only marked on the overlay.
type Policy struct {
	eligible map[Category]struct{}
	manual   map[Category]struct{}
}

// NewPolicy builds a policy from the eligible and manual-confirmation category lists.
func NewPolicy(eligible, manual []Category) Policy {
	return Policy{
		eligible: lo.SliceToMap(eligible, func(c Category) (Category, struct{}) { return c, struct{}{} }),
		manual:   lo.SliceToMap(manual, func(c Category) (Category, struct{}) { return c, struct{}{} }),
	}
}

// Eligible reports whether the user enabled the category.
func (p Policy) Eligible(c Category) bool {
	_, ok := p.eligible[c]
	return ok
}

// Manual reports whether the category must never be skipped automatically.
func (p Policy) Manual(c Category) bool {
	_, ok := p.manual[c]
	return ok
}

// AutoSkip reports whether segments of the category are skipped without confirmation.
func (p Policy) AutoSkip(c Category) bool {
	return p.Eligible(c) && !p.Manual(c)
}

// Store holds the segments retrieved for the current video together with the policy applied to them.
type Store struct {
	segments []Segment
	policy   Policy
}

// NewStore copies the given segments into a new store.
func NewStore(segments []Segment, policy Policy) *Store {
	return &Store{
		segments: append([]Segment(nil), segments...),
		policy:   policy,
	}
}

// Segments returns a copy of the held segments, in the order the provider sent them.
func (s *Store) Segments() []Segment {
	return append([]Segment(nil), s.segments...)
}

// Policy returns the category policy of the store.
func (s *Store) Policy() Policy {
	return s.policy
}

// Len returns the number of held segments.
func (s *Store) Len() int {
	return len(s.segments)
}
