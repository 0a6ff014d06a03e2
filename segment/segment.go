// Package segment models time-coded skippable segments and the per-video store that holds them.
package segment

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrMalformed is returned when a provider body is not a list of segment-shaped records.
	ErrMalformed = errors.New("malformed segment list")
	// ErrEmpty is returned when a provider answers with a well-formed but empty list.
	ErrEmpty = errors.New("empty segment list")
)

// Segment is an immutable interval of a video, in seconds, tagged with a category.
type Segment struct {
	Category Category
	Start    float64
	End      float64
}

// Duration returns the length of the segment in seconds.
func (s Segment) Duration() float64 {
	return s.End - s.Start
}

func (s Segment) String() string {
	return fmt.Sprintf("%s [%.2f, %.2f]", s.Category, s.Start, s.End)
}

// Record is a single element of the provider wire format.
type Record struct {
	Category string    `json:"category" jsonschema:"required,description=Segment category such as sponsor or intro"`
	Segment  []float64 `json:"segment" jsonschema:"required,minItems=2,maxItems=2,description=Start and end time in seconds"`
	UUID     string    `json:"UUID,omitempty" jsonschema:"description=Provider-side identifier, ignored"`
}

// Decode parses a provider response body.
// Every element must carry a category and a [start, end] pair with 0 <= start < end,
// otherwise the whole body is rejected.
func Decode(body []byte) ([]Segment, error) {
	var records []*Record
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// a JSON null decodes into a nil slice without error
	if records == nil {
		return nil, fmt.Errorf("%w: not a list", ErrMalformed)
	}

	if len(records) == 0 {
		return nil, ErrEmpty
	}

	segments := make([]Segment, 0, len(records))
	for i, r := range records {
		s, err := r.toSegment()
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrMalformed, i, err)
		}
		segments = append(segments, s)
	}

	return segments, nil
}

func (r *Record) toSegment() (Segment, error) {
	if r == nil {
		return Segment{}, errors.New("null element")
	}

	if r.Category == "" {
		return Segment{}, errors.New("missing category")
	}

	if len(r.Segment) != 2 {
		return Segment{}, fmt.Errorf("segment has %d bounds, want 2", len(r.Segment))
	}

	start, end := r.Segment[0], r.Segment[1]
	if math.IsNaN(start) || math.IsNaN(end) || start < 0 || start >= end {
		return Segment{}, fmt.Errorf("invalid interval [%v, %v]", start, end)
	}

	return Segment{Category: Category(r.Category), Start: start, End: end}, nil
}
