// Package suggest talks to the suggestion endpoint. The endpoint takes a
// single q query parameter and answers with a JSON array of
// [category, term, query] triples.
package suggest

import (
	"encoding/json"
	"fmt"
)

// Suggestion is one entry returned by the endpoint.
type Suggestion struct {
	// Category is a display-only label such as "tag" or "character".
	Category string

	// Term is the display-only text shown next to the category.
	Term string

	// Query replaces the active term when the suggestion is accepted.
	Query string
}

// Label returns the plain-text form of the suggestion as shown in lists.
func (s Suggestion) Label() string {
	return s.Category + ": " + s.Term
}

// UnmarshalJSON decodes a suggestion from a three element array.
func (s *Suggestion) UnmarshalJSON(data []byte) error {
	var fields []string
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("suggestion must be an array of strings: %w", err)
	}
	if len(fields) != 3 {
		return fmt.Errorf("suggestion must have 3 fields, got %d", len(fields))
	}

	s.Category = fields[0]
	s.Term = fields[1]
	s.Query = fields[2]
	return nil
}

// MarshalJSON encodes the suggestion in the endpoint's array form.
func (s Suggestion) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{s.Category, s.Term, s.Query})
}

// Decode parses an endpoint response body. A JSON null decodes to an empty
// list.
func Decode(data []byte) ([]Suggestion, error) {
	var suggestions []Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, nil
}
