package widget

import (
	"github.com/bookindex/autocomplete/internal/suggest"
)

// SuggestionList is the list shown under the input. It is rebuilt from
// scratch for every response.
type SuggestionList struct {
	items    []suggest.Suggestion
	selected int

	// fragment is the active term the items were fetched for.
	fragment string
}

// NewSuggestionList creates an empty list.
func NewSuggestionList() *SuggestionList {
	return &SuggestionList{selected: -1}
}

// Replace clears the list and fills it with items. The first item is
// highlighted when there is one.
func (l *SuggestionList) Replace(items []suggest.Suggestion, fragment string) {
	l.items = append([]suggest.Suggestion(nil), items...)
	l.fragment = fragment
	l.selected = -1
	if len(l.items) > 0 {
		l.selected = 0
	}
}

// Clear removes all items.
func (l *SuggestionList) Clear() {
	l.items = nil
	l.fragment = ""
	l.selected = -1
}

// Items returns the current items.
func (l *SuggestionList) Items() []suggest.Suggestion {
	return l.items
}

// Len returns the number of items.
func (l *SuggestionList) Len() int {
	return len(l.items)
}

// IsVisible returns true if there is anything to show.
func (l *SuggestionList) IsVisible() bool {
	return len(l.items) > 0
}

// Fragment returns the term the items were fetched for.
func (l *SuggestionList) Fragment() string {
	return l.fragment
}

// Selected returns the highlighted index, or -1.
func (l *SuggestionList) Selected() int {
	return l.selected
}

// Current returns the highlighted item.
func (l *SuggestionList) Current() (suggest.Suggestion, bool) {
	return l.At(l.selected)
}

// At returns the item at index i.
func (l *SuggestionList) At(i int) (suggest.Suggestion, bool) {
	if i < 0 || i >= len(l.items) {
		return suggest.Suggestion{}, false
	}
	return l.items[i], true
}

// Next moves the highlight down, wrapping to the first item.
func (l *SuggestionList) Next() {
	if len(l.items) == 0 {
		return
	}
	l.selected = (l.selected + 1) % len(l.items)
}

// Previous moves the highlight up, wrapping to the last item.
func (l *SuggestionList) Previous() {
	if len(l.items) == 0 {
		return
	}
	l.selected--
	if l.selected < 0 {
		l.selected = len(l.items) - 1
	}
}

// Window returns the [start, end) range of items visible when at most
// maxVisible rows fit, keeping the highlight in view.
func (l *SuggestionList) Window(maxVisible int) (start, end int) {
	return calculateVisibleWindow(l.selected, len(l.items), maxVisible)
}

// calculateVisibleWindow determines the start and end indices for a scrolling window.
func calculateVisibleWindow(selected, total, maxVisible int) (start, end int) {
	if maxVisible <= 0 || total <= maxVisible {
		return 0, total
	}
	if selected < 0 {
		selected = 0
	}

	// Keep one row of context above the selection when there is room for it
	start = selected
	if maxVisible > 1 {
		start = selected - 1
	}
	if start < 0 {
		start = 0
	}
	if start > total-maxVisible {
		start = total - maxVisible
	}

	return start, start + maxVisible
}
