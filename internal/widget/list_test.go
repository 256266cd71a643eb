package widget

import (
	"strings"
	"testing"

	"github.com/bookindex/autocomplete/internal/suggest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []suggest.Suggestion {
	return []suggest.Suggestion{
		{Category: "tag", Term: "one", Query: "one"},
		{Category: "tag", Term: "two", Query: "two"},
		{Category: "tag", Term: "three", Query: "three"},
	}
}

func TestSuggestionListReplaceAndClear(t *testing.T) {
	l := NewSuggestionList()
	assert.Equal(t, -1, l.Selected())
	assert.False(t, l.IsVisible())

	l.Replace(sampleItems(), "t")
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 0, l.Selected())
	assert.Equal(t, "t", l.Fragment())

	current, ok := l.Current()
	require.True(t, ok)
	assert.Equal(t, "one", current.Term)

	l.Replace(nil, "x")
	assert.Equal(t, -1, l.Selected())
	_, ok = l.Current()
	assert.False(t, ok)

	l.Replace(sampleItems(), "t")
	l.Clear()
	assert.False(t, l.IsVisible())
	assert.Equal(t, "", l.Fragment())
}

func TestSuggestionListNavigationWraps(t *testing.T) {
	l := NewSuggestionList()
	l.Next()
	l.Previous()
	assert.Equal(t, -1, l.Selected())

	l.Replace(sampleItems(), "")
	l.Previous()
	assert.Equal(t, 2, l.Selected())
	l.Next()
	assert.Equal(t, 0, l.Selected())
	l.Next()
	assert.Equal(t, 1, l.Selected())
}

func TestWindowKeepsSelectionVisible(t *testing.T) {
	l := NewSuggestionList()
	l.Replace(sampleItems(), "")

	for _, maxVisible := range []int{1, 2, 3} {
		for i := 0; i < l.Len(); i++ {
			start, end := l.Window(maxVisible)
			assert.GreaterOrEqual(t, l.Selected(), start, "maxVisible=%d", maxVisible)
			assert.Less(t, l.Selected(), end, "maxVisible=%d", maxVisible)
			l.Next()
		}
	}
}

func TestCalculateVisibleWindow(t *testing.T) {
	tests := []struct {
		name                 string
		selected, total, max int
		start, end           int
	}{
		{"fits", 0, 3, 5, 0, 3},
		{"no limit", 2, 10, 0, 0, 10},
		{"top", 0, 10, 4, 0, 4},
		{"middle", 5, 10, 4, 4, 8},
		{"bottom", 9, 10, 4, 6, 10},
		{"no selection", -1, 10, 4, 0, 4},
		{"single row top", 0, 3, 1, 0, 1},
		{"single row middle", 1, 3, 1, 1, 2},
		{"single row bottom", 2, 3, 1, 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := calculateVisibleWindow(tt.selected, tt.total, tt.max)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestRenderRow(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())
	s := suggest.Suggestion{Category: "city", Term: "Paris", Query: "paris"}

	plain := ansi.Strip(r.RenderRow(s, "pa", false))
	assert.Equal(t, "  city: Paris", plain)

	selected := ansi.Strip(r.RenderRow(s, "", true))
	assert.Equal(t, "> city: Paris", selected)
}

func TestRenderRowTruncates(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())
	r.SetWidth(12)

	row := r.RenderRow(suggest.Suggestion{Category: "character", Term: "Someone Long", Query: "x"}, "", false)

	assert.LessOrEqual(t, ansi.StringWidth(row), 12)
	assert.True(t, strings.HasSuffix(ansi.Strip(row), "…"))
}

func TestRenderListEmpty(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())
	assert.Equal(t, "", r.RenderList(NewSuggestionList(), 4))
}

func TestRendererSetWidth(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())
	assert.Equal(t, 80, r.Width())

	r.SetWidth(120)
	assert.Equal(t, 120, r.Width())

	r.SetWidth(0)
	r.SetWidth(-3)
	assert.Equal(t, 120, r.Width())
}

func TestKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, ActionSelectNext, km.Lookup(tea.KeyMsg{Type: tea.KeyDown}))
	assert.Equal(t, ActionSelectPrevious, km.Lookup(tea.KeyMsg{Type: tea.KeyCtrlP}))
	assert.Equal(t, ActionAccept, km.Lookup(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, ActionDismiss, km.Lookup(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, ActionNone, km.Lookup(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))

	km.SetBinding(KeyBinding{Keys: []string{"tab"}, Action: ActionAccept})
	assert.Equal(t, ActionAccept, km.Lookup(tea.KeyMsg{Type: tea.KeyTab}))
	assert.Equal(t, ActionNone, km.Lookup(tea.KeyMsg{Type: tea.KeyEnter}))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "Accept", ActionAccept.String())
	assert.Equal(t, "Unknown", Action(99).String())
}
