package widget

import (
	"strings"

	"github.com/bookindex/autocomplete/internal/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"
)

// Colors shared by the widget and the screens built on it.
const (
	ColorYellow = lipgloss.Color("11")
	ColorRed    = lipgloss.Color("9")
	ColorGray   = lipgloss.Color("8")
)

// RenderConfig holds styling configuration for the widget.
type RenderConfig struct {
	// PromptStyle is the style applied to the field label and prompt.
	PromptStyle lipgloss.Style

	// CategoryStyle is applied to the "category:" prefix of each row.
	CategoryStyle lipgloss.Style

	// TermStyle is applied to the display term.
	TermStyle lipgloss.Style

	// MatchStyle is applied to the characters of the term that match the
	// active fragment.
	MatchStyle lipgloss.Style

	// SelectedStyle is applied to the whole highlighted row.
	SelectedStyle lipgloss.Style

	// StatusStyle is used for the in-flight line.
	StatusStyle lipgloss.Style

	// ErrorStyle is used when the last request failed.
	ErrorStyle lipgloss.Style
}

// DefaultRenderConfig returns a RenderConfig with default styles.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PromptStyle:   lipgloss.NewStyle().Foreground(ColorYellow),
		CategoryStyle: lipgloss.NewStyle().Bold(true),
		TermStyle:     lipgloss.NewStyle(),
		MatchStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Reverse(true),
		StatusStyle:   lipgloss.NewStyle().Foreground(ColorGray),
		ErrorStyle:    lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// Renderer renders suggestion rows.
type Renderer struct {
	config RenderConfig
	width  int
}

// NewRenderer creates a Renderer with the given configuration.
func NewRenderer(config RenderConfig) *Renderer {
	return &Renderer{
		config: config,
		width:  80,
	}
}

// SetWidth sets the terminal width. Non-positive widths are ignored.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Width returns the current terminal width.
func (r *Renderer) Width() int {
	return r.width
}

// Config returns the current render configuration.
func (r *Renderer) Config() RenderConfig {
	return r.config
}

// RenderRow renders one suggestion as "category: term". Characters of the
// term matching fragment are styled with MatchStyle. The row is cut to the
// renderer width.
func (r *Renderer) RenderRow(s suggest.Suggestion, fragment string, selected bool) string {
	marker := "  "
	if selected {
		marker = "> "
	}

	row := marker +
		r.config.CategoryStyle.Render(s.Category+":") +
		" " +
		r.renderTerm(s.Term, fragment)

	if selected {
		row = r.config.SelectedStyle.Render(row)
	}

	return truncate.StringWithTail(row, uint(r.width), "…")
}

// renderTerm highlights the fuzzy match of fragment inside term. Matching
// only decides styling; it never reorders or filters rows.
func (r *Renderer) renderTerm(term, fragment string) string {
	if fragment == "" {
		return r.config.TermStyle.Render(term)
	}

	matches := fuzzy.Find(fragment, []string{term})
	if len(matches) == 0 {
		return r.config.TermStyle.Render(term)
	}

	matched := make(map[int]bool, len(matches[0].MatchedIndexes))
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, ch := range term {
		if matched[i] {
			b.WriteString(r.config.MatchStyle.Render(string(ch)))
		} else {
			b.WriteString(r.config.TermStyle.Render(string(ch)))
		}
	}
	return b.String()
}

// RenderList renders the visible window of l, one row per line.
func (r *Renderer) RenderList(l *SuggestionList, maxVisible int) string {
	if !l.IsVisible() {
		return ""
	}

	start, end := l.Window(maxVisible)
	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		item, _ := l.At(i)
		rows = append(rows, r.RenderRow(item, l.Fragment(), i == l.Selected()))
	}
	return strings.Join(rows, "\n")
}
