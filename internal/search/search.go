// Package search is the interactive search screen: a column of
// autocompleting fields that submit as a single query string.
package search

import (
	"fmt"
	"strings"

	"github.com/bookindex/autocomplete/internal/autocomplete"
	"github.com/bookindex/autocomplete/internal/form"
	"github.com/bookindex/autocomplete/internal/suggest"
	"github.com/bookindex/autocomplete/internal/widget"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Field describes one input on the screen.
type Field struct {
	// Name is the form control name sent on submit.
	Name string
	// Label is shown before the prompt.
	Label string
	// Placeholder is shown while the field is empty.
	Placeholder string
}

// DefaultFields are the fields of the book search form.
var DefaultFields = []Field{
	{Name: "title", Label: "Title", Placeholder: "words in the title"},
	{Name: "include_tags", Label: "Tags", Placeholder: "tags, space separated"},
	{Name: "include_characters", Label: "Characters", Placeholder: "characters, space separated"},
}

// ResultType indicates how the screen ended.
type ResultType int

const (
	// ResultNone indicates the screen is still running.
	ResultNone ResultType = iota
	// ResultSubmit indicates the form was submitted.
	ResultSubmit
	// ResultInterrupt indicates the user aborted (Ctrl+C).
	ResultInterrupt
)

// Result contains the outcome of a search session.
type Result struct {
	Type ResultType
	// Form holds the submitted controls after empty ones were disabled.
	Form *form.Form
	// URL is the search URL for the submitted form.
	URL string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(widget.ColorGray)
)

const helpText = "tab: next field • ↑/↓: choose • enter: accept / search • esc: close list • ctrl+c: quit"

// Config holds configuration for creating a Model.
type Config struct {
	// Endpoint is the server base URL; submitted searches are relative to it.
	Endpoint string

	// Client fetches suggestions for every field.
	Client suggest.Client

	// Fields overrides DefaultFields.
	Fields []Field

	// Prompt is appended to each field label.
	Prompt string

	// MaxVisible is the number of suggestion rows per field.
	MaxVisible int

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Model is the Bubble Tea model for the search screen.
type Model struct {
	fields   []Field
	inputs   []widget.Model
	focus    int
	endpoint string
	result   Result
	logger   *zap.Logger
}

// New creates the screen. Each field gets its own controller so typing in
// one field never cancels another field's request.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	fields := cfg.Fields
	if len(fields) == 0 {
		fields = DefaultFields
	}

	labelWidth := lo.Max(lo.Map(fields, func(f Field, _ int) int {
		return len([]rune(f.Label))
	}))

	inputs := lo.Map(fields, func(f Field, _ int) widget.Model {
		return widget.New(widget.Config{
			Name:        f.Name,
			Prompt:      fmt.Sprintf("%-*s %s", labelWidth, f.Label, cfg.Prompt),
			Placeholder: f.Placeholder,
			Controller: autocomplete.New(autocomplete.Config{
				Client: cfg.Client,
				Logger: logger.Named(f.Name),
			}),
			MaxVisible: cfg.MaxVisible,
			Logger:     logger,
		})
	})

	m := Model{
		fields:   fields,
		inputs:   inputs,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		result:   Result{Type: ResultNone},
		logger:   logger,
	}
	m.inputs[0].Focus()
	m.layout()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKeyMsg(msg)
	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)
	default:
		m, cmd = m.broadcast(msg)
	}

	m.layout()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.result.Type != ResultNone {
		return ""
	}

	views := lo.Map(m.inputs, func(in widget.Model, _ int) string {
		return in.View()
	})

	return headerStyle.Render("Search") + "\n" +
		strings.Join(views, "\n") + "\n" +
		helpStyle.Render(helpText)
}

// Result returns the current result. Check Type != ResultNone to see if complete.
func (m Model) Result() Result {
	return m.result
}

// Focused returns the index of the focused field.
func (m Model) Focused() int {
	return m.focus
}

// Input returns the widget for field i (for testing).
func (m Model) Input(i int) widget.Model {
	return m.inputs[i]
}

// BuildForm copies the field values into a form and disables empty controls.
// Values are trimmed first, so a field holding only spaces is disabled and
// the trailing space left by an accepted suggestion is not submitted.
func (m Model) BuildForm() *form.Form {
	f := form.New(lo.Map(m.fields, func(f Field, _ int) string { return f.Name })...)
	for _, in := range m.inputs {
		f.Set(in.Name(), strings.TrimSpace(in.Value()))
	}
	form.DisableEmptyInputs(f)
	return f
}

// SearchURL returns the URL the form submits to.
func (m Model) SearchURL(f *form.Form) string {
	encoded := f.Encode()
	if encoded == "" {
		return m.endpoint + "/"
	}
	return m.endpoint + "/?" + encoded
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	focused := m.inputs[m.focus]

	switch msg.String() {
	case "ctrl+c":
		m.blurAll()
		m.result = Result{Type: ResultInterrupt}
		return m, tea.Quit

	case "tab", "shift+tab":
		if focused.List().IsVisible() {
			break
		}
		step := 1
		if msg.String() == "shift+tab" {
			step = -1
		}
		return m.focusField((m.focus + step + len(m.inputs)) % len(m.inputs))

	case "enter":
		if focused.List().IsVisible() {
			break
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = focused.Update(msg)
	return m, cmd
}

// handleMouse routes a click to the field drawn under it, focusing that
// field first.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	target := -1
	y := 1
	for i, in := range m.inputs {
		h := in.Height()
		if msg.Y >= y && msg.Y < y+h {
			target = i
			break
		}
		y += h
	}
	if target < 0 {
		return m, nil
	}

	var cmds []tea.Cmd
	if target != m.focus {
		var cmd tea.Cmd
		m, cmd = m.focusField(target)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.inputs[target], cmd = m.inputs[target].Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// broadcast forwards non-input messages to every field. Suggestion results,
// spinner ticks and cursor blinks carry the id of the widget they belong to.
func (m Model) broadcast(msg tea.Msg) (Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, len(m.inputs))
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) focusField(i int) (Model, tea.Cmd) {
	m.inputs[m.focus].Blur()
	m.focus = i
	cmd := m.inputs[m.focus].Focus()
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	m.blurAll()

	f := m.BuildForm()
	m.result = Result{
		Type: ResultSubmit,
		Form: f,
		URL:  m.SearchURL(f),
	}
	m.logger.Info("search submitted", zap.String("url", m.result.URL))

	return m, tea.Quit
}

func (m *Model) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// layout records the screen row of every field for mouse handling. Row 0
// is the header.
func (m *Model) layout() {
	y := 1
	for i := range m.inputs {
		m.inputs[i].SetOrigin(y)
		y += m.inputs[i].Height()
	}
}
