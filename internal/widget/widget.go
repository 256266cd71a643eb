// Package widget provides a Bubble Tea text input with a suggestion list.
// Every edit asks an autocomplete.Controller for suggestions for the term
// under completion; accepting a suggestion replaces that term.
package widget

import (
	"strings"
	"sync/atomic"

	"github.com/bookindex/autocomplete/internal/autocomplete"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var lastID atomic.Int64

func nextID() int64 {
	return lastID.Add(1)
}

// Model is the Bubble Tea model for one autocompleting input.
type Model struct {
	id   int64
	name string

	input      textinput.Model
	controller *autocomplete.Controller
	keymap     *KeyMap

	list       *SuggestionList
	maxVisible int

	spinner  spinner.Model
	inFlight bool
	err      error

	renderer *Renderer

	// originY is the screen row of the input line, used to map mouse
	// clicks onto list rows.
	originY int

	logger *zap.Logger
}

// Config holds configuration for creating a new Model.
type Config struct {
	// Name identifies the field, e.g. the form control it fills.
	Name string

	// Prompt is rendered before the input text.
	Prompt string

	// Placeholder is shown while the input is empty.
	Placeholder string

	// Controller issues suggestion requests. Each Model needs its own.
	Controller *autocomplete.Controller

	// KeyMap provides key bindings. If nil, DefaultKeyMap is used.
	KeyMap *KeyMap

	// RenderConfig provides styling. If nil, DefaultRenderConfig is used.
	RenderConfig *RenderConfig

	// MaxVisible is the number of list rows shown at once. Defaults to 8.
	MaxVisible int

	// Width is the initial terminal width.
	Width int

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// New creates a new Model with the given configuration.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keymap := cfg.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap()
	}

	renderConfig := cfg.RenderConfig
	if renderConfig == nil {
		defaultConfig := DefaultRenderConfig()
		renderConfig = &defaultConfig
	}

	maxVisible := cfg.MaxVisible
	if maxVisible <= 0 {
		maxVisible = 8
	}

	width := cfg.Width
	if width <= 0 {
		width = 80
	}

	renderer := NewRenderer(*renderConfig)
	renderer.SetWidth(width)

	input := textinput.New()
	input.Prompt = cfg.Prompt
	input.PromptStyle = renderConfig.PromptStyle
	input.Placeholder = cfg.Placeholder

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = renderConfig.StatusStyle

	m := Model{
		id:         nextID(),
		name:       cfg.Name,
		input:      input,
		controller: cfg.Controller,
		keymap:     keymap,
		list:       NewSuggestionList(),
		maxVisible: maxVisible,
		spinner:    s,
		renderer:   renderer,
		logger:     logger.With(zap.String("field", cfg.Name)),
	}
	m.setWidth(width)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events and suggestion results.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWidth(msg.Width)
		return m, nil

	case resultMsg:
		return m.handleResult(msg)

	case spinner.TickMsg:
		if !m.inFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.input.Focused() {
			return m, nil
		}
		return m.handleKeyMsg(msg)
	}

	// Pasted text arrives as a textinput message, not a key.
	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		queryCmd := m.onValueChanged()
		return m, tea.Batch(cmd, queryCmd)
	}
	return m, cmd
}

// View renders the input line, the suggestion list, and a status line.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())

	if m.list.IsVisible() {
		b.WriteString("\n")
		b.WriteString(m.renderer.RenderList(m.list, m.maxVisible))
	}

	if status := m.statusLine(); status != "" {
		b.WriteString("\n")
		b.WriteString(status)
	}

	return b.String()
}

// Height returns the number of lines View renders.
func (m Model) Height() int {
	return strings.Count(m.View(), "\n") + 1
}

// Name returns the field name.
func (m Model) Name() string {
	return m.name
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue sets the input text without requesting suggestions.
func (m *Model) SetValue(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

// Focus focuses the input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes focus, closes the list, and cancels any pending request.
func (m *Model) Blur() {
	m.input.Blur()
	m.dismiss()
}

// Focused returns whether the input is focused.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// List returns the suggestion list (for testing and layout).
func (m Model) List() *SuggestionList {
	return m.list
}

// InFlight returns true while a request for the current value is pending.
func (m Model) InFlight() bool {
	return m.inFlight
}

// Err returns the error of the last failed request, if the list is showing
// that failure.
func (m Model) Err() error {
	return m.err
}

// SetOrigin tells the widget which screen row its input line is drawn on.
func (m *Model) SetOrigin(y int) {
	m.originY = y
}

// Accept completes the input with the suggestion at index i, clears the
// list, and focuses the input.
func (m Model) Accept(i int) (Model, tea.Cmd) {
	item, ok := m.list.At(i)
	if !ok {
		return m, nil
	}

	value := autocomplete.Complete(m.input.Value(), item.Query)
	m.logger.Debug("accepted suggestion",
		zap.String("category", item.Category),
		zap.String("query", item.Query),
		zap.String("value", value),
	)

	m.SetValue(value)
	m.dismiss()

	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) setWidth(width int) {
	m.renderer.SetWidth(width)
	inputWidth := width - len([]rune(m.input.Prompt)) - 1
	if inputWidth < 1 {
		inputWidth = 1
	}
	m.input.Width = inputWidth
}

// dismiss closes the list and supersedes any pending request so a late
// response cannot reopen it.
func (m *Model) dismiss() {
	m.list.Clear()
	m.inFlight = false
	m.err = nil
	if m.controller != nil {
		m.controller.Cancel()
	}
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	action := m.keymap.Lookup(msg)

	if m.list.IsVisible() {
		switch action {
		case ActionSelectPrevious:
			m.list.Previous()
			return m, nil
		case ActionSelectNext:
			m.list.Next()
			return m, nil
		case ActionAccept:
			return m.Accept(m.list.Selected())
		case ActionDismiss:
			m.dismiss()
			return m, nil
		}
	} else if action == ActionDismiss {
		m.dismiss()
		return m, nil
	}

	before := m.input.Value()

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		queryCmd := m.onValueChanged()
		return m, tea.Batch(cmd, queryCmd)
	}
	return m, cmd
}

// handleMouse accepts the suggestion under a left click.
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.list.IsVisible() {
		return m, nil
	}

	row := msg.Y - m.originY - 1
	start, end := m.list.Window(m.maxVisible)
	if row < 0 || start+row >= end {
		return m, nil
	}

	return m.Accept(start + row)
}

// onValueChanged supersedes the pending request with one for the new value.
func (m *Model) onValueChanged() tea.Cmd {
	if m.controller == nil {
		return nil
	}

	value := m.input.Value()
	resultCh := m.controller.Query(value)
	id := m.id

	wait := func() tea.Msg {
		return resultMsg{id: id, result: <-resultCh}
	}

	if !autocomplete.ShouldQuery(autocomplete.ActiveFragment(value)) {
		return wait
	}

	startSpinner := !m.inFlight
	m.inFlight = true
	if startSpinner {
		return tea.Batch(wait, m.spinner.Tick)
	}
	return wait
}

// handleResult applies a suggestion result if it belongs to this widget's
// most recent request.
func (m Model) handleResult(msg resultMsg) (Model, tea.Cmd) {
	if msg.id != m.id {
		return m, nil
	}

	result := msg.result
	if result.Kind == autocomplete.ResultCancelled || !m.controller.IsCurrent(result.StateID) {
		m.logger.Debug("discarding stale suggestions",
			zap.Int64("stateID", result.StateID),
			zap.Stringer("kind", result.Kind),
		)
		return m, nil
	}

	m.inFlight = false

	switch result.Kind {
	case autocomplete.ResultSuggestions:
		m.err = nil
		m.list.Replace(result.Suggestions, result.Fragment)
	case autocomplete.ResultRequestFailed:
		m.err = result.Err
		m.list.Clear()
	}

	return m, nil
}

func (m Model) statusLine() string {
	cfg := m.renderer.Config()
	switch {
	case m.inFlight:
		return m.spinner.View() + cfg.StatusStyle.Render(" searching")
	case m.err != nil:
		return cfg.ErrorStyle.Render("suggestions unavailable: " + m.err.Error())
	default:
		return ""
	}
}

// resultMsg carries a controller result back to the widget that asked.
type resultMsg struct {
	id     int64
	result autocomplete.Result
}
