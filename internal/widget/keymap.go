package widget

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action represents a keyboard action handled by the widget itself. Keys
// that map to ActionNone are passed to the text input.
type Action int

const (
	// ActionNone represents no action (used when a key doesn't match any binding).
	ActionNone Action = iota

	ActionSelectPrevious // Move the highlight up (Up, Ctrl+P)
	ActionSelectNext     // Move the highlight down (Down, Ctrl+N)
	ActionAccept         // Complete the input with the highlighted suggestion (Enter)
	ActionDismiss        // Close the suggestion list (Escape)
)

// String returns the string representation of an Action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSelectPrevious:
		return "SelectPrevious"
	case ActionSelectNext:
		return "SelectNext"
	case ActionAccept:
		return "Accept"
	case ActionDismiss:
		return "Dismiss"
	default:
		return "Unknown"
	}
}

// KeyBinding maps key sequences to an action.
type KeyBinding struct {
	// Keys is the list of key sequences that trigger this binding.
	// Each string should be a valid tea.KeyMsg string representation.
	Keys []string
	// Action is the action to perform when this binding is triggered.
	Action Action
}

// KeyMap holds the widget's key bindings.
type KeyMap struct {
	bindings []KeyBinding
	lookup   map[string]Action
}

// NewKeyMap creates a new KeyMap with the given bindings.
func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{bindings: bindings}
	km.rebuildLookup()
	return km
}

func (km *KeyMap) rebuildLookup() {
	km.lookup = make(map[string]Action)
	for _, b := range km.bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]KeyBinding{
		{Keys: []string{"up", "ctrl+p"}, Action: ActionSelectPrevious},
		{Keys: []string{"down", "ctrl+n"}, Action: ActionSelectNext},
		{Keys: []string{"enter"}, Action: ActionAccept},
		{Keys: []string{"esc"}, Action: ActionDismiss},
	})
}

// Lookup finds the action for the given key message.
// Returns ActionNone if no binding matches.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	if action, ok := km.lookup[msg.String()]; ok {
		return action
	}
	return ActionNone
}

// SetBinding adds or replaces the binding for binding.Action.
func (km *KeyMap) SetBinding(binding KeyBinding) {
	for i, b := range km.bindings {
		if b.Action == binding.Action {
			km.bindings[i] = binding
			km.rebuildLookup()
			return
		}
	}
	km.bindings = append(km.bindings, binding)
	km.rebuildLookup()
}
