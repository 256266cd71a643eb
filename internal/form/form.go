// Package form models a search form as an ordered set of named controls.
// It provides the gate that drops empty controls before submission so the
// encoded query string only carries fields the user actually filled in.
package form

import (
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Control is a single named form control.
type Control struct {
	Name     string
	Value    string
	Disabled bool
}

// Form is an ordered list of controls. Order is preserved on encoding.
type Form struct {
	controls []*Control
}

// New creates a form with one enabled, empty control per name.
func New(names ...string) *Form {
	return &Form{
		controls: lo.Map(names, func(name string, _ int) *Control {
			return &Control{Name: name}
		}),
	}
}

// Controls returns the form's controls in order.
func (f *Form) Controls() []*Control {
	return f.controls
}

// Control returns the first control with the given name, or nil.
func (f *Form) Control(name string) *Control {
	c, ok := lo.Find(f.controls, func(c *Control) bool {
		return c.Name == name
	})
	if !ok {
		return nil
	}
	return c
}

// Set assigns a value to the named control, adding the control if it does
// not exist yet.
func (f *Form) Set(name, value string) {
	if c := f.Control(name); c != nil {
		c.Value = value
		return
	}
	f.controls = append(f.controls, &Control{Name: name, Value: value})
}

// DisableEmptyInputs disables every control whose value is the empty string
// and enables all others.
func DisableEmptyInputs(f *Form) {
	for _, c := range f.controls {
		c.Disabled = c.Value == ""
	}
}

// Values returns the values of all enabled controls.
func (f *Form) Values() url.Values {
	values := url.Values{}
	for _, c := range f.controls {
		if c.Disabled {
			continue
		}
		values.Add(c.Name, c.Value)
	}
	return values
}

// Encode renders the enabled controls as a query string in control order.
// url.Values.Encode sorts by key, which would lose the form's layout.
func (f *Form) Encode() string {
	enabled := lo.Filter(f.controls, func(c *Control, _ int) bool {
		return !c.Disabled
	})
	pairs := lo.Map(enabled, func(c *Control, _ int) string {
		return url.QueryEscape(c.Name) + "=" + url.QueryEscape(c.Value)
	})
	return strings.Join(pairs, "&")
}
