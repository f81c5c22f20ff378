package console

import (
	"slices"
	"strings"

	"github.com/ragar/ragarctl/internal/cli/types"
)

// Choice is one selectable autocomplete entry
type Choice struct {
	Value       string
	Name        string
	DisplayName string
}

// Label is the text shown for a choice
func (c Choice) Label() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	if c.Name != "" {
		return c.Name
	}
	return c.Value
}

func (c Choice) matches(search string) bool {
	return strings.Contains(strings.ToLower(c.Name), search) ||
		strings.Contains(strings.ToLower(c.DisplayName), search)
}

// filterChoices returns the choices whose name or display name contains search, case-insensitively
func filterChoices(choices []Choice, search string) []Choice {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return slices.Clone(choices)
	}
	var out []Choice
	for _, c := range choices {
		if c.matches(search) {
			out = append(out, c)
		}
	}
	return out
}

// Autocomplete is a single-select search field
type Autocomplete struct {
	choices []Choice
	search  string
	value   string
	visible bool
}

// NewAutocomplete creates a field over choices
func NewAutocomplete(choices []Choice) *Autocomplete {
	return &Autocomplete{choices: choices}
}

// SetChoices replaces the selectable entries
func (a *Autocomplete) SetChoices(choices []Choice) { a.choices = choices }

// SetSearch updates the search text. Non-empty text shows the suggestion list; empty text hides it.
func (a *Autocomplete) SetSearch(search string) {
	a.search = search
	a.visible = search != ""
}

func (a *Autocomplete) Search() string { return a.search }

// Show opens the suggestion list, e.g. when the field gains focus
func (a *Autocomplete) Show() { a.visible = true }

func (a *Autocomplete) Hide() { a.visible = false }

func (a *Autocomplete) Visible() bool { return a.visible }

// Suggestions returns the entries matching the current search
func (a *Autocomplete) Suggestions() []Choice {
	return filterChoices(a.choices, a.search)
}

// Select picks a value, clears the search and hides the list.
// It returns false if value is not among the choices.
func (a *Autocomplete) Select(value string) bool {
	if !slices.ContainsFunc(a.choices, func(c Choice) bool { return c.Value == value }) {
		return false
	}
	a.value = value
	a.search = ""
	a.visible = false
	return true
}

// SetValue sets the selection without validating it, for prefilling an edit form
func (a *Autocomplete) SetValue(value string) { a.value = value }

// Clear removes the selection
func (a *Autocomplete) Clear() { a.value = "" }

func (a *Autocomplete) Value() string { return a.value }

// Label returns the selected choice's label, or the raw value when it is not a known choice
func (a *Autocomplete) Label() string {
	return labelFor(a.choices, a.value)
}

func labelFor(choices []Choice, value string) string {
	for _, c := range choices {
		if c.Value == value {
			return c.Label()
		}
	}
	return value
}

// MultiAutocomplete is a multi-select search field. Selections keep insertion order and never repeat.
type MultiAutocomplete struct {
	choices []Choice
	search  string
	values  []string
	visible bool
}

func NewMultiAutocomplete(choices []Choice) *MultiAutocomplete {
	return &MultiAutocomplete{choices: choices}
}

func (m *MultiAutocomplete) SetChoices(choices []Choice) { m.choices = choices }

// SetSearch updates the search text. Non-empty text shows the suggestion list; empty text hides it.
func (m *MultiAutocomplete) SetSearch(search string) {
	m.search = search
	m.visible = search != ""
}

func (m *MultiAutocomplete) Search() string { return m.search }

func (m *MultiAutocomplete) Show() { m.visible = true }

func (m *MultiAutocomplete) Hide() { m.visible = false }

func (m *MultiAutocomplete) Visible() bool { return m.visible }

// Suggestions returns matching entries that are not already selected
func (m *MultiAutocomplete) Suggestions() []Choice {
	var out []Choice
	for _, c := range filterChoices(m.choices, m.search) {
		if !slices.Contains(m.values, c.Value) {
			out = append(out, c)
		}
	}
	return out
}

// Add selects value and clears the search, leaving the list open for further picks.
// It returns false for unknown or already selected values.
func (m *MultiAutocomplete) Add(value string) bool {
	if slices.Contains(m.values, value) {
		return false
	}
	if !slices.ContainsFunc(m.choices, func(c Choice) bool { return c.Value == value }) {
		return false
	}
	m.values = append(m.values, value)
	m.search = ""
	return true
}

// Remove deselects value
func (m *MultiAutocomplete) Remove(value string) bool {
	i := slices.Index(m.values, value)
	if i < 0 {
		return false
	}
	m.values = slices.Delete(m.values, i, i+1)
	return true
}

// SetValues replaces the selection, dropping duplicates
func (m *MultiAutocomplete) SetValues(values []string) {
	m.values = nil
	for _, v := range values {
		if !slices.Contains(m.values, v) {
			m.values = append(m.values, v)
		}
	}
}

// Values returns a copy of the selection
func (m *MultiAutocomplete) Values() []string {
	return slices.Clone(m.values)
}

// Labels returns the selected entries' labels in selection order
func (m *MultiAutocomplete) Labels() []string {
	out := make([]string, 0, len(m.values))
	for _, v := range m.values {
		out = append(out, labelFor(m.choices, v))
	}
	return out
}

// ProviderChoices converts providers of one type into choices
func ProviderChoices(providers []types.Provider, providerType types.ProviderType) []Choice {
	var out []Choice
	for _, p := range providers {
		if p.ProviderType != providerType {
			continue
		}
		out = append(out, Choice{Value: p.ID, Name: p.Slug, DisplayName: p.DisplayName})
	}
	return out
}

// TagChoices converts tags of one type into choices. A tag's value is its name.
func TagChoices(tags []types.GameTag, tagType types.TagType) []Choice {
	var out []Choice
	for _, t := range tags {
		if t.TagType != tagType {
			continue
		}
		out = append(out, Choice{Value: t.Name, Name: t.Name, DisplayName: t.DisplayName})
	}
	return out
}
