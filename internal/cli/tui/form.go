package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ragar/ragarctl/internal/console"
	"github.com/ragar/ragarctl/internal/domain"
)

const (
	maxSuggestions = 6
	formLabelWidth = 22
	fileField      = "file"
)

type fieldKind int

const (
	fieldText fieldKind = iota
	fieldSingle
	fieldMulti
)

// formAction is what a key press asks of the surrounding model
type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

type formField struct {
	name   string
	label  string
	kind   fieldKind
	input  textinput.Model
	single *console.Autocomplete
	multi  *console.MultiAutocomplete
	cursor int
	err    error
}

// formModel renders a session's fields as text inputs. Every edit goes straight
// to the session through set; autocomplete fields drive their Autocomplete.
type formModel struct {
	title  string
	fields []formField
	focus  int
	set    func(field, value string) error
	err    error
}

func newForm(title string, set func(field, value string) error) *formModel {
	return &formModel{title: title, set: set}
}

func newInput(value string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 512
	in.Width = 48
	in.SetValue(value)
	return in
}

func (f *formModel) addText(name, value string) {
	f.fields = append(f.fields, formField{name: name, label: labelFor(name), kind: fieldText, input: newInput(value)})
}

func (f *formModel) addSingle(name string, ac *console.Autocomplete) {
	f.fields = append(f.fields, formField{name: name, label: labelFor(name), kind: fieldSingle, input: newInput(""), single: ac})
}

func (f *formModel) addMulti(name string, ac *console.MultiAutocomplete) {
	f.fields = append(f.fields, formField{name: name, label: labelFor(name), kind: fieldMulti, input: newInput(""), multi: ac})
}

func labelFor(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		switch w {
		case "url", "uris", "id":
			words[i] = strings.ToUpper(w)
		default:
			if w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
	}
	return strings.Join(words, " ")
}

// focusField moves focus to field i
func (f *formModel) focusField(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	i = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		f.fields[j].input.Blur()
		f.hide(&f.fields[j])
	}
	f.focus = i
	field := &f.fields[i]
	if field.single != nil {
		field.single.Show()
	}
	if field.multi != nil {
		field.multi.Show()
	}
	return field.input.Focus()
}

func (f *formModel) hide(field *formField) {
	if field.single != nil {
		field.single.Hide()
	}
	if field.multi != nil {
		field.multi.Hide()
	}
}

func (f *formModel) suggestions(field *formField) []console.Choice {
	switch field.kind {
	case fieldSingle:
		if field.single.Visible() {
			return field.single.Suggestions()
		}
	case fieldMulti:
		if field.multi.Visible() {
			return field.multi.Suggestions()
		}
	}
	return nil
}

// update handles a key press while the form is open
func (f *formModel) update(msg tea.KeyMsg, keys formKeyMap) (tea.Cmd, formAction) {
	if len(f.fields) == 0 {
		return nil, formCancel
	}
	field := &f.fields[f.focus]
	suggestions := f.suggestions(field)

	switch {
	case key.Matches(msg, keys.Cancel):
		return nil, formCancel
	case key.Matches(msg, keys.Submit):
		return nil, formSubmit
	case key.Matches(msg, keys.Pick):
		if len(suggestions) > 0 {
			f.pick(field, suggestions[min(field.cursor, len(suggestions)-1)])
			return nil, formNone
		}
		return f.focusField(f.focus + 1), formNone
	case msg.String() == "down" && len(suggestions) > 0:
		field.cursor = min(field.cursor+1, min(len(suggestions), maxSuggestions)-1)
		return nil, formNone
	case msg.String() == "up" && len(suggestions) > 0:
		field.cursor = max(field.cursor-1, 0)
		return nil, formNone
	case key.Matches(msg, keys.Next):
		return f.focusField(f.focus + 1), formNone
	case key.Matches(msg, keys.Prev):
		return f.focusField(f.focus - 1), formNone
	case msg.Type == tea.KeyBackspace && field.input.Value() == "" && field.kind != fieldText:
		f.removeLast(field)
		return nil, formNone
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	f.sync(field)
	return cmd, formNone
}

// sync pushes the input's text into the session
func (f *formModel) sync(field *formField) {
	value := field.input.Value()
	field.cursor = 0
	switch field.kind {
	case fieldText:
		field.err = f.set(field.name, value)
	case fieldSingle:
		field.single.SetSearch(value)
	case fieldMulti:
		field.multi.SetSearch(value)
	}
}

func (f *formModel) pick(field *formField, choice console.Choice) {
	switch field.kind {
	case fieldSingle:
		field.single.Select(choice.Value)
	case fieldMulti:
		field.multi.Add(choice.Value)
	}
	field.input.SetValue("")
	field.cursor = 0
}

func (f *formModel) removeLast(field *formField) {
	switch field.kind {
	case fieldSingle:
		field.single.Clear()
	case fieldMulti:
		if values := field.multi.Values(); len(values) > 0 {
			field.multi.Remove(values[len(values)-1])
		}
	}
}

// validate returns the first field-level error
func (f *formModel) validate() error {
	for _, field := range f.fields {
		if field.err != nil {
			return fmt.Errorf("%s: %s", field.label, domain.UserMessage(field.err))
		}
	}
	return nil
}

var (
	formBoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	formTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(formLabelWidth)
	focusLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true).Width(formLabelWidth)
	chipStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	suggestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(formLabelWidth + 2)
	suggestOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).PaddingLeft(formLabelWidth + 2)
)

func (f *formModel) view(busy string) string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render(f.title))
	b.WriteString("\n\n")

	for i := range f.fields {
		field := &f.fields[i]
		focused := i == f.focus

		label := labelStyle.Render(field.label)
		if focused {
			label = focusLabelStyle.Render(field.label)
		}
		b.WriteString(label + "  " + field.input.View())

		switch field.kind {
		case fieldSingle:
			if v := field.single.Value(); v != "" {
				b.WriteString(" " + chipStyle.Render("["+field.single.Label()+"]"))
			}
		case fieldMulti:
			for _, l := range field.multi.Labels() {
				b.WriteString(" " + chipStyle.Render("["+l+"]"))
			}
		}
		if field.err != nil {
			b.WriteString(" " + errorStyle.Render(domain.UserMessage(field.err)))
		}
		b.WriteString("\n")

		if focused {
			for j, s := range f.suggestions(field) {
				if j == maxSuggestions {
					break
				}
				style := suggestStyle
				if j == field.cursor {
					style = suggestOnStyle
				}
				b.WriteString(style.Render("› "+s.Label()) + "\n")
			}
		}
	}

	if busy != "" {
		b.WriteString("\n" + dimStyle.Render(busy))
	}
	if f.err != nil {
		b.WriteString("\n" + errorStyle.Render("✗ "+domain.UserMessage(f.err)))
	}
	return formBoxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func uploadForm(s *console.UploadSession) *formModel {
	f := newForm("Upload dataset", func(field, value string) error {
		if field == fileField {
			s.SelectFile(value)
			return nil
		}
		return s.Set(field, value)
	})
	f.addText(fileField, s.File())
	d := s.Draft()
	for _, name := range console.UploadFields {
		f.addText(name, d.Get(name))
	}
	return f
}

func gameForm(s *console.GameSession) *formModel {
	title := "New game"
	if g, ok := s.Editing(); ok {
		title = "Edit game " + g.Slug
	}
	f := newForm(title, s.Set)
	d := s.Draft()
	for _, name := range console.GameFields {
		f.addText(name, d.Get(name))
	}
	f.addSingle("company", s.Company)
	f.addMulti("platforms", s.Platforms)
	f.addSingle("genre", s.Genre)
	f.addMulti("categories", s.Categories)
	return f
}

func providerForm(s *console.ProviderSession) *formModel {
	title := "New provider"
	if p, ok := s.Editing(); ok {
		title = "Edit provider " + p.Slug
	}
	f := newForm(title, s.Set)
	d := s.Draft()
	for _, name := range console.ProviderFields {
		f.addText(name, d.Get(name))
	}
	return f
}
