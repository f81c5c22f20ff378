package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the console's global bindings
type keyMap struct {
	NextTab     key.Binding
	PrevTab     key.Binding
	Refresh     key.Binding
	GameFilter  key.Binding
	TypeFilter  key.Binding
	CatFilter   key.Binding
	StatFilter  key.Binding
	New         key.Binding
	Edit        key.Binding
	Diagnostics key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:     key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
		PrevTab:     key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
		Refresh:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		GameFilter:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "game filter")),
		TypeFilter:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "data type")),
		CatFilter:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		StatFilter:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
		New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:        key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Diagnostics: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "diagnostics")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Refresh, k.New, k.Edit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Refresh},
		{k.GameFilter, k.TypeFilter, k.CatFilter, k.StatFilter},
		{k.New, k.Edit, k.Diagnostics},
		{k.Help, k.Quit},
	}
}

// formKeyMap holds the bindings active while a form is open
type formKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Pick   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

func defaultFormKeyMap() formKeyMap {
	return formKeyMap{
		Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Pick:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "pick suggestion")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
	}
}

func (k formKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Pick, k.Submit, k.Cancel}
}

func (k formKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
