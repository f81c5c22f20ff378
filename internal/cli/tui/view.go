package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/console"
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true)
	headerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
)

var tabTitles = map[console.Tab]string{
	console.TabDatasets:  "Datasets",
	console.TabPipelines: "Pipelines",
	console.TabAnalytics: "Analytics",
	console.TabGames:     "Games",
	console.TabProviders: "Providers",
}

func cell(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func columnsFor(tab console.Tab) []table.Column {
	switch tab {
	case console.TabDatasets:
		return []table.Column{
			{Title: "Name", Width: 28}, {Title: "Game", Width: 14}, {Title: "Type", Width: 10},
			{Title: "Category", Width: 10}, {Title: "Version", Width: 8}, {Title: "Size", Width: 10},
			{Title: "Status", Width: 10}, {Title: "Uses", Width: 6}, {Title: "Created", Width: 12},
		}
	case console.TabPipelines:
		return []table.Column{
			{Title: "Name", Width: 28}, {Title: "Game", Width: 14}, {Title: "Type", Width: 14},
			{Title: "Status", Width: 10}, {Title: "Runs", Width: 6}, {Title: "Success", Width: 8},
			{Title: "Last run", Width: 12},
		}
	case console.TabGames:
		return []table.Column{
			{Title: "Slug", Width: 16}, {Title: "Name", Width: 24}, {Title: "Status", Width: 10},
			{Title: "Company", Width: 16}, {Title: "Platforms", Width: 24}, {Title: "Genre", Width: 12},
		}
	case console.TabProviders:
		return []table.Column{
			{Title: "Name", Width: 22}, {Title: "Slug", Width: 16}, {Title: "Type", Width: 12},
			{Title: "Auth", Width: 12}, {Title: "Active", Width: 6}, {Title: "Conns", Width: 5},
			{Title: "Req today", Width: 10},
		}
	}
	return nil
}

func rowsFor(tab console.Tab, st console.State) []table.Row {
	var rows []table.Row
	switch tab {
	case console.TabDatasets:
		for _, d := range st.Datasets {
			rows = append(rows, table.Row{
				cell(d.Name, 28), d.Game, string(d.DataType), string(d.Category), d.Version,
				console.FormatBytes(d.SizeBytes), statusText(string(d.Status)),
				strconv.FormatInt(d.UsageCount, 10), console.FormatDate(&d.CreatedAt),
			})
		}
	case console.TabPipelines:
		for _, p := range st.Pipelines {
			rows = append(rows, table.Row{
				cell(p.Name, 28), p.Game, p.PipelineType, statusText(string(p.Status)),
				strconv.FormatInt(p.RunCount, 10), console.SuccessRate(p.SuccessCount, p.RunCount),
				console.FormatDate(p.LastRun),
			})
		}
	case console.TabGames:
		names := providerNames(st.Providers)
		for _, g := range st.Games {
			company := "-"
			if g.GameCompanyProviderID != nil {
				company = lookup(names, *g.GameCompanyProviderID)
			}
			platforms := make([]string, 0, len(g.PlatformProviderIDs))
			for _, id := range g.PlatformProviderIDs {
				platforms = append(platforms, lookup(names, id))
			}
			genre := "-"
			if g.Genre != nil {
				genre = *g.Genre
			}
			rows = append(rows, table.Row{
				g.Slug, cell(g.Name, 24), statusText(string(g.Status)), cell(company, 16),
				cell(strings.Join(platforms, ", "), 24), genre,
			})
		}
	case console.TabProviders:
		conns := map[string][]types.ProviderConnection{}
		for _, c := range st.Connections {
			conns[c.ProviderID] = append(conns[c.ProviderID], c)
		}
		for _, p := range st.Providers {
			requests := 0
			for _, c := range conns[p.ID] {
				requests += c.RequestsToday
			}
			active := "no"
			if p.IsActive {
				active = "yes"
			}
			rows = append(rows, table.Row{
				cell(p.DisplayName, 22), p.Slug, string(p.ProviderType), string(p.ConnectionType),
				active, strconv.Itoa(len(conns[p.ID])), strconv.Itoa(requests),
			})
		}
	}
	return rows
}

func statusText(s string) string {
	if console.StatusColor(s) == console.ColorUnknown {
		return "unknown"
	}
	return s
}

func providerNames(providers []types.Provider) map[string]string {
	names := make(map[string]string, len(providers))
	for _, p := range providers {
		names[p.ID] = p.DisplayName
	}
	return names
}

func lookup(names map[string]string, id string) string {
	if n := names[id]; n != "" {
		return n
	}
	return id
}

// syncTable rebuilds the table from the controller's state for the active tab
func (m *consoleModel) syncTable() {
	tab := m.ctrl.Tab()
	st := m.ctrl.State()

	if tab == console.TabAnalytics {
		m.viewport.SetContent(ui.RenderAnalytics(st.Analytics))
		return
	}

	// rows must be cleared before the column count changes
	m.table.SetRows(nil)
	m.table.SetColumns(columnsFor(tab))
	rows := rowsFor(tab, st)
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// View renders the UI (Bubble Tea interface)
func (m consoleModel) View() string {
	parts := []string{m.headerView(), m.tabsView(), m.filtersView(), ""}

	switch {
	case m.form != nil:
		busy := ""
		if m.busy() {
			busy = m.spinner.View() + " saving..."
		}
		parts = append(parts, m.form.view(busy))
	case m.showDiagnostics:
		parts = append(parts, m.diagnosticsView())
	case m.ctrl.Tab() == console.TabAnalytics:
		parts = append(parts, m.viewport.View())
	default:
		parts = append(parts, m.table.View())
		if m.ctrl.Tab() == console.TabProviders {
			parts = append(parts, m.connectionsView())
		}
	}

	parts = append(parts, "", m.statusView())
	if m.form != nil {
		parts = append(parts, m.help.View(m.formKeys))
	} else {
		parts = append(parts, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m consoleModel) headerView() string {
	title := headerStyle.Render("ragarctl console")
	if m.opts.Server != "" {
		title += dimStyle.Render(" · " + m.opts.Server)
	}
	return title
}

func (m consoleModel) tabsView() string {
	active := m.ctrl.Tab()
	tabs := make([]string, 0, len(console.Tabs))
	for i, t := range console.Tabs {
		label := fmt.Sprintf("%d %s", i+1, tabTitles[t])
		if t == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m consoleModel) filtersView() string {
	if m.filtering {
		return m.gameFilter.View()
	}
	f := m.ctrl.Filters()
	switch m.ctrl.Tab() {
	case console.TabDatasets:
		return dimStyle.Render(fmt.Sprintf("game=%s  type=%s  category=%s  status=%s",
			f.Game, f.DataType, f.Category, f.Status))
	case console.TabPipelines:
		return dimStyle.Render("game=" + f.Game)
	}
	return ""
}

// connectionsView shows the selected provider's connections
func (m consoleModel) connectionsView() string {
	st := m.ctrl.State()
	i := m.table.Cursor()
	if i < 0 || i >= len(st.Providers) {
		return ""
	}
	p := st.Providers[i]
	var conns []types.ProviderConnection
	for _, c := range st.Connections {
		if c.ProviderID == p.ID {
			conns = append(conns, c)
		}
	}
	return "\n" + ui.RenderProviderTree([]types.Provider{p}, conns)
}

func (m consoleModel) diagnosticsView() string {
	diags := m.ctrl.Diagnostics()
	if len(diags) == 0 {
		return dimStyle.Render("No diagnostics recorded")
	}
	start := max(len(diags)-diagnosticsShown, 0)
	var b strings.Builder
	b.WriteString(headerStyle.Render("Diagnostics") + "\n")
	for _, d := range diags[start:] {
		b.WriteString(fmt.Sprintf("%s  %-11s  %s",
			dimStyle.Render(d.Time.Format("15:04:05")), d.Op, errorStyle.Render(d.Message)))
		if d.RequestID != "" {
			b.WriteString(dimStyle.Render("  [" + d.RequestID + "]"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m consoleModel) statusView() string {
	if m.ctrl.Loading() {
		return m.spinner.View() + dimStyle.Render(" loading "+string(m.ctrl.Tab())+"...")
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("✗ " + m.status)
	}
	return okStyle.Render("✓ " + m.status)
}
