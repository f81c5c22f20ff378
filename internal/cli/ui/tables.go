package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/console"
)

const maxCellWidth = 40

// Truncate shortens s to width terminal cells
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Styles.Border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.Header
			}
			return Styles.Cell
		})
}

func empty(what string) string {
	return Styles.Muted.Render("No " + what + " found")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func derefOr(p *string) string {
	if p == nil {
		return "-"
	}
	return orDash(*p)
}

// RenderDatasets renders datasets as a table
func RenderDatasets(datasets []types.Dataset) string {
	if len(datasets) == 0 {
		return empty("datasets")
	}
	t := newTable("NAME", "GAME", "TYPE", "CATEGORY", "VERSION", "SIZE", "STATUS", "USES", "CREATED")
	for _, d := range datasets {
		t.Row(
			Truncate(d.Name, maxCellWidth),
			d.Game,
			string(d.DataType),
			string(d.Category),
			d.Version,
			console.FormatBytes(d.SizeBytes),
			Status(string(d.Status)),
			strconv.FormatInt(d.UsageCount, 10),
			console.FormatDate(&d.CreatedAt),
		)
	}
	return t.Render()
}

// RenderPipelines renders pipelines as a table
func RenderPipelines(pipelines []types.Pipeline) string {
	if len(pipelines) == 0 {
		return empty("pipelines")
	}
	t := newTable("NAME", "GAME", "TYPE", "STATUS", "RUNS", "SUCCESS", "LAST RUN")
	for _, p := range pipelines {
		t.Row(
			Truncate(p.Name, maxCellWidth),
			p.Game,
			p.PipelineType,
			Status(string(p.Status)),
			strconv.FormatInt(p.RunCount, 10),
			console.SuccessRate(p.SuccessCount, p.RunCount),
			console.FormatDate(p.LastRun),
		)
	}
	return t.Render()
}

// RenderGames renders games as a table. Provider IDs are shown by display name when known.
func RenderGames(games []types.Game, providers []types.Provider) string {
	if len(games) == 0 {
		return empty("games")
	}
	names := make(map[string]string, len(providers))
	for _, p := range providers {
		names[p.ID] = p.DisplayName
	}
	label := func(id string) string {
		if n, ok := names[id]; ok && n != "" {
			return n
		}
		return id
	}

	t := newTable("SLUG", "NAME", "STATUS", "COMPANY", "PLATFORMS", "GENRE", "CATEGORIES")
	for _, g := range games {
		company := "-"
		if g.GameCompanyProviderID != nil {
			company = label(*g.GameCompanyProviderID)
		}
		platforms := make([]string, 0, len(g.PlatformProviderIDs))
		for _, id := range g.PlatformProviderIDs {
			platforms = append(platforms, label(id))
		}
		t.Row(
			g.Slug,
			Truncate(g.Name, maxCellWidth),
			Status(string(g.Status)),
			company,
			Truncate(orDash(strings.Join(platforms, ", ")), maxCellWidth),
			derefOr(g.Genre),
			Truncate(orDash(strings.Join(g.Categories, ", ")), maxCellWidth),
		)
	}
	return t.Render()
}

// RenderProviders renders providers as a table
func RenderProviders(providers []types.Provider) string {
	if len(providers) == 0 {
		return empty("providers")
	}
	t := newTable("SLUG", "NAME", "TYPE", "CONNECTION", "ACTIVE", "WEBSITE")
	for _, p := range providers {
		t.Row(
			p.Slug,
			Truncate(p.DisplayName, maxCellWidth),
			string(p.ProviderType),
			string(p.ConnectionType),
			activeLabel(p.IsActive),
			derefOr(p.WebsiteURL),
		)
	}
	return t.Render()
}

func activeLabel(active bool) string {
	if active {
		return StatusStyle("active").Render("yes")
	}
	return Styles.Muted.Render("no")
}

// RenderAnalytics renders the analytics summary
func RenderAnalytics(a *types.Analytics) string {
	if a == nil {
		return empty("analytics")
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Datasets") + "\n")
	b.WriteString(kv("Total", strconv.Itoa(a.Datasets.Total)) + "\n")
	b.WriteString(countTable("GAME", a.Datasets.ByGame) + "\n")
	b.WriteString(countTable("TYPE", a.Datasets.ByType) + "\n")
	b.WriteString(countTable("CATEGORY", a.Datasets.ByCategory) + "\n\n")

	b.WriteString(Styles.Title.Render("Pipelines") + "\n")
	b.WriteString(kv("Total", strconv.Itoa(a.Pipelines.Total)) + "\n")
	b.WriteString(countTable("STATUS", a.Pipelines.ByStatus) + "\n\n")

	b.WriteString(Styles.Title.Render("Storage") + "\n")
	b.WriteString(kv("Total size", console.FormatBytes(a.Storage.TotalBytes)) + "\n")
	b.WriteString(kv("Datasets", strconv.Itoa(a.Storage.DatasetCount)) + "\n")

	if len(a.RecentActivity) > 0 {
		b.WriteString("\n" + Styles.Title.Render("Recent activity") + "\n")
		t := newTable("WHEN", "ACTOR", "ACTION", "RESOURCE")
		for _, e := range a.RecentActivity {
			t.Row(
				console.FormatDate(&e.Timestamp),
				e.Actor,
				e.Action,
				Truncate(fmt.Sprintf("%s %s", e.ResourceType, e.ResourceName), maxCellWidth),
			)
		}
		b.WriteString(t.Render())
	}
	return strings.TrimRight(b.String(), "\n")
}

func kv(key, value string) string {
	return fmt.Sprintf("%s %s", Styles.Muted.Render(key+":"), value)
}

// countTable renders a breakdown sorted by key
func countTable(label string, counts map[string]int) string {
	if len(counts) == 0 {
		return Styles.Muted.Render("(no " + strings.ToLower(label) + " data)")
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	t := newTable(label, "COUNT")
	for _, k := range keys {
		t.Row(k, strconv.Itoa(counts[k]))
	}
	return t.Render()
}

// RenderSummary renders a "Total: N things" line
func RenderSummary(count int, singular, plural string) string {
	label := plural
	if count == 1 {
		label = singular
	}
	return Styles.Muted.Render("Total: ") + Styles.Highlight.Render(strconv.Itoa(count)) + " " + Styles.Muted.Render(label)
}
