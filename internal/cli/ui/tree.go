package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/fatih/color"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/console"
)

var (
	providerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	envStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// RenderProviderTree renders providers grouped by type, each with its connections
func RenderProviderTree(providers []types.Provider, connections []types.ProviderConnection) string {
	if len(providers) == 0 {
		return empty("providers")
	}

	byProvider := make(map[string][]types.ProviderConnection)
	for _, c := range connections {
		byProvider[c.ProviderID] = append(byProvider[c.ProviderID], c)
	}

	var groups []string
	for _, pt := range types.ProviderTypes {
		root := tree.Root(Styles.Highlight.Render(providerTypeTitle(pt)))
		n := 0
		for _, p := range providers {
			if p.ProviderType != pt {
				continue
			}
			root.Child(providerNode(p, byProvider[p.ID]))
			n++
		}
		if n > 0 {
			groups = append(groups, root.String())
		}
	}
	return strings.Join(groups, "\n\n")
}

func providerTypeTitle(pt types.ProviderType) string {
	switch pt {
	case types.ProviderPlatform:
		return "Platforms"
	case types.ProviderGameCompany:
		return "Game companies"
	case types.ProviderAPIService:
		return "API services"
	}
	return string(pt)
}

func providerNode(p types.Provider, conns []types.ProviderConnection) *tree.Tree {
	label := fmt.Sprintf("%s %s", providerStyle.Render(p.DisplayName), Styles.Muted.Render("("+p.Slug+")"))
	if !p.IsActive {
		label += " " + Styles.Muted.Render("[inactive]")
	}
	node := tree.New().Root(label)
	node.Child(formatKeyValue("Auth:", string(p.ConnectionType)))
	if p.APIConfig != nil && p.APIConfig.BaseURL != "" {
		node.Child(formatKeyValue("API:", p.APIConfig.BaseURL))
	}

	if len(conns) == 0 {
		node.Child(Styles.Muted.Render("(no connections)"))
		return node
	}
	for _, c := range conns {
		node.Child(connectionNode(c))
	}
	return node
}

func connectionNode(c types.ProviderConnection) *tree.Tree {
	state := color.GreenString("active")
	if !c.IsActive {
		state = color.HiBlackString("inactive")
	}
	node := tree.New().Root(envStyle.Render(string(c.Environment)) + " " + state)

	usage := fmt.Sprintf("%d", c.RequestsToday)
	if c.DailyLimit != nil {
		usage = fmt.Sprintf("%d / %d", c.RequestsToday, *c.DailyLimit)
	}
	node.Child(formatKeyValue("Requests today:", usage))
	node.Child(formatKeyValue("Last success:", console.FormatDate(c.LastSuccessAt)))
	if c.LastError != nil && *c.LastError != "" {
		node.Child(formatKeyValue("Last error:", color.RedString("%s (%s)", Truncate(*c.LastError, maxCellWidth), console.FormatDate(c.LastErrorAt))))
	}
	return node
}

func formatKeyValue(key, value string) string {
	return fmt.Sprintf("%s %s", Styles.Muted.Render(key), value)
}
