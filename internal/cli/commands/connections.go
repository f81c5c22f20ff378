package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/ui"
)

// connectionsCmd groups provider connection commands
var connectionsCmd = &cobra.Command{
	Use:     "connections",
	Aliases: []string{"connection", "conn"},
	Short:   "inspect provider connections",
}

var connectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list provider connections grouped by provider",
	Long: `List live provider connections in a tree grouped by provider type and
provider, with environment, state, daily request usage, last success and
last error.`,
	RunE: runConnectionsList,
}

func init() {
	connectionsCmd.AddCommand(connectionsListCmd)
	connectionsListCmd.SilenceUsage = true
}

func runConnectionsList(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	providers, err := apiClient.ListProviders(ctx, "")
	if err != nil {
		return reportError(cmd, "list providers", err)
	}
	connections, err := apiClient.ListProviderConnections(ctx)
	if err != nil {
		return reportError(cmd, "list connections", err)
	}

	fmt.Println()
	fmt.Println(ui.RenderProviderTree(providers, connections))
	fmt.Println(ui.RenderSummary(len(connections), "connection", "connections"))
	return nil
}
