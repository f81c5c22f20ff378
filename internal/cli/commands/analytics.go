package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/ui"
)

// analyticsCmd prints the analytics snapshot
var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "show dataset, pipeline and storage analytics",
	Long: `Show the analytics snapshot: dataset counts by game, type and category,
pipeline counts by status, total storage and recent activity.`,
	RunE: runAnalytics,
}

func init() {
	analyticsCmd.SilenceUsage = true
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	analytics, err := apiClient.GetAnalytics(ctx)
	if err != nil {
		return reportError(cmd, "get analytics", err)
	}

	fmt.Println()
	fmt.Println(ui.RenderAnalytics(analytics))
	return nil
}
