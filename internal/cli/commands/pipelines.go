package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/console"
)

var pipelineGame string

// pipelinesCmd groups pipeline commands
var pipelinesCmd = &cobra.Command{
	Use:     "pipelines",
	Aliases: []string{"pipeline", "pl"},
	Short:   "inspect training pipelines",
}

var pipelinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "list training pipelines",
	Long: `List training pipelines with their last run status, run count, success
rate and last run date. Only the game filter applies to pipelines.`,
	Example: `  $ ragarctl pipelines list
  $ ragarctl pipelines list --game skyrift`,
	RunE: runPipelinesList,
}

func init() {
	pipelinesListCmd.Flags().StringVar(&pipelineGame, "game", console.FilterAll, "game slug")
	pipelinesCmd.AddCommand(pipelinesListCmd)
	pipelinesListCmd.SilenceUsage = true
}

func runPipelinesList(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	filters, err := console.DefaultFilters().With(console.FilterGame, pipelineGame)
	if err != nil {
		return reportError(cmd, "list pipelines", err)
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	pipelines, err := apiClient.ListPipelines(ctx, filters.DatasetFilter().Game)
	if err != nil {
		return reportError(cmd, "list pipelines", err)
	}

	fmt.Println()
	fmt.Println(ui.RenderPipelines(pipelines))
	fmt.Println(ui.RenderSummary(len(pipelines), "pipeline", "pipelines"))
	return nil
}
