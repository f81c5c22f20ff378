package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/tui"
	"github.com/ragar/ragarctl/internal/console"
	"github.com/ragar/ragarctl/pkg/logger"
)

var consoleTab string

// consoleCmd opens the interactive console
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "open the interactive admin console",
	Long: `Open the full-screen admin console with tabs for datasets, pipelines,
analytics, games and providers.

Keys:
  1-5, tab      switch tabs
  g t c s       game, type, category and status filters
  r             refresh
  n / e         new / edit (upload on the datasets tab)
  d             diagnostics
  ?             help
  q             quit`,
	Example: `  $ ragarctl console
  $ ragarctl console --tab games`,
	RunE: runConsole,
}

func init() {
	consoleCmd.Flags().StringVar(&consoleTab, "tab", "", "initial tab: datasets, pipelines, analytics, games, providers (default console.default_tab)")
	consoleCmd.SilenceUsage = true
}

func runConsole(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	tabName := consoleTab
	if tabName == "" && appConfig != nil {
		tabName = appConfig.Console.DefaultTab
	}
	tab := console.TabDatasets
	if tabName != "" {
		parsed, err := console.ParseTab(tabName)
		if err != nil {
			return reportError(cmd, "console", err)
		}
		tab = parsed
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	opts := tui.Options{
		Server:         apiClient.Server(),
		InitialTab:     tab,
		RequestTimeout: requestTimeout(),
		UploadTimeout:  uploadTimeout(),
		Logger:         logger.FromContext(cmd.Context()),
	}
	if appConfig != nil {
		opts.DiagnosticsLimit = appConfig.Console.DiagnosticsLimit
	}

	if err := tui.NewConsoleProgram(cmd.Context(), apiClient, opts).Run(); err != nil {
		return fmt.Errorf("console error: %w", err)
	}
	return nil
}
