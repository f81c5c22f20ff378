package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/config"
	"github.com/ragar/ragarctl/pkg/logger"
)

const version = "0.1.0"

var (
	configFile     string
	serverOverride string

	// populated by PersistentPreRunE
	appConfig *config.Config
	logCloser io.Closer
)

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "ragarctl",
	Short:   "Training-data admin CLI",
	Version: version,
	Long: `A command-line tool for administering game-AI training data: datasets,
pipelines, analytics, games and their platform/API providers. Provides an
interactive console and scriptable list/create/edit/apply commands.`,
	Example: `  # Authenticate with the admin API
  $ ragarctl login http://localhost:8080 -u admin

  # Open the interactive console
  $ ragarctl console

  # List lore datasets of one game
  $ ragarctl datasets list --game skyrift --category lore

  # Create or update a game from a file
  $ ragarctl games apply -f skyrift.yaml`,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $RAGAR_HOME/config.yaml or ~/.ragarctl/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&serverOverride, "server", "s", "", "admin API server URL (overrides login and config)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(pipelinesCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(connectionsCmd)
	rootCmd.AddCommand(consoleCmd)

	// Set custom template with bold uppercase headers
	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

// setup loads configuration and logging for every command
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		ui.PrintError("%v", err)
		return fmt.Errorf("config load failed")
	}

	closer, err := logger.Setup(cfg.Log)
	if err != nil {
		ui.PrintError("failed to set up logging: %v", err)
		return fmt.Errorf("logger setup failed")
	}

	appConfig = cfg
	logCloser = closer

	l := slog.Default().With("command", cmd.CommandPath())
	cmd.SetContext(logger.WithContext(cmd.Context(), l))
	return nil
}

func teardown(*cobra.Command, []string) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}` + ui.Styles.Bold.Render("GLOBAL OPTIONS") + `
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("ragarctl version %s\n", version)
}
