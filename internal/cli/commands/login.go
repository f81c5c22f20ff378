package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/client"
	cliconfig "github.com/ragar/ragarctl/internal/cli/config"
	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/domain"
)

var (
	loginUsername string
)

// loginCmd is the login command
var loginCmd = &cobra.Command{
	Use:   "login [server]",
	Short: "authenticate with the admin API",
	Long: `Authenticate with the admin API and save the token locally.

The token is stored under the key "ragar-auth-token" in
~/.ragarctl/credentials.json (readable only by you) and sent as a bearer
token with every subsequent request.

If server is not provided, the configured server.url is used
(default http://localhost:8080).`,
	Example: `  # Login to the configured server
  $ ragarctl login

  # Login to a custom server with a username (password is prompted)
  $ ragarctl login https://admin.example.com -u admin`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

// logoutCmd forgets the stored token
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "remove the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cliconfig.Load()
		if err != nil {
			return reportError(cmd, "logout", err)
		}
		store.Clear()
		if err := store.Save(); err != nil {
			return reportError(cmd, "logout", err)
		}
		ui.PrintSuccess("Logged out")
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username for authentication")

	// Silence usage to avoid showing help on every error
	loginCmd.SilenceUsage = true
	logoutCmd.SilenceUsage = true
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	server := appConfig.Server.URL
	if serverOverride != "" {
		server = serverOverride
	}
	if len(args) > 0 {
		server = args[0]
	}

	// 1. Prompt for username if not provided
	username := loginUsername
	if username == "" {
		prompt := &survey.Input{Message: "Username:"}
		if err := survey.AskOne(prompt, &username, survey.WithValidator(survey.Required)); err != nil {
			ui.PrintError("failed to read username: %v", err)
			return fmt.Errorf("input failed")
		}
	}

	// 2. Prompt for password (hidden input)
	var password string
	prompt := &survey.Password{Message: "Password:"}
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		ui.PrintError("failed to read password: %v", err)
		return fmt.Errorf("input failed")
	}

	// 3. Create an unauthenticated client for the login call
	apiClient, err := client.NewAPIClient(server, types.Credentials{})
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	ui.PrintInfo("Connecting to %s...", apiClient.Server())

	resp, err := apiClient.Login(ctx, username, password)
	if err != nil {
		ui.PrintErrorBox("Login Failed", domain.UserMessage(err))
		return fmt.Errorf("authentication failed")
	}

	// 4. Persist the token
	store, err := cliconfig.Load()
	if err != nil {
		ui.PrintError("failed to load credentials: %v", err)
		return fmt.Errorf("credentials load failed")
	}
	if resp.User != nil && resp.User.Username != "" {
		username = resp.User.Username
	}
	store.SetLogin(apiClient.Server(), username, resp.Token)
	if err := store.Save(); err != nil {
		ui.PrintError("failed to save credentials: %v", err)
		return fmt.Errorf("credentials save failed")
	}

	expires := resp.ExpiresAt
	if expires == "" {
		expires = "-"
	}
	ui.PrintSuccessBox("✓ Login Successful", fmt.Sprintf(`Username:       %s
Server:         %s
Token expires:  %s
Saved to:       %s`,
		username,
		apiClient.Server(),
		expires,
		store.Path(),
	))

	fmt.Println()
	ui.PrintInfo("You can now use the following commands:")
	ui.PrintBold("  ragarctl console          # Interactive console")
	ui.PrintBold("  ragarctl datasets list    # List training datasets")

	return nil
}
