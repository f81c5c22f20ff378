package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/client"
	cliconfig "github.com/ragar/ragarctl/internal/cli/config"
	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/domain"
	"github.com/ragar/ragarctl/pkg/logger"
)

// resolveServer picks the API server: --server, then the server stored at login, then config
func resolveServer(store *cliconfig.CredentialStore) string {
	if serverOverride != "" {
		return serverOverride
	}
	if s := store.Get(cliconfig.ServerKey); s != "" {
		return s
	}
	if appConfig != nil {
		return appConfig.Server.URL
	}
	return "http://localhost:8080"
}

// newAPIClient builds an authenticated client from the credential store
func newAPIClient(cmd *cobra.Command) (*client.APIClient, error) {
	store, err := cliconfig.Load()
	if err != nil {
		ui.PrintError("failed to load credentials: %v", err)
		return nil, fmt.Errorf("credentials load failed")
	}

	if !store.IsAuthenticated() {
		ui.PrintError("not authenticated, please login first")
		fmt.Println("\nRun 'ragarctl login' to authenticate.")
		return nil, fmt.Errorf("authentication required")
	}

	apiClient, err := client.NewAPIClient(resolveServer(store), store.Credentials())
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return nil, fmt.Errorf("client creation failed")
	}
	apiClient.SetLogger(logger.FromContext(cmd.Context()))
	return apiClient, nil
}

func requestTimeout() time.Duration {
	if appConfig != nil {
		return appConfig.Server.RequestTimeout
	}
	return 30 * time.Second
}

func uploadTimeout() time.Duration {
	if appConfig != nil {
		return appConfig.Server.UploadTimeout
	}
	return 5 * time.Minute
}

// requestContext bounds one API call
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout())
}

// uploadContext bounds a dataset upload
func uploadContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), uploadTimeout())
}

// reportError prints err for the operator and returns a short error for cobra
func reportError(cmd *cobra.Command, action string, err error) error {
	switch {
	case domain.IsUnauthorized(err):
		ui.PrintError("%s: %s", action, domain.UserMessage(err))
		fmt.Println("\nRun 'ragarctl login' to authenticate again.")
	case domain.IsInvalidInput(err):
		ui.PrintError("%s", domain.UserMessage(err))
	default:
		ui.PrintError("%s: %s", action, domain.UserMessage(err))
	}
	logger.WithError(logger.FromContext(cmd.Context()), err).Debug(action + " failed")
	return fmt.Errorf("%s failed", action)
}

// rejectArgs mirrors cobra.NoArgs with the CLI's error style
func rejectArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}
	return nil
}
