package commands

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/loader"
	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/console"
	"github.com/ragar/ragarctl/internal/domain"
)

var (
	providerListType  string
	providerListTree  bool
	providerApplyFile string
)

// providersCmd groups provider commands
var providersCmd = &cobra.Command{
	Use:     "providers",
	Aliases: []string{"provider"},
	Short:   "list, create and edit platform and API providers",
}

var providersListCmd = &cobra.Command{
	Use:   "list",
	Short: "list providers",
	Example: `  # Every provider
  $ ragarctl providers list

  # Game companies only
  $ ragarctl providers list --type game_company

  # Providers with their live connections
  $ ragarctl providers list --tree`,
	RunE: runProvidersList,
}

var providersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "create a provider interactively",
	RunE:  runProvidersCreate,
}

var providersEditCmd = &cobra.Command{
	Use:   "edit SLUG|ID",
	Short: "edit a provider interactively",
	Args:  cobra.ExactArgs(1),
	RunE:  runProvidersEdit,
}

var providersApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "create or update a provider from a YAML file",
	Long: `Create or update a provider from a YAML file. A file with an id updates that
provider; a file without one creates a new provider.`,
	Example: `  $ cat steam.yaml
  kind: Provider
  spec:
    slug: steam
    displayName: Steam
    providerType: platform
    connectionType: openid
    apiConfig:
      baseUrl: https://api.steampowered.com
      rateLimitPerDay: 100000

  $ ragarctl providers apply -f steam.yaml`,
	RunE: runProvidersApply,
}

func init() {
	providersListCmd.Flags().StringVar(&providerListType, "type", "", "provider type: platform, game_company, api_service")
	providersListCmd.Flags().BoolVar(&providerListTree, "tree", false, "show providers with their connections")

	providersApplyCmd.Flags().StringVarP(&providerApplyFile, "file", "f", "", "YAML file containing the provider definition")
	_ = providersApplyCmd.MarkFlagRequired("file")

	providersCmd.AddCommand(providersListCmd)
	providersCmd.AddCommand(providersCreateCmd)
	providersCmd.AddCommand(providersEditCmd)
	providersCmd.AddCommand(providersApplyCmd)

	for _, c := range providersCmd.Commands() {
		c.SilenceUsage = true
	}
}

func runProvidersList(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	providerType := types.ProviderType(providerListType)
	if providerType != "" && !providerType.Valid() {
		return reportError(cmd, "list providers",
			domain.NewInvalidInputError(fmt.Sprintf("unknown provider type %q", providerListType)))
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	providers, err := apiClient.ListProviders(ctx, providerType)
	if err != nil {
		return reportError(cmd, "list providers", err)
	}

	fmt.Println()
	if providerListTree {
		connections, err := apiClient.ListProviderConnections(ctx)
		if err != nil {
			return reportError(cmd, "list connections", err)
		}
		fmt.Println(ui.RenderProviderTree(providers, connections))
	} else {
		fmt.Println(ui.RenderProviders(providers))
	}
	fmt.Println(ui.RenderSummary(len(providers), "provider", "providers"))
	return nil
}

func runProvidersCreate(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}
	return editProvider(cmd, nil)
}

func runProvidersEdit(cmd *cobra.Command, args []string) error {
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
	provider, err := findProvider(providers, args[0])
	if err != nil {
		return reportError(cmd, "edit provider", err)
	}
	return editProvider(cmd, provider)
}

// findProvider looks a provider up by id or slug
func findProvider(providers []types.Provider, key string) (*types.Provider, error) {
	for i := range providers {
		if providers[i].ID == key || strings.EqualFold(providers[i].Slug, key) {
			return &providers[i], nil
		}
	}
	return nil, domain.NewNotFoundError("provider", key)
}

func editProvider(cmd *cobra.Command, provider *types.Provider) error {
	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	session := console.NewProviderSession()
	session.Open(provider)

	if provider == nil {
		ui.PrintInfo("Creating provider (Interactive Mode)")
	} else {
		ui.PrintInfo("Editing provider '%s'", provider.Slug)
	}
	fmt.Println()

	if err := promptProvider(session); err != nil {
		return reportError(cmd, "provider form", err)
	}

	// validate before asking for confirmation
	if _, err := session.Prepare(); err != nil {
		return reportError(cmd, "provider form", err)
	}

	draft := session.Draft()
	ui.PrintInfo("About to save provider:")
	fmt.Printf("  Slug: %s\n", draft.Slug)
	fmt.Printf("  Display name: %s\n", draft.DisplayName)
	fmt.Printf("  Type: %s\n", draft.ProviderType)
	fmt.Printf("  Connection: %s\n", draft.ConnectionType)
	fmt.Printf("  Active: %t\n", draft.IsActive)
	if draft.BaseURL != "" {
		fmt.Printf("  API: %s\n", draft.BaseURL)
	}
	fmt.Println()

	confirm := false
	if err := survey.AskOne(&survey.Confirm{Message: "Confirm?", Default: true}, &confirm); err != nil {
		return fmt.Errorf("confirmation cancelled")
	}
	if !confirm {
		ui.PrintInfo("Cancelled")
		return nil
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	saved, err := session.Submit(ctx, apiClient)
	if err != nil {
		return reportError(cmd, "save provider", err)
	}

	ui.PrintSuccess("Provider '%s' saved (%s)", saved.Slug, saved.ID)
	fmt.Println()
	fmt.Println("View providers: ragarctl providers list")
	return nil
}

func runProvidersApply(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	res, err := loader.LoadFromFile(providerApplyFile)
	if err != nil {
		return reportError(cmd, "load file", err)
	}
	if res.Kind != loader.KindProvider {
		return reportError(cmd, "apply", domain.NewInvalidInputError(
			fmt.Sprintf("%s holds a %s, use 'ragarctl games apply'", providerApplyFile, res.Kind)))
	}
	input, err := res.ToProviderInput()
	if err != nil {
		return reportError(cmd, "load file", err)
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	job := console.ProviderJob{ID: res.ID, Input: input}
	saved, err := job.Run(ctx, apiClient)
	if err != nil {
		return reportError(cmd, "apply provider", err)
	}

	verb := "created"
	if res.IsUpdate() {
		verb = "updated"
	}
	ui.PrintSuccess("Provider '%s' %s (%s)", saved.Slug, verb, saved.ID)
	return nil
}
