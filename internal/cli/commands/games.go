package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/client"
	"github.com/ragar/ragarctl/internal/cli/loader"
	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/console"
	"github.com/ragar/ragarctl/internal/domain"
	"github.com/ragar/ragarctl/pkg/logger"
)

var gameApplyFile string

// gamesCmd groups game commands
var gamesCmd = &cobra.Command{
	Use:     "games",
	Aliases: []string{"game"},
	Short:   "list, create and edit games",
}

var gamesListCmd = &cobra.Command{
	Use:   "list",
	Short: "list games",
	RunE:  runGamesList,
}

var gamesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "create a game interactively",
	Long: `Create a game by answering prompts. The game company, platforms, genre
and categories are picked from the providers and tags known to the server.`,
	RunE: runGamesCreate,
}

var gamesEditCmd = &cobra.Command{
	Use:   "edit SLUG|ID",
	Short: "edit a game interactively",
	Long:  `Edit a game by answering prompts pre-filled with its current values.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGamesEdit,
}

var gamesApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "create or update a game from a YAML file",
	Long: `Create or update a game from a YAML file. A file with an id updates that
game; a file without one creates a new game.`,
	Example: `  $ cat skyrift.yaml
  kind: Game
  spec:
    slug: skyrift
    name: Skyrift
    status: beta
    categories: [rpg, open-world]

  $ ragarctl games apply -f skyrift.yaml`,
	RunE: runGamesApply,
}

func init() {
	gamesApplyCmd.Flags().StringVarP(&gameApplyFile, "file", "f", "", "YAML file containing the game definition")
	_ = gamesApplyCmd.MarkFlagRequired("file")

	gamesCmd.AddCommand(gamesListCmd)
	gamesCmd.AddCommand(gamesCreateCmd)
	gamesCmd.AddCommand(gamesEditCmd)
	gamesCmd.AddCommand(gamesApplyCmd)

	for _, c := range gamesCmd.Commands() {
		c.SilenceUsage = true
	}
}

func runGamesList(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	games, err := apiClient.ListGames(ctx)
	if err != nil {
		return reportError(cmd, "list games", err)
	}
	// provider names are cosmetic; fall back to ids if they cannot be loaded
	providers, err := apiClient.ListProviders(ctx, "")
	if err != nil {
		logger.FromContext(cmd.Context()).Warn("could not load providers for game list", "error", err)
	}

	fmt.Println()
	fmt.Println(ui.RenderGames(games, providers))
	fmt.Println(ui.RenderSummary(len(games), "game", "games"))
	return nil
}

// gameReferences loads the providers and tags the game form picks from
func gameReferences(ctx context.Context, apiClient *client.APIClient) ([]types.Provider, []types.GameTag, error) {
	providers, err := apiClient.ListProviders(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	tags, err := apiClient.ListGameTags(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	return providers, tags, nil
}

func runGamesCreate(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}
	return editGame(cmd, nil)
}

func runGamesEdit(cmd *cobra.Command, args []string) error {
	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	games, err := apiClient.ListGames(ctx)
	if err != nil {
		return reportError(cmd, "list games", err)
	}
	game, err := findGame(games, args[0])
	if err != nil {
		return reportError(cmd, "edit game", err)
	}
	return editGame(cmd, game)
}

// findGame looks a game up by id or slug
func findGame(games []types.Game, key string) (*types.Game, error) {
	for i := range games {
		if games[i].ID == key || strings.EqualFold(games[i].Slug, key) {
			return &games[i], nil
		}
	}
	return nil, domain.NewNotFoundError("game", key)
}

// editGame runs the game form in create mode for nil and edit mode otherwise
func editGame(cmd *cobra.Command, game *types.Game) error {
	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	providers, tags, err := gameReferences(ctx, apiClient)
	cancel()
	if err != nil {
		return reportError(cmd, "load providers and tags", err)
	}

	session := console.NewGameSession(providers, tags)
	session.Open(game)

	if game == nil {
		ui.PrintInfo("Creating game (Interactive Mode)")
	} else {
		ui.PrintInfo("Editing game '%s'", game.Slug)
	}
	fmt.Println()

	if err := promptGame(session, providers, tags); err != nil {
		return reportError(cmd, "game form", err)
	}
	if _, err := session.Prepare(); err != nil {
		return reportError(cmd, "game form", err)
	}

	draft := session.Draft()
	ui.PrintInfo("About to save game:")
	fmt.Printf("  Slug: %s\n", draft.Slug)
	fmt.Printf("  Name: %s\n", draft.Name)
	fmt.Printf("  Status: %s\n", draft.Status)
	fmt.Printf("  Company: %s\n", orNone(session.Company.Label()))
	fmt.Printf("  Platforms: %s\n", orNone(strings.Join(session.Platforms.Labels(), ", ")))
	fmt.Printf("  Genre: %s\n", orNone(session.Genre.Label()))
	fmt.Printf("  Categories: %s\n", orNone(strings.Join(session.Categories.Labels(), ", ")))
	fmt.Println()

	confirm := false
	if err := survey.AskOne(&survey.Confirm{Message: "Confirm?", Default: true}, &confirm); err != nil {
		return fmt.Errorf("confirmation cancelled")
	}
	if !confirm {
		ui.PrintInfo("Cancelled")
		return nil
	}

	ctx, cancel = requestContext(cmd)
	defer cancel()

	saved, err := session.Submit(ctx, apiClient)
	if err != nil {
		return reportError(cmd, "save game", err)
	}

	ui.PrintSuccess("Game '%s' saved (%s)", saved.Slug, saved.ID)
	fmt.Println()
	fmt.Println("View games: ragarctl games list")
	return nil
}

func runGamesApply(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	res, err := loader.LoadFromFile(gameApplyFile)
	if err != nil {
		return reportError(cmd, "load file", err)
	}
	if res.Kind != loader.KindGame {
		return reportError(cmd, "apply", domain.NewInvalidInputError(
			fmt.Sprintf("%s holds a %s, use 'ragarctl providers apply'", gameApplyFile, res.Kind)))
	}
	input, err := res.ToGameInput()
	if err != nil {
		return reportError(cmd, "load file", err)
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	job := console.GameJob{ID: res.ID, Input: input}
	saved, err := job.Run(ctx, apiClient)
	if err != nil {
		return reportError(cmd, "apply game", err)
	}

	verb := "created"
	if res.IsUpdate() {
		verb = "updated"
	}
	ui.PrintSuccess("Game '%s' %s (%s)", saved.Slug, verb, saved.ID)
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
