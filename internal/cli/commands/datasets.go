package commands

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/cli/ui"
	"github.com/ragar/ragarctl/internal/console"
)

var (
	datasetGame     string
	datasetType     string
	datasetCategory string
	datasetStatus   string

	uploadName        string
	uploadGame        string
	uploadType        string
	uploadCategory    string
	uploadDescription string
	uploadVersion     string
	uploadTags        string
	uploadMetadata    string
)

// datasetsCmd groups dataset commands
var datasetsCmd = &cobra.Command{
	Use:     "datasets",
	Aliases: []string{"dataset", "ds"},
	Short:   "list and upload training datasets",
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "list training datasets",
	Long: `List training datasets, optionally narrowed by game, data type, category
and status. Filters left at "all" are not sent to the server.`,
	Example: `  # Every dataset
  $ ragarctl datasets list

  # Lore text of one game
  $ ragarctl datasets list --game skyrift --type text --category lore`,
	RunE: runDatasetsList,
}

var datasetsUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "upload a dataset file",
	Long: `Upload a file as a new dataset. Name and game are prompted for when
not given as flags. Tags are comma-separated; metadata is a JSON object.`,
	Example: `  # Upload with prompts for the missing fields
  $ ragarctl datasets upload ./lore.jsonl

  # Fully scripted
  $ ragarctl datasets upload ./quests.csv --name quests-v2 --game skyrift \
    --type structured --category quests --tags main,side \
    --metadata '{"source":"wiki"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetsUpload,
}

func init() {
	f := datasetsListCmd.Flags()
	f.StringVar(&datasetGame, "game", console.FilterAll, "game slug")
	f.StringVar(&datasetType, "type", console.FilterAll, "data type: text, dialogue, image, audio, structured")
	f.StringVar(&datasetCategory, "category", console.FilterAll, "category: lore, quests, characters, items, mechanics, general")
	f.StringVar(&datasetStatus, "status", console.FilterAll, "status: active, archived, processing")

	u := datasetsUploadCmd.Flags()
	u.StringVar(&uploadName, "name", "", "dataset name")
	u.StringVar(&uploadGame, "game", "", "game slug")
	u.StringVar(&uploadType, "type", string(types.DataTypeText), "data type")
	u.StringVar(&uploadCategory, "category", string(types.CategoryGeneral), "category")
	u.StringVar(&uploadDescription, "description", "", "description")
	u.StringVar(&uploadVersion, "version", "1.0.0", "version")
	u.StringVar(&uploadTags, "tags", "", "comma-separated tags")
	u.StringVar(&uploadMetadata, "metadata", "", "metadata as a JSON object")

	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsUploadCmd)

	datasetsListCmd.SilenceUsage = true
	datasetsUploadCmd.SilenceUsage = true
}

// datasetFilter validates the list flags through the same rules the console applies
func datasetFilter() (types.DatasetFilter, error) {
	filters := console.DefaultFilters()
	var err error
	for kind, value := range map[console.FilterKind]string{
		console.FilterGame:     datasetGame,
		console.FilterDataType: datasetType,
		console.FilterCategory: datasetCategory,
		console.FilterStatus:   datasetStatus,
	} {
		if filters, err = filters.With(kind, value); err != nil {
			return types.DatasetFilter{}, err
		}
	}
	return filters.DatasetFilter(), nil
}

func runDatasetsList(cmd *cobra.Command, args []string) error {
	if err := rejectArgs(cmd, args); err != nil {
		return err
	}

	filter, err := datasetFilter()
	if err != nil {
		return reportError(cmd, "list datasets", err)
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	ui.PrintInfo("Fetching datasets from %s...", apiClient.Server())
	datasets, err := apiClient.ListDatasets(ctx, filter)
	if err != nil {
		return reportError(cmd, "list datasets", err)
	}

	fmt.Println()
	fmt.Println(ui.RenderDatasets(datasets))
	fmt.Println(ui.RenderSummary(len(datasets), "dataset", "datasets"))
	return nil
}

func runDatasetsUpload(cmd *cobra.Command, args []string) error {
	session := console.NewUploadSession()
	session.Open()
	session.SelectFile(args[0])

	if uploadName == "" {
		prompt := &survey.Input{Message: "Dataset name:"}
		if err := survey.AskOne(prompt, &uploadName, survey.WithValidator(survey.Required)); err != nil {
			return fmt.Errorf("input cancelled")
		}
	}
	if uploadGame == "" {
		prompt := &survey.Input{Message: "Game slug:", Help: "the game this dataset trains"}
		if err := survey.AskOne(prompt, &uploadGame, survey.WithValidator(survey.Required)); err != nil {
			return fmt.Errorf("input cancelled")
		}
	}

	fields := []struct{ field, value string }{
		{console.UploadName, uploadName},
		{console.UploadGame, uploadGame},
		{console.UploadDataType, uploadType},
		{console.UploadCategory, uploadCategory},
		{console.UploadDescription, uploadDescription},
		{console.UploadVersion, uploadVersion},
		{console.UploadTags, uploadTags},
		{console.UploadMetadata, uploadMetadata},
	}
	for _, f := range fields {
		if err := session.Set(f.field, f.value); err != nil {
			return reportError(cmd, "upload dataset", err)
		}
	}

	apiClient, err := newAPIClient(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := uploadContext(cmd)
	defer cancel()

	ui.PrintInfo("Uploading %s...", session.File())
	dataset, err := session.Submit(ctx, apiClient)
	if err != nil {
		return reportError(cmd, "upload dataset", err)
	}

	tags := "-"
	if len(dataset.Tags) > 0 {
		tags = strings.Join(dataset.Tags, ", ")
	}
	ui.PrintSuccessBox("✓ Dataset Uploaded", fmt.Sprintf(`ID:        %s
Name:      %s
Game:      %s
Type:      %s / %s
Version:   %s
Size:      %s
Tags:      %s`,
		dataset.ID,
		dataset.Name,
		dataset.Game,
		dataset.DataType, dataset.Category,
		dataset.Version,
		console.FormatBytes(dataset.SizeBytes),
		tags,
	))
	return nil
}
