package console

import (
	"context"
	"slices"
	"strings"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

// Game form text fields. Company, platforms, genre and categories are autocompletes.
const (
	GameSlug         = "slug"
	GameName         = "name"
	GameStatus       = "status"
	GameFranchise    = "franchise"
	GameSeriesNumber = "series_number"
	GamePublisher    = "publisher"
	GameWebsiteURL   = "website_url"
)

// GameFields lists the game form's text fields in display order
var GameFields = []string{
	GameSlug, GameName, GameStatus, GameFranchise, GameSeriesNumber, GamePublisher, GameWebsiteURL,
}

// GameDraft is the text part of the game form
type GameDraft struct {
	Slug         string
	Name         string
	Status       types.GameStatus
	Franchise    string
	SeriesNumber string
	Publisher    string
	WebsiteURL   string
}

// Get returns one field's text
func (d GameDraft) Get(field string) string {
	switch field {
	case GameSlug:
		return d.Slug
	case GameName:
		return d.Name
	case GameStatus:
		return string(d.Status)
	case GameFranchise:
		return d.Franchise
	case GameSeriesNumber:
		return d.SeriesNumber
	case GamePublisher:
		return d.Publisher
	case GameWebsiteURL:
		return d.WebsiteURL
	}
	return ""
}

// GameSaver persists games. *client.APIClient implements it.
type GameSaver interface {
	CreateGame(ctx context.Context, input types.GameInput) (*types.Game, error)
	UpdateGame(ctx context.Context, id string, input types.GameInput) (*types.Game, error)
}

// GameSession is the create/edit game form
type GameSession struct {
	modal  Modal[types.Game]
	draft  GameDraft
	saving bool

	Company    *Autocomplete
	Platforms  *MultiAutocomplete
	Genre      *Autocomplete
	Categories *MultiAutocomplete
}

// NewGameSession creates a closed game form whose autocompletes draw on providers and tags
func NewGameSession(providers []types.Provider, tags []types.GameTag) *GameSession {
	s := &GameSession{
		draft:      GameDraft{Status: types.GameAnnounced},
		Company:    NewAutocomplete(nil),
		Platforms:  NewMultiAutocomplete(nil),
		Genre:      NewAutocomplete(nil),
		Categories: NewMultiAutocomplete(nil),
	}
	s.SetSources(providers, tags)
	return s
}

// SetSources refreshes the autocomplete entries without touching selections
func (s *GameSession) SetSources(providers []types.Provider, tags []types.GameTag) {
	s.Company.SetChoices(ProviderChoices(providers, types.ProviderGameCompany))
	s.Platforms.SetChoices(ProviderChoices(providers, types.ProviderPlatform))
	s.Genre.SetChoices(TagChoices(tags, types.TagGenre))
	s.Categories.SetChoices(TagChoices(tags, types.TagCategory))
}

// Open shows the form. A nil game starts a new one from defaults; otherwise the
// draft is populated from game and saving updates it.
func (s *GameSession) Open(game *types.Game) {
	s.saving = false
	s.resetSearch()
	if game == nil {
		s.modal.OpenCreate()
		s.draft = GameDraft{Status: types.GameAnnounced}
		s.Company.Clear()
		s.Platforms.SetValues(nil)
		s.Genre.Clear()
		s.Categories.SetValues(nil)
		return
	}

	g := *game
	g.PlatformProviderIDs = slices.Clone(game.PlatformProviderIDs)
	g.Categories = slices.Clone(game.Categories)
	s.modal.OpenEdit(g)

	s.draft = GameDraft{
		Slug:         g.Slug,
		Name:         g.Name,
		Status:       g.Status,
		Franchise:    deref(g.Franchise),
		SeriesNumber: intString(g.SeriesNumber),
		Publisher:    deref(g.Publisher),
		WebsiteURL:   deref(g.WebsiteURL),
	}
	s.Company.SetValue(deref(g.GameCompanyProviderID))
	s.Platforms.SetValues(g.PlatformProviderIDs)
	s.Genre.SetValue(deref(g.Genre))
	s.Categories.SetValues(g.Categories)
}

func (s *GameSession) resetSearch() {
	s.Company.SetSearch("")
	s.Platforms.SetSearch("")
	s.Genre.SetSearch("")
	s.Categories.SetSearch("")
}

// Close discards the draft
func (s *GameSession) Close() {
	s.modal.Close()
	s.draft = GameDraft{Status: types.GameAnnounced}
	s.resetSearch()
}

func (s *GameSession) IsOpen() bool { return s.modal.IsOpen() }

func (s *GameSession) Mode() ModalState { return s.modal.State() }

// Editing returns the game being edited, if any
func (s *GameSession) Editing() (types.Game, bool) { return s.modal.Target() }

func (s *GameSession) Draft() GameDraft { return s.draft }

func (s *GameSession) Saving() bool { return s.saving }

// Set replaces one text field of the draft
func (s *GameSession) Set(field, value string) error {
	switch field {
	case GameSlug:
		s.draft.Slug = value
	case GameName:
		s.draft.Name = value
	case GameStatus:
		st := types.GameStatus(value)
		if !st.Valid() {
			return domain.NewInvalidInputError("unknown game status " + value)
		}
		s.draft.Status = st
	case GameFranchise:
		s.draft.Franchise = value
	case GameSeriesNumber:
		s.draft.SeriesNumber = value
	case GamePublisher:
		s.draft.Publisher = value
	case GameWebsiteURL:
		s.draft.WebsiteURL = value
	default:
		return unknownField(field)
	}
	return nil
}

// Prepare validates the draft and converts it to the mutation input
func (s *GameSession) Prepare() (types.GameInput, error) {
	if err := required("slug", s.draft.Slug); err != nil {
		return types.GameInput{}, err
	}
	if err := required("name", s.draft.Name); err != nil {
		return types.GameInput{}, err
	}
	series, err := optionalInt("series number", s.draft.SeriesNumber)
	if err != nil {
		return types.GameInput{}, err
	}

	platforms := s.Platforms.Values()
	if platforms == nil {
		platforms = []string{}
	}
	categories := s.Categories.Values()
	if categories == nil {
		categories = []string{}
	}

	return types.GameInput{
		Slug:                  strings.TrimSpace(s.draft.Slug),
		Name:                  strings.TrimSpace(s.draft.Name),
		Status:                s.draft.Status,
		GameCompanyProviderID: optionalString(s.Company.Value()),
		PlatformProviderIDs:   platforms,
		Genre:                 optionalString(s.Genre.Value()),
		Categories:            categories,
		Franchise:             optionalString(s.draft.Franchise),
		SeriesNumber:          series,
		Publisher:             optionalString(s.draft.Publisher),
		WebsiteURL:            optionalString(s.draft.WebsiteURL),
	}, nil
}

// GameJob is a validated save, detached from the session so it can run off the UI loop
type GameJob struct {
	ID    string
	Input types.GameInput
}

// Run calls createGame, or updateGame when ID is set
func (j GameJob) Run(ctx context.Context, saver GameSaver) (*types.Game, error) {
	if j.ID == "" {
		return saver.CreateGame(ctx, j.Input)
	}
	return saver.UpdateGame(ctx, j.ID, j.Input)
}

// Start validates the draft and marks the session saving
func (s *GameSession) Start() (GameJob, error) {
	if !s.IsOpen() {
		return GameJob{}, ErrSessionClosed
	}
	if s.saving {
		return GameJob{}, domain.NewInvalidInputError("a save is already in progress")
	}
	input, err := s.Prepare()
	if err != nil {
		return GameJob{}, err
	}
	job := GameJob{Input: input}
	if g, ok := s.modal.Target(); ok {
		job.ID = g.ID
	}
	s.saving = true
	return job, nil
}

// Finish ends a save. Success closes the form; failure keeps the draft.
func (s *GameSession) Finish(err error) {
	s.saving = false
	if err == nil {
		s.Close()
	}
}

// Submit runs Start, the mutation and Finish in one call
func (s *GameSession) Submit(ctx context.Context, saver GameSaver) (*types.Game, error) {
	job, err := s.Start()
	if err != nil {
		return nil, err
	}
	game, err := job.Run(ctx, saver)
	s.Finish(err)
	return game, err
}
