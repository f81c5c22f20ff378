package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

var (
	testProviders = []types.Provider{
		{ID: "p-steam", Slug: "steam", DisplayName: "Steam", ProviderType: types.ProviderPlatform},
		{ID: "p-psn", Slug: "psn", DisplayName: "PlayStation Network", ProviderType: types.ProviderPlatform},
		{ID: "c-rift", Slug: "riftworks", DisplayName: "Riftworks", ProviderType: types.ProviderGameCompany},
	}
	testTags = []types.GameTag{
		{ID: "1", Name: "rpg", DisplayName: "RPG", TagType: types.TagGenre},
		{ID: "2", Name: "open-world", DisplayName: "Open World", TagType: types.TagCategory},
		{ID: "3", Name: "co-op", DisplayName: "Co-op", TagType: types.TagCategory},
	}
)

func TestGameSession_CreateDefaults(t *testing.T) {
	s := NewGameSession(testProviders, testTags)
	s.Open(nil)

	assert.Equal(t, ModalCreating, s.Mode())
	assert.Equal(t, types.GameAnnounced, s.Draft().Status)
	assert.Empty(t, s.Platforms.Values())
	_, editing := s.Editing()
	assert.False(t, editing)
}

func TestGameSession_EditWithoutPlatforms(t *testing.T) {
	s := NewGameSession(testProviders, testTags)
	s.Open(&types.Game{ID: "g1", Slug: "skyrift", Name: "Skyrift", Status: types.GameBeta})

	assert.Equal(t, ModalEditing, s.Mode())
	assert.Empty(t, s.Platforms.Values())
	assert.Equal(t, "Skyrift", s.Draft().Name)

	in, err := s.Prepare()
	require.NoError(t, err)
	assert.NotNil(t, in.PlatformProviderIDs)
	assert.Empty(t, in.PlatformProviderIDs)
	assert.Nil(t, in.Genre)
	assert.Nil(t, in.SeriesNumber)
}

func TestGameSession_EditPopulatesAutocompletes(t *testing.T) {
	game := types.Game{
		ID:                    "g1",
		Slug:                  "skyrift",
		Name:                  "Skyrift",
		Status:                types.GameReleased,
		GameCompanyProviderID: ptr("c-rift"),
		PlatformProviderIDs:   []string{"p-steam"},
		Genre:                 ptr("rpg"),
		Categories:            []string{"co-op"},
		SeriesNumber:          ptr(2),
	}
	s := NewGameSession(testProviders, testTags)
	s.Open(&game)

	assert.Equal(t, "Riftworks", s.Company.Label())
	assert.Equal(t, []string{"Steam"}, s.Platforms.Labels())
	assert.Equal(t, "RPG", s.Genre.Label())
	assert.Equal(t, "2", s.Draft().SeriesNumber)

	require.True(t, s.Platforms.Add("p-psn"))
	assert.Equal(t, []string{"p-steam"}, game.PlatformProviderIDs, "draft edits do not leak into the record")
}

func TestGameSession_SetValidation(t *testing.T) {
	s := NewGameSession(nil, nil)
	s.Open(nil)

	assert.ErrorIs(t, s.Set("rating", "5"), ErrUnknownField)
	assert.True(t, domain.IsInvalidInput(s.Set(GameStatus, "gold")))
	require.NoError(t, s.Set(GameStatus, "alpha"))
	assert.Equal(t, "alpha", s.Draft().Get(GameStatus))

	require.NoError(t, s.Set(GameSlug, "skyrift"))
	require.NoError(t, s.Set(GameName, "Skyrift"))
	require.NoError(t, s.Set(GameSeriesNumber, "two"))
	_, err := s.Prepare()
	assert.True(t, domain.IsInvalidInput(err))
}

func TestGameSession_SubmitCreate(t *testing.T) {
	api := &fakeAPI{}
	s := NewGameSession(testProviders, testTags)
	s.Open(nil)
	require.NoError(t, s.Set(GameSlug, "skyrift"))
	require.NoError(t, s.Set(GameName, "Skyrift"))
	require.NoError(t, s.Set(GamePublisher, "Riftworks Publishing"))
	require.True(t, s.Company.Select("c-rift"))
	require.True(t, s.Categories.Add("open-world"))

	g, err := s.Submit(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, "g-new", g.ID)
	assert.Equal(t, []string{"createGame"}, api.Calls())
	assert.Equal(t, "c-rift", *api.lastGameIn.GameCompanyProviderID)
	assert.Equal(t, []string{"open-world"}, api.lastGameIn.Categories)
	assert.Equal(t, "Riftworks Publishing", *api.lastGameIn.Publisher)
	assert.False(t, s.IsOpen())
}

func TestGameSession_SubmitUpdate(t *testing.T) {
	api := &fakeAPI{}
	s := NewGameSession(testProviders, testTags)
	s.Open(&types.Game{ID: "g1", Slug: "skyrift", Name: "Skyrift", Status: types.GameBeta})
	require.NoError(t, s.Set(GameStatus, "released"))

	_, err := s.Submit(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, []string{"updateGame"}, api.Calls())
	assert.Equal(t, "g1", api.lastID)
	assert.Equal(t, types.GameReleased, api.lastGameIn.Status)
}

func TestGameSession_SubmitFailureKeepsDraft(t *testing.T) {
	api := &fakeAPI{err: domain.NewProtocolError("create game", "slug taken")}
	s := NewGameSession(nil, nil)
	s.Open(nil)
	require.NoError(t, s.Set(GameSlug, "skyrift"))
	require.NoError(t, s.Set(GameName, "Skyrift"))

	_, err := s.Submit(context.Background(), api)
	require.Error(t, err)
	assert.True(t, s.IsOpen())
	assert.False(t, s.Saving())
	assert.Equal(t, "skyrift", s.Draft().Slug)
}

func TestGameSession_SubmitClosed(t *testing.T) {
	api := &fakeAPI{}
	s := NewGameSession(nil, nil)

	_, err := s.Submit(context.Background(), api)
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.Empty(t, api.Calls())
}
