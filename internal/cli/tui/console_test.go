package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/console"
	"github.com/ragar/ragarctl/internal/domain"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string
	err   error
	hang  bool

	datasets  []types.Dataset
	games     []types.Game
	providers []types.Provider
}

func (f *fakeAPI) record(c string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ListDatasets(ctx context.Context, _ types.DatasetFilter) ([]types.Dataset, error) {
	f.record("datasets")
	if f.hang {
		<-ctx.Done()
		return nil, domain.NewTransportError("list datasets", ctx.Err())
	}
	return f.datasets, f.err
}

func (f *fakeAPI) ListPipelines(context.Context, string) ([]types.Pipeline, error) {
	f.record("pipelines")
	return nil, f.err
}

func (f *fakeAPI) GetAnalytics(context.Context) (*types.Analytics, error) {
	f.record("analytics")
	return &types.Analytics{}, f.err
}

func (f *fakeAPI) ListGames(context.Context) ([]types.Game, error) {
	f.record("games")
	return f.games, f.err
}

func (f *fakeAPI) ListGameTags(context.Context, types.TagType) ([]types.GameTag, error) {
	f.record("game_tags")
	return nil, f.err
}

func (f *fakeAPI) ListProviders(context.Context, types.ProviderType) ([]types.Provider, error) {
	f.record("providers")
	return f.providers, f.err
}

func (f *fakeAPI) ListProviderConnections(context.Context) ([]types.ProviderConnection, error) {
	f.record("connections")
	return nil, f.err
}

func (f *fakeAPI) UploadDataset(context.Context, types.DatasetUpload, types.UploadFile) (*types.Dataset, error) {
	f.record("upload")
	return &types.Dataset{ID: "d-new"}, f.err
}

func (f *fakeAPI) CreateGame(_ context.Context, in types.GameInput) (*types.Game, error) {
	f.record("createGame")
	return &types.Game{ID: "g-new", Slug: in.Slug}, f.err
}

func (f *fakeAPI) UpdateGame(_ context.Context, id string, in types.GameInput) (*types.Game, error) {
	f.record("updateGame")
	return &types.Game{ID: id, Slug: in.Slug}, f.err
}

func (f *fakeAPI) CreateProvider(_ context.Context, in types.ProviderInput) (*types.Provider, error) {
	f.record("createProvider")
	return &types.Provider{ID: "p-new", Slug: in.Slug}, f.err
}

func (f *fakeAPI) UpdateProvider(_ context.Context, id string, in types.ProviderInput) (*types.Provider, error) {
	f.record("updateProvider")
	return &types.Provider{ID: id, Slug: in.Slug}, f.err
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to the model and returns the updated model
func send(t *testing.T, m consoleModel, msg tea.Msg) (consoleModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	cm, ok := next.(consoleModel)
	require.True(t, ok)
	return cm, cmd
}

// runFetches executes issued requests synchronously and applies the results
func runFetches(t *testing.T, m consoleModel, api *fakeAPI, reqs []console.FetchRequest) consoleModel {
	t.Helper()
	for _, req := range reqs {
		m, _ = send(t, m, fetchResultMsg{res: console.Run(context.Background(), api, req)})
	}
	return m
}

// findMsg runs cmd, descending into batches, and returns the first T it yields
func findMsg[T tea.Msg](cmd tea.Cmd) (T, bool) {
	var zero T
	if cmd == nil {
		return zero, false
	}
	switch msg := cmd().(type) {
	case T:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if found, ok := findMsg[T](c); ok {
				return found, true
			}
		}
	}
	return zero, false
}

func newTestModel(api *fakeAPI) consoleModel {
	return newConsoleModel(context.Background(), api, Options{Server: "http://localhost:8080"})
}

func TestConsole_NumberKeysSwitchTabs(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	m, cmd := send(t, m, keyPress("5"))
	assert.Equal(t, console.TabProviders, m.ctrl.Tab())
	assert.NotNil(t, cmd)
	assert.True(t, m.ctrl.InFlight(console.OpProviders))
	assert.True(t, m.ctrl.InFlight(console.OpConnections))
	assert.False(t, m.ctrl.InFlight(console.OpDatasets))

	m, _ = send(t, m, keyPress("tab"))
	assert.Equal(t, console.TabDatasets, m.ctrl.Tab(), "wraps around")
}

func TestConsole_FetchResultFillsTable(t *testing.T) {
	api := &fakeAPI{datasets: []types.Dataset{{ID: "d1", Name: "lore", Status: types.DatasetActive}}}
	m := newTestModel(api)

	m = runFetches(t, m, api, m.ctrl.Start())
	assert.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "lore", m.table.Rows()[0][0])
	assert.False(t, m.ctrl.Loading())
	assert.Contains(t, m.View(), "lore")
}

func TestConsole_GamesTabShowsProviderNames(t *testing.T) {
	company, platform := "p-lumen", "p-steam"
	api := &fakeAPI{
		games: []types.Game{{
			ID: "g1", Slug: "skyrift", Name: "Skyrift", Status: types.GameBeta,
			GameCompanyProviderID: &company, PlatformProviderIDs: []string{platform, "p-gone"},
		}},
		providers: []types.Provider{
			{ID: company, DisplayName: "Lumen Works"},
			{ID: platform, DisplayName: "Steam"},
		},
	}
	m := newConsoleModel(context.Background(), api, Options{InitialTab: console.TabGames})

	m = runFetches(t, m, api, m.ctrl.Start())
	assert.Contains(t, api.Calls(), "providers")
	require.Len(t, m.table.Rows(), 1)
	row := m.table.Rows()[0]
	assert.Equal(t, "Lumen Works", row[3])
	assert.Equal(t, "Steam, p-gone", row[4], "unknown ids fall back to the raw id")
}

func TestConsole_FailedFetchShowsStatus(t *testing.T) {
	api := &fakeAPI{err: domain.NewProtocolError("list datasets", "db down")}
	m := newTestModel(api)

	m = runFetches(t, m, api, m.ctrl.Start())
	assert.True(t, m.statusErr)
	assert.Equal(t, "list datasets: db down", m.status)
	assert.Len(t, m.ctrl.Diagnostics(), 1)
}

func TestConsole_TimedOutFetchRecordsDiagnostic(t *testing.T) {
	api := &fakeAPI{hang: true}
	m := newConsoleModel(context.Background(), api, Options{
		Server:         "http://localhost:8080",
		RequestTimeout: 50 * time.Millisecond,
	})

	cmd := m.fetch(m.ctrl.Start())
	require.True(t, m.ctrl.Loading())

	res, ok := findMsg[fetchResultMsg](cmd)
	require.True(t, ok)
	m, _ = send(t, m, res)

	assert.False(t, m.ctrl.Loading())
	assert.True(t, m.statusErr)
	diag, ok := m.ctrl.LastDiagnostic()
	require.True(t, ok)
	assert.Equal(t, console.OpDatasets, diag.Op)
	assert.True(t, domain.IsTransport(diag.Err))
}

func TestConsole_CycleFilterRefetchesActiveTabOnly(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m, _ = send(t, m, keyPress("2"))

	m, _ = send(t, m, keyPress("t"))
	assert.Equal(t, "text", m.ctrl.Filters().DataType)
	assert.True(t, m.ctrl.InFlight(console.OpPipelines))
	assert.False(t, m.ctrl.InFlight(console.OpDatasets))
}

func TestConsole_GameFilterInput(t *testing.T) {
	m := newTestModel(&fakeAPI{})

	m, _ = send(t, m, keyPress("g"))
	require.True(t, m.filtering)
	for _, r := range "skyrift" {
		m, _ = send(t, m, keyPress(string(r)))
	}
	m, _ = send(t, m, keyPress("enter"))

	assert.False(t, m.filtering)
	assert.Equal(t, "skyrift", m.ctrl.Filters().Game)
}

func TestConsole_UploadWithoutFileMakesNoCall(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(api)

	m, _ = send(t, m, keyPress("n"))
	require.NotNil(t, m.form)
	assert.Equal(t, formUpload, m.target)

	m, _ = send(t, m, keyPress("ctrl+s"))
	require.Error(t, m.form.err)
	assert.ErrorIs(t, m.form.err, console.ErrNoFileSelected)
	assert.False(t, m.upload.Uploading())
	assert.Empty(t, api.Calls())
}

func TestConsole_EscDiscardsForm(t *testing.T) {
	m := newTestModel(&fakeAPI{})
	m, _ = send(t, m, keyPress("n"))
	m, _ = send(t, m, keyPress("esc"))

	assert.Nil(t, m.form)
	assert.False(t, m.upload.IsOpen())
}

func TestConsole_EditGameSubmits(t *testing.T) {
	api := &fakeAPI{games: []types.Game{{ID: "g1", Slug: "skyrift", Name: "Skyrift", Status: types.GameBeta}}}
	m := newTestModel(api)

	m, _ = send(t, m, keyPress("4"))
	reqs := m.ctrl.Refresh()
	m = runFetches(t, m, api, reqs)
	require.Len(t, m.table.Rows(), 1)

	m, _ = send(t, m, keyPress("e"))
	require.NotNil(t, m.form)
	assert.Equal(t, console.ModalEditing, m.game.Mode())

	m, cmd := send(t, m, keyPress("ctrl+s"))
	require.NotNil(t, cmd)
	assert.True(t, m.game.Saving())

	saved, ok := findMsg[gameSavedMsg](cmd)
	require.True(t, ok)
	require.NoError(t, saved.err)

	m, _ = send(t, m, saved)
	assert.Nil(t, m.form)
	assert.False(t, m.game.IsOpen())
	assert.Contains(t, api.Calls(), "updateGame")
	assert.Equal(t, "Saved game skyrift", m.status)
}

func TestConsole_SaveFailureKeepsForm(t *testing.T) {
	api := &fakeAPI{}
	m := newTestModel(api)
	m, _ = send(t, m, keyPress("5"))
	m, _ = send(t, m, keyPress("n"))
	require.NotNil(t, m.form)

	require.NoError(t, m.provider.Set(console.ProviderSlug, "steam"))
	require.NoError(t, m.provider.Set(console.ProviderDisplayName, "Steam"))

	m, cmd := send(t, m, keyPress("ctrl+s"))
	require.NotNil(t, cmd)

	m, _ = send(t, m, providerSavedMsg{err: domain.NewProtocolError("create provider", "slug taken")})
	require.NotNil(t, m.form)
	assert.True(t, m.provider.IsOpen())
	assert.Contains(t, domain.UserMessage(m.form.err), "slug taken")
}
