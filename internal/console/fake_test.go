package console

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/ragar/ragarctl/internal/cli/types"
)

// fakeAPI records calls and serves canned data for every console interface
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	datasets    []types.Dataset
	pipelines   []types.Pipeline
	analytics   *types.Analytics
	games       []types.Game
	tags        []types.GameTag
	providers   []types.Provider
	connections []types.ProviderConnection
	err         error

	lastFilter   types.DatasetFilter
	lastGame     string
	lastUpload   types.DatasetUpload
	lastFile     string
	lastFileBody string
	lastGameIn   types.GameInput
	lastProvIn   types.ProviderInput
	lastID       string
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ListDatasets(_ context.Context, filter types.DatasetFilter) ([]types.Dataset, error) {
	f.record("datasets")
	f.lastFilter = filter
	return f.datasets, f.err
}

func (f *fakeAPI) ListPipelines(_ context.Context, game string) ([]types.Pipeline, error) {
	f.record("pipelines")
	f.lastGame = game
	return f.pipelines, f.err
}

func (f *fakeAPI) GetAnalytics(context.Context) (*types.Analytics, error) {
	f.record("analytics")
	return f.analytics, f.err
}

func (f *fakeAPI) ListGames(context.Context) ([]types.Game, error) {
	f.record("games")
	return f.games, f.err
}

func (f *fakeAPI) ListGameTags(context.Context, types.TagType) ([]types.GameTag, error) {
	f.record("game_tags")
	return f.tags, f.err
}

func (f *fakeAPI) ListProviders(context.Context, types.ProviderType) ([]types.Provider, error) {
	f.record("providers")
	return f.providers, f.err
}

func (f *fakeAPI) ListProviderConnections(context.Context) ([]types.ProviderConnection, error) {
	f.record("connections")
	return f.connections, f.err
}

func (f *fakeAPI) UploadDataset(_ context.Context, upload types.DatasetUpload, file types.UploadFile) (*types.Dataset, error) {
	f.record("upload")
	f.lastUpload = upload
	f.lastFile = file.Name
	body, _ := io.ReadAll(file.Reader)
	f.lastFileBody = string(body)
	if f.err != nil {
		return nil, f.err
	}
	return &types.Dataset{ID: "ds-new", Name: upload.Name}, nil
}

func (f *fakeAPI) CreateGame(_ context.Context, in types.GameInput) (*types.Game, error) {
	f.record("createGame")
	f.lastGameIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &types.Game{ID: "g-new", Slug: in.Slug, Name: in.Name}, nil
}

func (f *fakeAPI) UpdateGame(_ context.Context, id string, in types.GameInput) (*types.Game, error) {
	f.record("updateGame")
	f.lastID = id
	f.lastGameIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &types.Game{ID: id, Slug: in.Slug, Name: in.Name}, nil
}

func (f *fakeAPI) CreateProvider(_ context.Context, in types.ProviderInput) (*types.Provider, error) {
	f.record("createProvider")
	f.lastProvIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &types.Provider{ID: "p-new", Slug: in.Slug}, nil
}

func (f *fakeAPI) UpdateProvider(_ context.Context, id string, in types.ProviderInput) (*types.Provider, error) {
	f.record("updateProvider")
	f.lastID = id
	f.lastProvIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &types.Provider{ID: id, Slug: in.Slug}, nil
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }
