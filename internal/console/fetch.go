package console

import (
	"context"

	"github.com/ragar/ragarctl/internal/cli/client"
	"github.com/ragar/ragarctl/internal/cli/types"
)

// Fetcher is the remote API as seen by the console. *client.APIClient implements it.
type Fetcher interface {
	ListDatasets(ctx context.Context, filter types.DatasetFilter) ([]types.Dataset, error)
	ListPipelines(ctx context.Context, game string) ([]types.Pipeline, error)
	GetAnalytics(ctx context.Context) (*types.Analytics, error)
	ListGames(ctx context.Context) ([]types.Game, error)
	ListGameTags(ctx context.Context, tagType types.TagType) ([]types.GameTag, error)
	ListProviders(ctx context.Context, providerType types.ProviderType) ([]types.Provider, error)
	ListProviderConnections(ctx context.Context) ([]types.ProviderConnection, error)
}

var _ Fetcher = (*client.APIClient)(nil)

// FetchResult is the outcome of one FetchRequest. Exactly one payload field is
// set on success; Err is set on failure.
type FetchResult struct {
	Request     FetchRequest
	Datasets    []types.Dataset
	Pipelines   []types.Pipeline
	Analytics   *types.Analytics
	Games       []types.Game
	GameTags    []types.GameTag
	Providers   []types.Provider
	Connections []types.ProviderConnection
	Err         error
}

// Run performs one fetch. It never touches controller state; feed the result to Controller.Apply.
func Run(ctx context.Context, f Fetcher, req FetchRequest) FetchResult {
	ctx = client.WithRequestID(ctx, req.RequestID)
	res := FetchResult{Request: req}

	switch req.Op {
	case OpDatasets:
		res.Datasets, res.Err = f.ListDatasets(ctx, req.Filters.DatasetFilter())
	case OpPipelines:
		res.Pipelines, res.Err = f.ListPipelines(ctx, param(req.Filters.Game))
	case OpAnalytics:
		res.Analytics, res.Err = f.GetAnalytics(ctx)
	case OpGames:
		res.Games, res.Err = f.ListGames(ctx)
	case OpGameTags:
		res.GameTags, res.Err = f.ListGameTags(ctx, "")
	case OpProviders:
		res.Providers, res.Err = f.ListProviders(ctx, "")
	case OpConnections:
		res.Connections, res.Err = f.ListProviderConnections(ctx)
	}

	return res
}
