package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

const (
	gameFields = `id slug name status gameCompanyProviderId platformProviderIds genre categories
		franchise seriesNumber publisher websiteUrl`

	providerFields = `id slug displayName providerType connectionType isActive
		apiConfig { baseUrl docsUrl rateLimitPerMinute rateLimitPerDay authorizationUrl tokenUrl scopes redirectUris }
		headquarters foundedYear websiteUrl`

	connectionFields = `id providerId isActive lastSuccessAt lastErrorAt lastError requestsToday dailyLimit environment`

	tagFields = `id name displayName tagType`
)

var (
	queryAllGames            = `query AllGames { allGames { ` + gameFields + ` } }`
	queryGameProviders       = `query GameProviders($type: String) { gameProviders(type: $type) { ` + providerFields + ` } }`
	queryProviderConnections = `query ProviderConnections { providerConnections { ` + connectionFields + ` } }`
	queryGameTags            = `query GameTags($type: String) { gameTags(type: $type) { ` + tagFields + ` } }`

	mutationCreateGame     = `mutation CreateGame($input: GameInput!) { createGame(input: $input) { ` + gameFields + ` } }`
	mutationUpdateGame     = `mutation UpdateGame($id: ID!, $input: GameInput!) { updateGame(id: $id, input: $input) { ` + gameFields + ` } }`
	mutationCreateProvider = `mutation CreateProvider($input: ProviderInput!) { createProvider(input: $input) { ` + providerFields + ` } }`
	mutationUpdateProvider = `mutation UpdateProvider($id: ID!, $input: ProviderInput!) { updateProvider(id: $id, input: $input) { ` + providerFields + ` } }`
)

// ListGames runs the allGames query
func (c *APIClient) ListGames(ctx context.Context) ([]types.Game, error) {
	data, err := graphql[struct {
		AllGames []types.Game `json:"allGames"`
	}](ctx, c, "list games", queryAllGames, nil)
	if err != nil {
		return nil, err
	}
	return nonNil(data.AllGames), nil
}

// ListProviders runs the gameProviders query. An empty providerType lists all providers.
func (c *APIClient) ListProviders(ctx context.Context, providerType types.ProviderType) ([]types.Provider, error) {
	vars := map[string]any{}
	if providerType != "" {
		vars["type"] = string(providerType)
	}

	data, err := graphql[struct {
		GameProviders []types.Provider `json:"gameProviders"`
	}](ctx, c, "list providers", queryGameProviders, vars)
	if err != nil {
		return nil, err
	}
	return nonNil(data.GameProviders), nil
}

// ListProviderConnections runs the providerConnections query
func (c *APIClient) ListProviderConnections(ctx context.Context) ([]types.ProviderConnection, error) {
	data, err := graphql[struct {
		ProviderConnections []types.ProviderConnection `json:"providerConnections"`
	}](ctx, c, "list provider connections", queryProviderConnections, nil)
	if err != nil {
		return nil, err
	}
	return nonNil(data.ProviderConnections), nil
}

// ListGameTags runs the gameTags query. An empty tagType lists both vocabularies.
func (c *APIClient) ListGameTags(ctx context.Context, tagType types.TagType) ([]types.GameTag, error) {
	vars := map[string]any{}
	if tagType != "" {
		vars["type"] = string(tagType)
	}

	data, err := graphql[struct {
		GameTags []types.GameTag `json:"gameTags"`
	}](ctx, c, "list game tags", queryGameTags, vars)
	if err != nil {
		return nil, err
	}
	return nonNil(data.GameTags), nil
}

// CreateGame runs the createGame mutation
func (c *APIClient) CreateGame(ctx context.Context, input types.GameInput) (*types.Game, error) {
	data, err := graphql[struct {
		CreateGame *types.Game `json:"createGame"`
	}](ctx, c, "create game", mutationCreateGame, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	if data.CreateGame == nil {
		return nil, domain.NewProtocolError("create game", "mutation returned no game")
	}
	return data.CreateGame, nil
}

// UpdateGame runs the updateGame mutation
func (c *APIClient) UpdateGame(ctx context.Context, id string, input types.GameInput) (*types.Game, error) {
	data, err := graphql[struct {
		UpdateGame *types.Game `json:"updateGame"`
	}](ctx, c, "update game", mutationUpdateGame, map[string]any{"id": id, "input": input})
	if err != nil {
		return nil, err
	}
	if data.UpdateGame == nil {
		return nil, domain.NewNotFoundError("Game", id)
	}
	return data.UpdateGame, nil
}

// CreateProvider runs the createProvider mutation
func (c *APIClient) CreateProvider(ctx context.Context, input types.ProviderInput) (*types.Provider, error) {
	data, err := graphql[struct {
		CreateProvider *types.Provider `json:"createProvider"`
	}](ctx, c, "create provider", mutationCreateProvider, map[string]any{"input": input})
	if err != nil {
		return nil, err
	}
	if data.CreateProvider == nil {
		return nil, domain.NewProtocolError("create provider", "mutation returned no provider")
	}
	return data.CreateProvider, nil
}

// UpdateProvider runs the updateProvider mutation
func (c *APIClient) UpdateProvider(ctx context.Context, id string, input types.ProviderInput) (*types.Provider, error) {
	data, err := graphql[struct {
		UpdateProvider *types.Provider `json:"updateProvider"`
	}](ctx, c, "update provider", mutationUpdateProvider, map[string]any{"id": id, "input": input})
	if err != nil {
		return nil, err
	}
	if data.UpdateProvider == nil {
		return nil, domain.NewNotFoundError("Provider", id)
	}
	return data.UpdateProvider, nil
}

// graphql posts one operation to /graphql and returns its data object.
// A non-empty errors array is a protocol failure even when data is present.
func graphql[T any](ctx context.Context, c *APIClient, op, query string, vars map[string]any) (*T, error) {
	if err := c.requireCredentials(op); err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		vars = nil
	}

	bodyBytes, err := sonic.Marshal(types.GraphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointGraphQL)
	req.Header.Set("Authorization", c.creds.Authorization())
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.SetBody(bodyBytes)

	if err := c.send(ctx, op, req, resp); err != nil {
		return nil, err
	}

	var gqlResp types.GraphQLResponse[T]
	if err := sonic.Unmarshal(resp.Body(), &gqlResp); err != nil {
		return nil, domain.NewProtocolError(op, fmt.Sprintf("malformed response: %v", err))
	}
	if len(gqlResp.Errors) > 0 {
		messages := make([]string, 0, len(gqlResp.Errors))
		for _, e := range gqlResp.Errors {
			messages = append(messages, e.Message)
		}
		return nil, domain.NewProtocolError(op, strings.Join(messages, "; "))
	}
	if gqlResp.Data == nil {
		return nil, domain.NewProtocolError(op, "response carried no data")
	}

	return gqlResp.Data, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
