package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

func ops(reqs []FetchRequest) []Operation {
	out := make([]Operation, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, r.Op)
	}
	return out
}

func TestController_Defaults(t *testing.T) {
	c := NewController()

	assert.Equal(t, TabDatasets, c.Tab())
	assert.Equal(t, DefaultFilters(), c.Filters())
	assert.False(t, c.Loading())

	reqs := c.Start()
	assert.Equal(t, []Operation{OpDatasets}, ops(reqs))
	assert.True(t, c.Loading())
}

func TestController_SetTabFetchesActiveTabOnly(t *testing.T) {
	tests := []struct {
		tab  Tab
		want []Operation
	}{
		{TabPipelines, []Operation{OpPipelines}},
		{TabAnalytics, []Operation{OpAnalytics}},
		{TabGames, []Operation{OpGames, OpGameTags, OpProviders}},
		{TabProviders, []Operation{OpProviders, OpConnections}},
	}

	for _, tt := range tests {
		t.Run(string(tt.tab), func(t *testing.T) {
			c := NewController()
			assert.Equal(t, tt.want, ops(c.SetTab(tt.tab)))
			assert.Equal(t, tt.tab, c.Tab())
		})
	}
}

func TestController_SameTabNoFetch(t *testing.T) {
	c := NewController()
	assert.Empty(t, c.SetTab(TabDatasets))
}

func TestController_FilterOnPipelinesTabNeverFetchesDatasets(t *testing.T) {
	c := NewController(WithInitialTab(TabPipelines))

	reqs, err := c.SetFilter(FilterGame, "skyrift")
	require.NoError(t, err)
	assert.Equal(t, []Operation{OpPipelines}, ops(reqs))
	assert.Equal(t, "skyrift", reqs[0].Filters.Game)

	reqs, err = c.SetFilter(FilterCategory, "lore")
	require.NoError(t, err)
	assert.NotContains(t, ops(reqs), OpDatasets)
}

func TestController_SetFilter(t *testing.T) {
	c := NewController()

	reqs, err := c.SetFilter(FilterDataType, "dialogue")
	require.NoError(t, err)
	assert.Equal(t, []Operation{OpDatasets}, ops(reqs))
	assert.Equal(t, "dialogue", c.Filters().DataType)

	reqs, err = c.SetFilter(FilterDataType, "dialogue")
	require.NoError(t, err)
	assert.Empty(t, reqs, "unchanged value")

	_, err = c.SetFilter(FilterDataType, "")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, c.Filters().DataType)

	_, err = c.SetFilter("colour", "red")
	assert.Error(t, err)
}

func TestController_GameReferencesLoadedOnce(t *testing.T) {
	c := NewController()
	api := &fakeAPI{
		tags:      []types.GameTag{{ID: "t1", Name: "rpg", TagType: types.TagGenre}},
		providers: []types.Provider{{ID: "p1", DisplayName: "Lumen Works", ProviderType: types.ProviderGameCompany}},
	}

	for _, req := range c.SetTab(TabGames) {
		require.True(t, c.Apply(Run(context.Background(), api, req)))
	}
	assert.Len(t, c.State().GameTags, 1)
	assert.Len(t, c.State().Providers, 1)

	c.SetTab(TabDatasets)
	assert.Equal(t, []Operation{OpGames}, ops(c.SetTab(TabGames)))
	assert.Equal(t, []Operation{OpGames}, ops(c.Refresh()))
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	c := NewController()
	first := c.Start()[0]

	reqs, err := c.SetFilter(FilterGame, "skyrift")
	require.NoError(t, err)
	second := reqs[0]
	assert.Greater(t, second.Token, first.Token)
	assert.NotEqual(t, first.RequestID, second.RequestID)

	fresh := FetchResult{Request: second, Datasets: []types.Dataset{{ID: "new"}}}
	require.True(t, c.Apply(fresh))
	assert.False(t, c.Loading())

	stale := FetchResult{Request: first, Datasets: []types.Dataset{{ID: "old"}}}
	assert.False(t, c.Apply(stale))
	assert.Equal(t, "new", c.State().Datasets[0].ID)
	assert.False(t, c.Loading())
}

func TestController_StaleResponseDoesNotClearLoading(t *testing.T) {
	c := NewController()
	first := c.Start()[0]
	_ = c.Refresh()

	assert.False(t, c.Apply(FetchResult{Request: first}))
	assert.True(t, c.Loading())
}

func TestController_ProvidersTabLoadingUntilBothResolve(t *testing.T) {
	c := NewController()
	reqs := c.SetTab(TabProviders)
	require.Len(t, reqs, 2)

	c.Apply(FetchResult{Request: reqs[0], Providers: []types.Provider{{ID: "p1"}}})
	assert.True(t, c.Loading())

	c.Apply(FetchResult{Request: reqs[1], Connections: []types.ProviderConnection{{ID: "c1"}}})
	assert.False(t, c.Loading())
}

func TestController_FailedFetchKeepsStateAndRecords(t *testing.T) {
	api := &fakeAPI{datasets: []types.Dataset{{ID: "d1"}, {ID: "d2"}}}
	c := NewController()

	require.True(t, c.Apply(Run(context.Background(), api, c.Start()[0])))
	require.Len(t, c.State().Datasets, 2)

	api.err = domain.NewProtocolError("list datasets", "db down")
	require.True(t, c.Apply(Run(context.Background(), api, c.Refresh()[0])))

	assert.Len(t, c.State().Datasets, 2, "prior state kept")
	assert.False(t, c.Loading())

	diag, ok := c.LastDiagnostic()
	require.True(t, ok)
	assert.Equal(t, OpDatasets, diag.Op)
	assert.Equal(t, "list datasets: db down", diag.Message)
	assert.NotEmpty(t, diag.RequestID)
	assert.True(t, domain.IsProtocol(diag.Err))
}

func TestController_DiagnosticsBounded(t *testing.T) {
	c := NewController(WithDiagnosticsLimit(3))
	for i := 0; i < 5; i++ {
		c.Record(OpDatasets, errBoom)
	}
	assert.Len(t, c.Diagnostics(), 3)
}

func TestController_ReferenceRequests(t *testing.T) {
	c := NewController()

	assert.Equal(t, []Operation{OpGameTags, OpProviders}, ops(c.ReferenceRequests()))
	assert.Empty(t, c.ReferenceRequests(), "already in flight")
}

func TestRun_PassesFilters(t *testing.T) {
	api := &fakeAPI{}
	c := NewController()
	_, err := c.SetFilter(FilterCategory, "quests")
	require.NoError(t, err)
	reqs, err := c.SetFilter(FilterStatus, "active")
	require.NoError(t, err)

	res := Run(context.Background(), api, reqs[0])
	require.NoError(t, res.Err)
	assert.Equal(t, types.DatasetFilter{Category: "quests", Status: "active"}, api.lastFilter)

	reqs = c.SetTab(TabPipelines)
	Run(context.Background(), api, reqs[0])
	assert.Equal(t, "", api.lastGame, "all is not sent")
}

func TestRun_OneCallPerOperation(t *testing.T) {
	api := &fakeAPI{}
	c := NewController()

	for _, req := range c.SetTab(TabProviders) {
		c.Apply(Run(context.Background(), api, req))
	}
	assert.Equal(t, []string{"providers", "connections"}, api.Calls())
}

func TestController_SetFilterRejectsUnknownValues(t *testing.T) {
	c := NewController()

	_, err := c.SetFilter(FilterCategory, "recipes")
	require.Error(t, err)
	assert.True(t, domain.IsInvalidInput(err))
	assert.Equal(t, FilterAll, c.Filters().Category)
}
