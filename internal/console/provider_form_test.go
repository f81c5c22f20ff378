package console

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

func TestProviderSession_Defaults(t *testing.T) {
	s := NewProviderSession()
	s.Open(nil)

	d := s.Draft()
	assert.Equal(t, types.ProviderPlatform, d.ProviderType)
	assert.Equal(t, types.ConnectionManual, d.ConnectionType)
	assert.True(t, d.IsActive)
	assert.Equal(t, ModalCreating, s.Mode())
}

func TestProviderSession_EditPopulatesDraft(t *testing.T) {
	s := NewProviderSession()
	s.Open(&types.Provider{
		ID:             "p1",
		Slug:           "steam",
		DisplayName:    "Steam",
		ProviderType:   types.ProviderPlatform,
		ConnectionType: types.ConnectionOpenID,
		IsActive:       true,
		APIConfig: &types.APIConfig{
			BaseURL:            "https://api.steampowered.com",
			RateLimitPerMinute: ptr(100),
			Scopes:             []string{"read", "profile"},
		},
		FoundedYear: ptr(2003),
	})

	d := s.Draft()
	assert.Equal(t, "https://api.steampowered.com", d.BaseURL)
	assert.Equal(t, "100", d.RateLimitPerMinute)
	assert.Equal(t, "read, profile", d.Scopes)
	assert.Equal(t, "2003", d.FoundedYear)
	assert.Equal(t, "true", d.Get(ProviderActive))
}

func TestProviderSession_SetValidation(t *testing.T) {
	s := NewProviderSession()
	s.Open(nil)

	assert.ErrorIs(t, s.Set("region", "eu"), ErrUnknownField)
	assert.True(t, domain.IsInvalidInput(s.Set(ProviderTypeField, "store")))
	assert.True(t, domain.IsInvalidInput(s.Set(ProviderConnection, "magic")))
	assert.True(t, domain.IsInvalidInput(s.Set(ProviderActive, "maybe")))
	require.NoError(t, s.Set(ProviderActive, "false"))
	assert.False(t, s.Draft().IsActive)
}

func TestProviderSession_PrepareOmitsEmptyConfig(t *testing.T) {
	s := NewProviderSession()
	s.Open(nil)
	require.NoError(t, s.Set(ProviderSlug, "riftworks"))
	require.NoError(t, s.Set(ProviderDisplayName, "Riftworks"))
	require.NoError(t, s.Set(ProviderTypeField, "game_company"))

	in, err := s.Prepare()
	require.NoError(t, err)
	assert.Nil(t, in.APIConfig)
	assert.Equal(t, types.ProviderGameCompany, in.ProviderType)

	require.NoError(t, s.Set(ProviderRatePerDay, "lots"))
	_, err = s.Prepare()
	assert.True(t, domain.IsInvalidInput(err))
}

func TestProviderSession_RequiredFields(t *testing.T) {
	s := NewProviderSession()
	s.Open(nil)
	require.NoError(t, s.Set(ProviderSlug, "steam"))

	_, err := s.Prepare()
	assert.True(t, domain.IsInvalidInput(err))
	assert.Contains(t, domain.UserMessage(err), "display name")
}

func TestProviderSession_Submit(t *testing.T) {
	api := &fakeAPI{}
	s := NewProviderSession()
	s.Open(&types.Provider{ID: "p1", Slug: "steam", DisplayName: "Steam",
		ProviderType: types.ProviderPlatform, ConnectionType: types.ConnectionOpenID})
	require.NoError(t, s.Set(ProviderScopes, "read,write,read"))
	require.NoError(t, s.Set(ProviderTokenURL, "https://steam.example/token"))

	p, err := s.Submit(context.Background(), api)
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, []string{"updateProvider"}, api.Calls())
	require.NotNil(t, api.lastProvIn.APIConfig)
	assert.Equal(t, []string{"read", "write"}, api.lastProvIn.APIConfig.Scopes)
	assert.False(t, s.IsOpen())
}

func TestProviderSession_SubmitFailure(t *testing.T) {
	api := &fakeAPI{err: domain.NewNotFoundError("provider", "p1")}
	s := NewProviderSession()
	s.Open(&types.Provider{ID: "p1", Slug: "steam", DisplayName: "Steam",
		ProviderType: types.ProviderPlatform, ConnectionType: types.ConnectionManual})

	_, err := s.Submit(context.Background(), api)
	assert.True(t, domain.IsNotFound(err))
	assert.True(t, s.IsOpen())
	assert.False(t, s.Saving())
}
