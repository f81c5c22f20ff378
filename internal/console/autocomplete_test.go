package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ragar/ragarctl/internal/cli/types"
)

var platformChoices = []Choice{
	{Value: "p1", Name: "steam", DisplayName: "Steam"},
	{Value: "p2", Name: "psn", DisplayName: "PlayStation Network"},
	{Value: "p3", Name: "xbox", DisplayName: "Xbox Live"},
}

func choiceValues(cs []Choice) []string {
	var out []string
	for _, c := range cs {
		out = append(out, c.Value)
	}
	return out
}

func TestAutocomplete_Matching(t *testing.T) {
	tests := []struct {
		search string
		want   []string
	}{
		{"", []string{"p1", "p2", "p3"}},
		{"STEAM", []string{"p1"}},
		{"station", []string{"p2"}},
		{"x", []string{"p3"}},
		{"e", []string{"p1", "p2", "p3"}},
		{"nothing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			a := NewAutocomplete(platformChoices)
			a.SetSearch(tt.search)
			assert.Equal(t, tt.want, choiceValues(a.Suggestions()))
		})
	}
}

func TestAutocomplete_Select(t *testing.T) {
	a := NewAutocomplete(platformChoices)

	a.SetSearch("ste")
	assert.True(t, a.Visible())

	assert.True(t, a.Select("p1"))
	assert.Equal(t, "p1", a.Value())
	assert.Equal(t, "Steam", a.Label())
	assert.Empty(t, a.Search())
	assert.False(t, a.Visible())

	assert.False(t, a.Select("nope"))
	assert.Equal(t, "p1", a.Value())

	a.SetValue("retired-id")
	assert.Equal(t, "retired-id", a.Label())
}

func TestAutocomplete_EmptySearchHides(t *testing.T) {
	a := NewAutocomplete(platformChoices)
	a.Show()
	assert.True(t, a.Visible())
	a.SetSearch("")
	assert.False(t, a.Visible())
}

func TestMultiAutocomplete_NoDuplicates(t *testing.T) {
	m := NewMultiAutocomplete(platformChoices)

	m.SetSearch("st")
	assert.True(t, m.Add("p1"))
	assert.Empty(t, m.Search())
	assert.True(t, m.Visible(), "list stays open for further picks")

	assert.False(t, m.Add("p1"))
	assert.True(t, m.Add("p3"))
	assert.Equal(t, []string{"p1", "p3"}, m.Values())
	assert.Equal(t, []string{"Steam", "Xbox Live"}, m.Labels())

	assert.Equal(t, []string{"p2"}, choiceValues(m.Suggestions()), "selected entries are not suggested")

	assert.True(t, m.Remove("p1"))
	assert.False(t, m.Remove("p1"))
	assert.Equal(t, []string{"p3"}, m.Values())

	m.SetSearch("")
	assert.False(t, m.Visible())
}

func TestMultiAutocomplete_SetValuesDedupes(t *testing.T) {
	m := NewMultiAutocomplete(platformChoices)
	m.SetValues([]string{"p2", "p2", "p1"})
	assert.Equal(t, []string{"p2", "p1"}, m.Values())
}

func TestProviderAndTagChoices(t *testing.T) {
	providers := []types.Provider{
		{ID: "p1", Slug: "steam", DisplayName: "Steam", ProviderType: types.ProviderPlatform},
		{ID: "c1", Slug: "riftworks", DisplayName: "Riftworks", ProviderType: types.ProviderGameCompany},
	}
	assert.Equal(t, []string{"c1"}, choiceValues(ProviderChoices(providers, types.ProviderGameCompany)))
	assert.Equal(t, []string{"p1"}, choiceValues(ProviderChoices(providers, types.ProviderPlatform)))

	tags := []types.GameTag{
		{ID: "1", Name: "rpg", DisplayName: "RPG", TagType: types.TagGenre},
		{ID: "2", Name: "open-world", DisplayName: "Open World", TagType: types.TagCategory},
	}
	assert.Equal(t, []string{"rpg"}, choiceValues(TagChoices(tags, types.TagGenre)))
	assert.Equal(t, []string{"open-world"}, choiceValues(TagChoices(tags, types.TagCategory)))
}
