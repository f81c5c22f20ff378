package commands

import (
	"fmt"
	"strconv"

	"github.com/AlecAivazis/survey/v2"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/console"
)

const noneOption = "(none)"

// choiceOptions maps autocomplete choices to survey option labels.
// Labels shared by two choices get the value appended.
func choiceOptions(choices []console.Choice) (options []string, values map[string]string) {
	seen := make(map[string]int, len(choices))
	for _, c := range choices {
		seen[c.Label()]++
	}
	values = make(map[string]string, len(choices))
	for _, c := range choices {
		label := c.Label()
		if seen[label] > 1 {
			label = fmt.Sprintf("%s [%s]", label, c.Value)
		}
		options = append(options, label)
		values[label] = c.Value
	}
	return options, values
}

func labelOf(values map[string]string, value string) string {
	for label, v := range values {
		if v == value {
			return label
		}
	}
	return ""
}

// askSingle asks for one autocomplete value; noneOption clears it
func askSingle(message string, ac *console.Autocomplete) error {
	options, values := choiceOptions(ac.Suggestions())
	options = append([]string{noneOption}, options...)

	current := noneOption
	if l := labelOf(values, ac.Value()); l != "" {
		current = l
	} else if v := ac.Value(); v != "" {
		// keep a value the choices no longer list
		current = v
		options = append(options, v)
		values[v] = v
	}

	var picked string
	prompt := &survey.Select{Message: message, Options: options, Default: current}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return fmt.Errorf("selection cancelled")
	}
	if picked == noneOption {
		ac.Clear()
		return nil
	}
	if !ac.Select(values[picked]) {
		ac.SetValue(values[picked])
	}
	return nil
}

// askMulti asks for a set of autocomplete values
func askMulti(message string, ac *console.MultiAutocomplete, choices []console.Choice) error {
	if len(choices) == 0 {
		return nil
	}
	options, values := choiceOptions(choices)

	var defaults []string
	for _, v := range ac.Values() {
		if l := labelOf(values, v); l != "" {
			defaults = append(defaults, l)
		}
	}

	var picked []string
	prompt := &survey.MultiSelect{Message: message, Options: options, Default: defaults}
	if err := survey.AskOne(prompt, &picked); err != nil {
		return fmt.Errorf("selection cancelled")
	}

	selected := make([]string, 0, len(picked))
	for _, label := range picked {
		selected = append(selected, values[label])
	}
	ac.SetValues(selected)
	return nil
}

// askText asks for one text field, defaulting to its current value
func askText(message, current string, required bool) (string, error) {
	var answer string
	opts := []survey.AskOpt{}
	if required {
		opts = append(opts, survey.WithValidator(survey.Required))
	}
	if err := survey.AskOne(&survey.Input{Message: message, Default: current}, &answer, opts...); err != nil {
		return "", fmt.Errorf("input cancelled")
	}
	return answer, nil
}

func askEnum[T ~string](message string, options []T, current T) (string, error) {
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = string(o)
	}
	var answer string
	if err := survey.AskOne(&survey.Select{Message: message, Options: labels, Default: string(current)}, &answer); err != nil {
		return "", fmt.Errorf("selection cancelled")
	}
	return answer, nil
}

// promptGame walks the operator through every field of the game form
func promptGame(s *console.GameSession, providers []types.Provider, tags []types.GameTag) error {
	draft := s.Draft()

	texts := []struct {
		field, message string
		required       bool
	}{
		{console.GameSlug, "Slug:", true},
		{console.GameName, "Name:", true},
	}
	for _, t := range texts {
		answer, err := askText(t.message, draft.Get(t.field), t.required)
		if err != nil {
			return err
		}
		if err := s.Set(t.field, answer); err != nil {
			return err
		}
	}

	status, err := askEnum("Status:", types.GameStatuses, draft.Status)
	if err != nil {
		return err
	}
	if err := s.Set(console.GameStatus, status); err != nil {
		return err
	}

	if err := askSingle("Game company:", s.Company); err != nil {
		return err
	}
	if err := askMulti("Platforms:", s.Platforms, console.ProviderChoices(providers, types.ProviderPlatform)); err != nil {
		return err
	}
	if err := askSingle("Genre:", s.Genre); err != nil {
		return err
	}
	if err := askMulti("Categories:", s.Categories, console.TagChoices(tags, types.TagCategory)); err != nil {
		return err
	}

	optional := []struct{ field, message string }{
		{console.GameFranchise, "Franchise (optional):"},
		{console.GameSeriesNumber, "Series number (optional):"},
		{console.GamePublisher, "Publisher (optional):"},
		{console.GameWebsiteURL, "Website URL (optional):"},
	}
	for _, o := range optional {
		answer, err := askText(o.message, draft.Get(o.field), false)
		if err != nil {
			return err
		}
		if err := s.Set(o.field, answer); err != nil {
			return err
		}
	}
	return nil
}

// promptProvider walks the operator through the provider form. API settings
// are only asked for when the operator opts in or the provider already has them.
func promptProvider(s *console.ProviderSession) error {
	draft := s.Draft()

	for _, t := range []struct {
		field, message string
	}{
		{console.ProviderSlug, "Slug:"},
		{console.ProviderDisplayName, "Display name:"},
	} {
		answer, err := askText(t.message, draft.Get(t.field), true)
		if err != nil {
			return err
		}
		if err := s.Set(t.field, answer); err != nil {
			return err
		}
	}

	providerType, err := askEnum("Provider type:", types.ProviderTypes, draft.ProviderType)
	if err != nil {
		return err
	}
	if err := s.Set(console.ProviderTypeField, providerType); err != nil {
		return err
	}

	connectionType, err := askEnum("Connection type:", types.ConnectionTypes, draft.ConnectionType)
	if err != nil {
		return err
	}
	if err := s.Set(console.ProviderConnection, connectionType); err != nil {
		return err
	}

	active := draft.IsActive
	if err := survey.AskOne(&survey.Confirm{Message: "Active?", Default: active}, &active); err != nil {
		return fmt.Errorf("confirmation cancelled")
	}
	if err := s.Set(console.ProviderActive, strconv.FormatBool(active)); err != nil {
		return err
	}

	withAPI := draft.BaseURL != "" || draft.AuthorizationURL != "" || draft.RateLimitPerDay != ""
	if err := survey.AskOne(&survey.Confirm{Message: "Configure API settings?", Default: withAPI}, &withAPI); err != nil {
		return fmt.Errorf("confirmation cancelled")
	}

	optional := []struct{ field, message string }{
		{console.ProviderHeadquarters, "Headquarters (optional):"},
		{console.ProviderFoundedYear, "Founded year (optional):"},
		{console.ProviderWebsiteURL, "Website URL (optional):"},
	}
	if withAPI {
		optional = append([]struct{ field, message string }{
			{console.ProviderBaseURL, "API base URL:"},
			{console.ProviderDocsURL, "Docs URL:"},
			{console.ProviderRatePerMinute, "Rate limit per minute:"},
			{console.ProviderRatePerDay, "Rate limit per day:"},
			{console.ProviderAuthURL, "Authorization URL:"},
			{console.ProviderTokenURL, "Token URL:"},
			{console.ProviderScopes, "Scopes (comma-separated):"},
			{console.ProviderRedirectURIs, "Redirect URIs (comma-separated):"},
		}, optional...)
	}
	for _, o := range optional {
		answer, err := askText(o.message, draft.Get(o.field), false)
		if err != nil {
			return err
		}
		if err := s.Set(o.field, answer); err != nil {
			return err
		}
	}
	return nil
}
