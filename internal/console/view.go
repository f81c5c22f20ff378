// Package console holds the admin console's view, fetch and form-state model.
// It has no terminal dependencies; the tui package drives it from bubbletea's
// event loop and the cobra commands reuse its form sessions.
package console

import (
	"fmt"
	"slices"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

// Tab is one of the console's top-level views
type Tab string

const (
	TabDatasets  Tab = "datasets"
	TabPipelines Tab = "pipelines"
	TabAnalytics Tab = "analytics"
	TabGames     Tab = "games"
	TabProviders Tab = "providers"
)

// Tabs lists the tabs in display order
var Tabs = []Tab{TabDatasets, TabPipelines, TabAnalytics, TabGames, TabProviders}

// ParseTab validates a tab name
func ParseTab(s string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", s)
}

// FilterAll is the sentinel meaning "no restriction"
const FilterAll = "all"

// FilterKind names one of the four filter selections
type FilterKind string

const (
	FilterGame     FilterKind = "game"
	FilterDataType FilterKind = "data_type"
	FilterCategory FilterKind = "category"
	FilterStatus   FilterKind = "status"
)

// Filters holds the four independent filter selections
type Filters struct {
	Game     string
	DataType string
	Category string
	Status   string
}

// DefaultFilters returns every filter set to FilterAll
func DefaultFilters() Filters {
	return Filters{Game: FilterAll, DataType: FilterAll, Category: FilterAll, Status: FilterAll}
}

// Get returns the value of one filter
func (f Filters) Get(kind FilterKind) string {
	switch kind {
	case FilterGame:
		return f.Game
	case FilterDataType:
		return f.DataType
	case FilterCategory:
		return f.Category
	case FilterStatus:
		return f.Status
	}
	return ""
}

// With returns a copy of f with one filter replaced. An empty value means FilterAll.
func (f Filters) With(kind FilterKind, value string) (Filters, error) {
	if value == "" {
		value = FilterAll
	}
	switch kind {
	case FilterGame:
		f.Game = value
	case FilterDataType:
		if value != FilterAll && !types.DataType(value).Valid() {
			return f, domain.NewInvalidInputError(fmt.Sprintf("unknown data type %q", value))
		}
		f.DataType = value
	case FilterCategory:
		if value != FilterAll && !types.Category(value).Valid() {
			return f, domain.NewInvalidInputError(fmt.Sprintf("unknown category %q", value))
		}
		f.Category = value
	case FilterStatus:
		if value != FilterAll && !slices.Contains(types.DatasetStatuses, types.DatasetStatus(value)) {
			return f, domain.NewInvalidInputError(fmt.Sprintf("unknown status %q", value))
		}
		f.Status = value
	default:
		return f, fmt.Errorf("unknown filter %q", kind)
	}
	return f, nil
}

// DatasetFilter converts the selections to the dataset query
func (f Filters) DatasetFilter() types.DatasetFilter {
	return types.DatasetFilter{
		Game:     param(f.Game),
		DataType: param(f.DataType),
		Category: param(f.Category),
		Status:   param(f.Status),
	}
}

// param converts a filter value to the query value sent to the server
func param(value string) string {
	if value == FilterAll {
		return ""
	}
	return value
}

// Operation is one data fetch the console can issue
type Operation string

const (
	OpDatasets    Operation = "datasets"
	OpPipelines   Operation = "pipelines"
	OpAnalytics   Operation = "analytics"
	OpGames       Operation = "games"
	OpGameTags    Operation = "game_tags"
	OpProviders   Operation = "providers"
	OpConnections Operation = "connections"
)

// operationsFor returns the fetches that populate a tab
func operationsFor(tab Tab) []Operation {
	switch tab {
	case TabDatasets:
		return []Operation{OpDatasets}
	case TabPipelines:
		return []Operation{OpPipelines}
	case TabAnalytics:
		return []Operation{OpAnalytics}
	case TabGames:
		return []Operation{OpGames}
	case TabProviders:
		return []Operation{OpProviders, OpConnections}
	}
	return nil
}
