package types

// Envelope is the success discriminator shared by every REST response
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Succeeded reports the discriminator and the server's error text
func (e Envelope) Succeeded() (bool, string) {
	return e.Success, e.Error
}

// DatasetsResponse is returned by GET /api/admin/training/datasets
type DatasetsResponse struct {
	Envelope
	Datasets []Dataset `json:"datasets"`
}

// DatasetResponse is returned by POST /api/admin/training/datasets
type DatasetResponse struct {
	Envelope
	Dataset *Dataset `json:"dataset"`
}

// PipelinesResponse is returned by GET /api/admin/training/pipelines
type PipelinesResponse struct {
	Envelope
	Pipelines []Pipeline `json:"pipelines"`
}

// AnalyticsResponse is returned by GET /api/admin/analytics
type AnalyticsResponse struct {
	Envelope
	Analytics *Analytics `json:"analytics"`
}

// GraphQLRequest is the body posted to /graphql
type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// GraphQLError is one entry of a GraphQL errors array
type GraphQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLResponse wraps a typed data payload
type GraphQLResponse[T any] struct {
	Data   *T             `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}
