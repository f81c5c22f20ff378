package client

const (
	// Admin API prefix
	apiAdminPrefix = "/api/admin"

	// Authentication endpoints
	endpointLogin = "/api/auth/login"

	// Training endpoints
	endpointDatasets  = apiAdminPrefix + "/training/datasets"  // GET (filtered list), POST (multipart upload)
	endpointPipelines = apiAdminPrefix + "/training/pipelines" // GET
	endpointAnalytics = apiAdminPrefix + "/analytics"          // GET

	// GraphQL endpoint for games, providers, connections and tags
	endpointGraphQL = "/graphql"
)

// Query parameter names for the dataset and pipeline lists
const (
	paramGame     = "game"
	paramDataType = "data_type"
	paramCategory = "category"
	paramStatus   = "status"
)

// Multipart field names of the dataset upload
const (
	formName        = "name"
	formGame        = "game"
	formDataType    = "data_type"
	formCategory    = "category"
	formDescription = "description"
	formVersion     = "version"
	formTags        = "tags"
	formMetadata    = "metadata"
	formFile        = "file"
)
