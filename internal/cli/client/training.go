package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

// ListDatasets lists datasets matching filter. Empty filter fields are omitted.
func (c *APIClient) ListDatasets(ctx context.Context, filter types.DatasetFilter) ([]types.Dataset, error) {
	query := url.Values{}
	setParam(query, paramGame, filter.Game)
	setParam(query, paramDataType, filter.DataType)
	setParam(query, paramCategory, filter.Category)
	setParam(query, paramStatus, filter.Status)

	var listResp types.DatasetsResponse
	if err := c.getJSON(ctx, "list datasets", endpointDatasets, query, &listResp); err != nil {
		return nil, err
	}
	if listResp.Datasets == nil {
		return []types.Dataset{}, nil
	}
	return listResp.Datasets, nil
}

// ListPipelines lists pipelines, optionally restricted to one game
func (c *APIClient) ListPipelines(ctx context.Context, game string) ([]types.Pipeline, error) {
	query := url.Values{}
	setParam(query, paramGame, game)

	var listResp types.PipelinesResponse
	if err := c.getJSON(ctx, "list pipelines", endpointPipelines, query, &listResp); err != nil {
		return nil, err
	}
	if listResp.Pipelines == nil {
		return []types.Pipeline{}, nil
	}
	return listResp.Pipelines, nil
}

// GetAnalytics fetches the aggregate analytics snapshot
func (c *APIClient) GetAnalytics(ctx context.Context) (*types.Analytics, error) {
	const op = "fetch analytics"

	var analyticsResp types.AnalyticsResponse
	if err := c.getJSON(ctx, op, endpointAnalytics, nil, &analyticsResp); err != nil {
		return nil, err
	}
	if analyticsResp.Analytics == nil {
		return nil, domain.NewProtocolError(op, "response carried no analytics")
	}
	return analyticsResp.Analytics, nil
}

// UploadDataset posts a dataset as multipart form data
func (c *APIClient) UploadDataset(ctx context.Context, upload types.DatasetUpload, file types.UploadFile) (*types.Dataset, error) {
	const op = "upload dataset"

	if err := c.requireCredentials(op); err != nil {
		return nil, err
	}
	if file.Reader == nil || file.Name == "" {
		return nil, domain.NewInvalidInputError("a file must be selected before uploading")
	}

	tags := upload.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := sonic.MarshalString(tags)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tags: %w", err)
	}

	metadata := upload.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	metadataJSON, err := sonic.MarshalString(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.server + endpointDatasets)
	req.Header.Set("Authorization", c.creds.Authorization())
	req.SetMultipartFormData(map[string]string{
		formName:        upload.Name,
		formGame:        upload.Game,
		formDataType:    string(upload.DataType),
		formCategory:    string(upload.Category),
		formDescription: upload.Description,
		formVersion:     upload.Version,
		formTags:        tagsJSON,
		formMetadata:    metadataJSON,
	})
	req.SetFileReader(formFile, file.Name, file.Reader)

	if err := c.send(ctx, op, req, resp); err != nil {
		return nil, err
	}

	var uploadResp types.DatasetResponse
	if err := decodeEnvelope(op, resp.Body(), &uploadResp); err != nil {
		return nil, err
	}
	if uploadResp.Dataset == nil {
		return nil, domain.NewProtocolError(op, "response carried no dataset")
	}
	return uploadResp.Dataset, nil
}

func setParam(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
