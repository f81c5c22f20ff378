package types

import "time"

// Analytics is a read-only aggregate snapshot, replaced whole on every fetch
type Analytics struct {
	Datasets       DatasetStats    `json:"datasets"`
	Pipelines      PipelineStats   `json:"pipelines"`
	Storage        StorageStats    `json:"storage"`
	RecentActivity []ActivityEntry `json:"recent_activity"`
}

// DatasetStats counts datasets by game, data type and category
type DatasetStats struct {
	Total      int            `json:"total"`
	ByGame     map[string]int `json:"by_game"`
	ByType     map[string]int `json:"by_type"`
	ByCategory map[string]int `json:"by_category"`
}

// PipelineStats counts pipelines by status
type PipelineStats struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
}

// StorageStats totals the stored dataset bytes
type StorageStats struct {
	TotalBytes   int64 `json:"total_bytes"`
	DatasetCount int   `json:"dataset_count"`
}

// ActivityEntry is one row of the recent-activity log
type ActivityEntry struct {
	Actor        string         `json:"actor,omitempty"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceName string         `json:"resource_name"`
	Timestamp    time.Time      `json:"timestamp"`
	Details      map[string]any `json:"details,omitempty"`
}
