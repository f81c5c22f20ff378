package types

import (
	"io"
	"time"
)

// DataType enumerates the kinds of training material a dataset can hold
type DataType string

const (
	DataTypeText       DataType = "text"
	DataTypeDialogue   DataType = "dialogue"
	DataTypeImage      DataType = "image"
	DataTypeAudio      DataType = "audio"
	DataTypeStructured DataType = "structured"
)

// DataTypes lists every known data type in display order
var DataTypes = []DataType{DataTypeText, DataTypeDialogue, DataTypeImage, DataTypeAudio, DataTypeStructured}

// Valid reports whether t is a known data type
func (t DataType) Valid() bool {
	for _, known := range DataTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Category enumerates dataset subject areas
type Category string

const (
	CategoryLore       Category = "lore"
	CategoryQuests     Category = "quests"
	CategoryCharacters Category = "characters"
	CategoryItems      Category = "items"
	CategoryMechanics  Category = "mechanics"
	CategoryGeneral    Category = "general"
)

// Categories lists every known category in display order
var Categories = []Category{CategoryLore, CategoryQuests, CategoryCharacters, CategoryItems, CategoryMechanics, CategoryGeneral}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// DatasetStatus is the lifecycle state of a dataset
type DatasetStatus string

const (
	DatasetActive     DatasetStatus = "active"
	DatasetArchived   DatasetStatus = "archived"
	DatasetProcessing DatasetStatus = "processing"
)

// DatasetStatuses lists every dataset status in display order
var DatasetStatuses = []DatasetStatus{DatasetActive, DatasetArchived, DatasetProcessing}

// Dataset is a named, versioned blob of training material for one game
type Dataset struct {
	ID            string         `json:"id"`
	Game          string         `json:"game"`
	Name          string         `json:"name"`
	Description   string         `json:"description,omitempty"`
	DataType      DataType       `json:"data_type"`
	Category      Category       `json:"category"`
	Version       string         `json:"version"`
	SizeBytes     int64          `json:"size_bytes"`
	Status        DatasetStatus  `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	Tags          []string       `json:"tags,omitempty"`
	UsageCount    int64          `json:"usage_count"`
	DownloadCount int64          `json:"download_count"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// DatasetFilter selects which datasets the server returns.
// Empty fields are not sent.
type DatasetFilter struct {
	Game     string
	DataType string
	Category string
	Status   string
}

// DatasetUpload is the metadata half of a dataset upload
type DatasetUpload struct {
	Name        string
	Game        string
	DataType    DataType
	Category    Category
	Description string
	Version     string
	Tags        []string
	Metadata    map[string]any
}

// PipelineStatus is the state of a pipeline's most recent run
type PipelineStatus string

const (
	PipelineRunning   PipelineStatus = "running"
	PipelineCompleted PipelineStatus = "completed"
	PipelineFailed    PipelineStatus = "failed"
	PipelineDraft     PipelineStatus = "draft"
	PipelinePaused    PipelineStatus = "paused"
)

// Pipeline is a named, repeatable processing job associated with a game
type Pipeline struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Game         string         `json:"game"`
	PipelineType string         `json:"pipeline_type"`
	Status       PipelineStatus `json:"status"`
	RunCount     int64          `json:"run_count"`
	SuccessCount int64          `json:"success_count"`
	LastRun      *time.Time     `json:"last_run,omitempty"`
}

// UploadFile is the file half of a dataset upload
type UploadFile struct {
	Name   string
	Reader io.Reader
}
