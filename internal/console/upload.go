package console

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

// ErrNoFileSelected blocks an upload submitted without a file
var ErrNoFileSelected = domain.NewInvalidInputError("select a file to upload")

// Upload form fields
const (
	UploadName        = "name"
	UploadGame        = "game"
	UploadDataType    = "data_type"
	UploadCategory    = "category"
	UploadDescription = "description"
	UploadVersion     = "version"
	UploadTags        = "tags"
	UploadMetadata    = "metadata"
)

// UploadFields lists the upload form's fields in display order
var UploadFields = []string{
	UploadName, UploadGame, UploadDataType, UploadCategory,
	UploadDescription, UploadVersion, UploadTags, UploadMetadata,
}

// UploadDraft is the editable state of the upload form. Tags is a comma-separated
// list and Metadata a JSON object, both as typed by the operator.
type UploadDraft struct {
	Name        string
	Game        string
	DataType    types.DataType
	Category    types.Category
	Description string
	Version     string
	Tags        string
	Metadata    string
}

func defaultUploadDraft() UploadDraft {
	return UploadDraft{
		DataType: types.DataTypeText,
		Category: types.CategoryGeneral,
		Version:  "1.0.0",
	}
}

// Get returns one field's text
func (d UploadDraft) Get(field string) string {
	switch field {
	case UploadName:
		return d.Name
	case UploadGame:
		return d.Game
	case UploadDataType:
		return string(d.DataType)
	case UploadCategory:
		return string(d.Category)
	case UploadDescription:
		return d.Description
	case UploadVersion:
		return d.Version
	case UploadTags:
		return d.Tags
	case UploadMetadata:
		return d.Metadata
	}
	return ""
}

// DatasetUploader posts a dataset. *client.APIClient implements it.
type DatasetUploader interface {
	UploadDataset(ctx context.Context, upload types.DatasetUpload, file types.UploadFile) (*types.Dataset, error)
}

// UploadSession is the dataset upload form
type UploadSession struct {
	open      bool
	draft     UploadDraft
	file      string
	uploading bool
	openFile  func(name string) (io.ReadCloser, error)
}

func NewUploadSession() *UploadSession {
	return &UploadSession{
		draft:    defaultUploadDraft(),
		openFile: func(name string) (io.ReadCloser, error) { return os.Open(name) },
	}
}

// Open resets the form to its defaults and shows it
func (s *UploadSession) Open() {
	s.open = true
	s.draft = defaultUploadDraft()
	s.file = ""
	s.uploading = false
}

// Close discards the draft and the selected file
func (s *UploadSession) Close() {
	s.open = false
	s.draft = defaultUploadDraft()
	s.file = ""
}

func (s *UploadSession) IsOpen() bool { return s.open }

func (s *UploadSession) Draft() UploadDraft { return s.draft }

// Uploading reports whether a submission is in progress
func (s *UploadSession) Uploading() bool { return s.uploading }

// SelectFile chooses the file to upload; an empty path clears the selection
func (s *UploadSession) SelectFile(path string) { s.file = strings.TrimSpace(path) }

func (s *UploadSession) File() string { return s.file }

// Set replaces one field of the draft
func (s *UploadSession) Set(field, value string) error {
	switch field {
	case UploadName:
		s.draft.Name = value
	case UploadGame:
		s.draft.Game = value
	case UploadDataType:
		dt := types.DataType(value)
		if !dt.Valid() {
			return domain.NewInvalidInputError("unknown data type " + value)
		}
		s.draft.DataType = dt
	case UploadCategory:
		c := types.Category(value)
		if !c.Valid() {
			return domain.NewInvalidInputError("unknown category " + value)
		}
		s.draft.Category = c
	case UploadDescription:
		s.draft.Description = value
	case UploadVersion:
		s.draft.Version = value
	case UploadTags:
		s.draft.Tags = value
	case UploadMetadata:
		s.draft.Metadata = value
	default:
		return unknownField(field)
	}
	return nil
}

// Prepare validates the draft and converts it to the upload payload
func (s *UploadSession) Prepare() (types.DatasetUpload, error) {
	if s.file == "" {
		return types.DatasetUpload{}, ErrNoFileSelected
	}
	if err := required("name", s.draft.Name); err != nil {
		return types.DatasetUpload{}, err
	}
	if err := required("game", s.draft.Game); err != nil {
		return types.DatasetUpload{}, err
	}

	var metadata map[string]any
	if raw := strings.TrimSpace(s.draft.Metadata); raw != "" {
		if err := sonic.UnmarshalString(raw, &metadata); err != nil {
			return types.DatasetUpload{}, domain.NewInvalidInputError("metadata must be a JSON object")
		}
	}

	version := strings.TrimSpace(s.draft.Version)
	if version == "" {
		version = defaultUploadDraft().Version
	}

	return types.DatasetUpload{
		Name:        strings.TrimSpace(s.draft.Name),
		Game:        strings.TrimSpace(s.draft.Game),
		DataType:    s.draft.DataType,
		Category:    s.draft.Category,
		Description: s.draft.Description,
		Version:     version,
		Tags:        splitList(s.draft.Tags),
		Metadata:    metadata,
	}, nil
}

// UploadJob is a validated upload, detached from the session so it can run off the UI loop
type UploadJob struct {
	Upload   types.DatasetUpload
	Path     string
	openFile func(name string) (io.ReadCloser, error)
}

// Run opens the file and posts it
func (j UploadJob) Run(ctx context.Context, uploader DatasetUploader) (*types.Dataset, error) {
	f, err := j.openFile(j.Path)
	if err != nil {
		return nil, domain.NewInvalidInputError("cannot read " + j.Path + ": " + err.Error())
	}
	defer f.Close()

	return uploader.UploadDataset(ctx, j.Upload, types.UploadFile{
		Name:   filepath.Base(j.Path),
		Reader: f,
	})
}

// Start validates the draft and marks the session uploading. Without a file it
// returns ErrNoFileSelected and nothing is marked.
func (s *UploadSession) Start() (UploadJob, error) {
	if !s.open {
		return UploadJob{}, ErrSessionClosed
	}
	if s.uploading {
		return UploadJob{}, domain.NewInvalidInputError("an upload is already in progress")
	}
	upload, err := s.Prepare()
	if err != nil {
		return UploadJob{}, err
	}
	s.uploading = true
	return UploadJob{Upload: upload, Path: s.file, openFile: s.openFile}, nil
}

// Finish ends an upload started with Start. Success closes the form; failure
// leaves it open with the draft intact.
func (s *UploadSession) Finish(err error) {
	s.uploading = false
	if err == nil {
		s.Close()
	}
}

// Submit runs Start, the upload and Finish in one call
func (s *UploadSession) Submit(ctx context.Context, uploader DatasetUploader) (*types.Dataset, error) {
	job, err := s.Start()
	if err != nil {
		return nil, err
	}
	dataset, err := job.Run(ctx, uploader)
	s.Finish(err)
	return dataset, err
}
