package loader

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"github.com/ragar/ragarctl/internal/cli/types"
	"github.com/ragar/ragarctl/internal/domain"
)

// Resource kinds accepted by apply
const (
	KindGame     = "Game"
	KindProvider = "Provider"
)

// ResourceFile is a resource definition loaded from a YAML file:
//
//	kind: Game
//	id: 6b1f...        # optional; present means update
//	spec:
//	  slug: skyrift
//	  name: Skyrift
type ResourceFile struct {
	Kind string `json:"kind"`
	ID   string `json:"id,omitempty"`

	data []byte
}

type gameFile struct {
	Kind string          `json:"kind"`
	ID   string          `json:"id,omitempty"`
	Spec types.GameInput `json:"spec"`
}

type providerFile struct {
	Kind string              `json:"kind"`
	ID   string              `json:"id,omitempty"`
	Spec types.ProviderInput `json:"spec"`
}

// LoadFromFile reads a resource definition and checks its kind
func LoadFromFile(path string) (*ResourceFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a resource definition from YAML or JSON
func Parse(data []byte) (*ResourceFile, error) {
	var resource ResourceFile
	if err := yaml.Unmarshal(data, &resource); err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("failed to parse yaml: %v", err))
	}

	switch resource.Kind {
	case "":
		return nil, domain.NewInvalidInputError("'kind' field is required")
	case KindGame, KindProvider:
	default:
		return nil, domain.NewInvalidInputError(fmt.Sprintf("invalid kind '%s', must be '%s' or '%s'", resource.Kind, KindGame, KindProvider))
	}

	resource.data = data
	return &resource, nil
}

// IsUpdate reports whether the file names an existing record
func (r *ResourceFile) IsUpdate() bool { return r.ID != "" }

// ToGameInput converts the file to a createGame/updateGame payload
func (r *ResourceFile) ToGameInput() (types.GameInput, error) {
	if r.Kind != KindGame {
		return types.GameInput{}, domain.NewInvalidInputError(fmt.Sprintf("resource kind is '%s', expected '%s'", r.Kind, KindGame))
	}

	var f gameFile
	if err := yaml.UnmarshalStrict(r.data, &f); err != nil {
		return types.GameInput{}, domain.NewInvalidInputError(fmt.Sprintf("invalid game spec: %v", err))
	}
	in := f.Spec

	if in.Slug == "" {
		return in, domain.NewInvalidInputError("spec.slug is required")
	}
	if in.Name == "" {
		return in, domain.NewInvalidInputError("spec.name is required")
	}
	if in.Status == "" {
		in.Status = types.GameAnnounced
	}
	if !in.Status.Valid() {
		return in, domain.NewInvalidInputError(fmt.Sprintf("spec.status '%s' is not a game status", in.Status))
	}
	if in.PlatformProviderIDs == nil {
		in.PlatformProviderIDs = []string{}
	}
	if in.Categories == nil {
		in.Categories = []string{}
	}
	return in, nil
}

// ToProviderInput converts the file to a createProvider/updateProvider payload
func (r *ResourceFile) ToProviderInput() (types.ProviderInput, error) {
	if r.Kind != KindProvider {
		return types.ProviderInput{}, domain.NewInvalidInputError(fmt.Sprintf("resource kind is '%s', expected '%s'", r.Kind, KindProvider))
	}

	// isActive defaults to true when omitted
	f := providerFile{Spec: types.ProviderInput{IsActive: true}}
	if err := yaml.UnmarshalStrict(r.data, &f); err != nil {
		return types.ProviderInput{}, domain.NewInvalidInputError(fmt.Sprintf("invalid provider spec: %v", err))
	}
	in := f.Spec

	if in.Slug == "" {
		return in, domain.NewInvalidInputError("spec.slug is required")
	}
	if in.DisplayName == "" {
		return in, domain.NewInvalidInputError("spec.displayName is required")
	}
	if in.ProviderType == "" {
		return in, domain.NewInvalidInputError("spec.providerType is required")
	}
	if !in.ProviderType.Valid() {
		return in, domain.NewInvalidInputError(fmt.Sprintf("spec.providerType '%s' is not a provider type", in.ProviderType))
	}
	if in.ConnectionType == "" {
		in.ConnectionType = types.ConnectionManual
	}
	if !in.ConnectionType.Valid() {
		return in, domain.NewInvalidInputError(fmt.Sprintf("spec.connectionType '%s' is not a connection type", in.ConnectionType))
	}
	return in, nil
}
