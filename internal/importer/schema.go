package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the top-level YAML structure of a project manifest.
type Manifest struct {
	Projects []ProjectEntry `yaml:"projects" validate:"required,min=1,dive"`
}

// ProjectEntry describes one project file. Path may be relative to the
// manifest's directory. References name other projects by ID, or by the
// path of another entry in the same manifest.
type ProjectEntry struct {
	ID                 string   `yaml:"id,omitempty" validate:"omitempty,uuid"`
	Name               string   `yaml:"name" validate:"required"`
	Path               string   `yaml:"path" validate:"required"`
	References         []string `yaml:"references,omitempty" validate:"dive,required"`
	SourceControlBound bool     `yaml:"scc_bound,omitempty"`
}

// ParseManifest decodes a YAML manifest. Unknown keys are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseManifest(data)
}
