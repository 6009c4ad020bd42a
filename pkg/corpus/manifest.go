package corpus

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest describes a collection of passages: where it comes from and how to read it.
type Manifest struct {
	ID        string     `yaml:"id" json:"id"`
	Title     string     `yaml:"title" json:"title"`
	Language  string     `yaml:"language" json:"language"`
	Source    string     `yaml:"source" json:"source"`
	SourceURL string     `yaml:"source_url" json:"source_url,omitempty"`
	License   string     `yaml:"license" json:"license"`
	DataFile  string     `yaml:"data_file" json:"data_file"`
	Format    FormatSpec `yaml:"format" json:"-"`
}

// FormatSpec describes the data file layout.
// Kind "csv" (default) reads one passage per row; "lines" reads one passage per non-empty line.
type FormatSpec struct {
	Kind          string `yaml:"kind"`
	Delimiter     string `yaml:"delimiter"`
	Encoding      string `yaml:"encoding"`
	HasHeader     bool   `yaml:"has_header"`
	ContentColumn string `yaml:"content_column"`
	TitleColumn   string `yaml:"title_column"`
}

// LoadManifest reads and parses a manifest.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.ID == "" {
		return nil, fmt.Errorf("manifest %s: missing id", path)
	}
	if m.DataFile == "" {
		m.DataFile = "data.csv"
	}
	if m.Language == "" {
		m.Language = "ar"
	}
	switch m.Format.Kind {
	case "":
		m.Format.Kind = "csv"
	case "csv", "lines":
	default:
		return nil, fmt.Errorf("manifest %s: unknown format kind %q", path, m.Format.Kind)
	}
	return &m, nil
}

// WriteManifest writes m as YAML to dir/manifest.yaml.
func WriteManifest(dir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "manifest.yaml"), data, 0o644)
}
