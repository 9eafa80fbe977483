package batch

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Manifest is the optional YAML description of a batch run, replacing the
// stock sample list.
//
//	samples:
//	  - samples/sample1.txt
//	  - samples/sample2.txt
//	output_dir: out
//	throttle: 2
type Manifest struct {
	Samples   []string `yaml:"samples"`
	OutputDir string   `yaml:"output_dir"`
	Throttle  int      `yaml:"throttle"`
}

func LoadManifest(fs afero.Fs, path string) (*Manifest, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %s: %w", path, err)
	}

	if len(m.Samples) == 0 {
		return nil, fmt.Errorf("manifest lists no samples: %s", path)
	}

	return &m, nil
}

// Config folds the manifest into a runner config.
func (m *Manifest) Config() Config {
	return Config{
		Inputs:    m.Samples,
		OutputDir: m.OutputDir,
		Throttle:  m.Throttle,
	}
}
