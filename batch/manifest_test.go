package batch

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	r := require.New(t)

	fs := afero.NewMemMapFs()
	data := `samples:
  - samples/sample1.txt
  - captures/extra.txt
output_dir: out
throttle: 2
`
	r.NoError(afero.WriteFile(fs, "batch.yaml", []byte(data), 0o644))

	m, err := LoadManifest(fs, "batch.yaml")
	r.NoError(err)

	cfg := m.Config()
	r.Equal([]string{"samples/sample1.txt", "captures/extra.txt"}, cfg.Inputs)
	r.Equal("out", cfg.OutputDir)
	r.Equal(2, cfg.Throttle)
}

func TestLoadManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty sample list", data: "output_dir: out\n"},
		{name: "not yaml", data: "{samples: ["},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "batch.yaml", []byte(tt.data), 0o644))

			_, err := LoadManifest(fs, "batch.yaml")
			require.Error(t, err)
		})
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(afero.NewMemMapFs(), "nope.yaml")
	require.Error(t, err)
}
