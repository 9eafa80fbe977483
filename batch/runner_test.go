package batch

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/MihaiLupoiu/scenex/scenario"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// captureContent builds a minimal valid captured log for a width x height
// map with one agent per side.
func captureContent(width, height int) string {
	var sb strings.Builder

	sb.WriteString("Referee started\n")
	fmt.Fprintf(&sb, "CAPTURED INPUT: %d %d\n", width, height)

	for y := 0; y < height; y++ {
		sb.WriteString("CAPTURED INPUT:")
		for x := 0; x < width; x++ {
			tile := 0
			if x == 1 && y == 1 {
				tile = scenario.TileLowCover
			}
			fmt.Fprintf(&sb, " %d %d %d", x, y, tile)
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "CAPTURED TURN 1 AGENT INPUT: 1 1 0 0 2 0\n")
	fmt.Fprintf(&sb, "CAPTURED TURN 1 AGENT INPUT: 2 %d 0 0 2 0\n", width-1)
	sb.WriteString("CAPTURED TURN 1 MY_AGENT_COUNT: 1\n")

	return sb.String()
}

func writeSamples(t *testing.T, fs afero.Fs, malformed map[int]bool) []string {
	t.Helper()

	inputs := DefaultInputs()
	for i, path := range inputs {
		content := captureContent(12, 6)
		if malformed[i] {
			content = "Referee started\nCAPTURED INPUT: broken\n"
		}
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	return inputs
}

func TestRun(t *testing.T) {
	r := require.New(t)

	fs := afero.NewMemMapFs()
	writeSamples(t, fs, nil)

	runner := NewRunner(fs, zaptest.NewLogger(t), Config{
		Inputs:    DefaultInputs(),
		OutputDir: "out",
	})

	summary, err := runner.Run(context.Background())
	r.NoError(err)
	r.NotEmpty(summary.RunID)
	r.Len(summary.Reports, 8)
	r.Empty(summary.Failures)

	first := summary.Reports[0]
	r.Equal("samples/sample1.txt", first.Input)
	r.Equal("out/sample1_real.txt", first.Output)
	r.Equal(12, first.Width)
	r.Equal(6, first.Height)
	r.Equal(2, first.Agents)
	r.Equal(1, first.Player0)
	r.Equal(1, first.Player1)

	// every emitted scenario decodes back with the same shape
	for _, rep := range summary.Reports {
		doc, err := scenario.ReadFile(fs, rep.Output)
		r.NoError(err)
		r.Equal(rep.Width, doc.Width)
		r.Equal(rep.Height, doc.Height)
		r.Len(doc.Agents, rep.Agents)
		r.Equal(scenario.TileLowCover, doc.Grid.At(1, 1))
	}
}

func TestRun_MalformedFileDoesNotAbort(t *testing.T) {
	r := require.New(t)

	fs := afero.NewMemMapFs()
	// file #3 has no usable dimensions line
	writeSamples(t, fs, map[int]bool{2: true})

	runner := NewRunner(fs, zaptest.NewLogger(t), Config{Inputs: DefaultInputs()})

	summary, err := runner.Run(context.Background())
	r.NoError(err)
	r.Len(summary.Reports, 7)
	r.Len(summary.Failures, 1)

	r.Equal("samples/sample3.txt", summary.Failures[0].Input)
	r.Contains(summary.Failures[0].Reason, "map dimensions not found")

	exists, err := afero.Exists(fs, "sample3_real.txt")
	r.NoError(err)
	r.False(exists, "failed capture must not produce an output file")

	for _, rep := range summary.Reports {
		exists, err := afero.Exists(fs, rep.Output)
		r.NoError(err)
		r.True(exists, "missing output %s", rep.Output)
	}
}

func TestRun_MissingInput(t *testing.T) {
	r := require.New(t)

	fs := afero.NewMemMapFs()

	runner := NewRunner(fs, zaptest.NewLogger(t), Config{
		Inputs: []string{"samples/nope.txt"},
	})

	summary, err := runner.Run(context.Background())
	r.NoError(err)
	r.Empty(summary.Reports)
	r.Len(summary.Failures, 1)
}

func TestRun_Cancelled(t *testing.T) {
	r := require.New(t)

	fs := afero.NewMemMapFs()
	writeSamples(t, fs, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(fs, zaptest.NewLogger(t), Config{Inputs: DefaultInputs()})

	summary, err := runner.Run(ctx)
	r.ErrorIs(err, context.Canceled)
	r.Empty(summary.Reports)
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "samples/sample1.txt", want: "sample1_real.txt"},
		{input: "samples/sample_scenario3.txt", want: "sample_scenario3_real.txt"},
		{input: "capture.txt", want: "capture_real.txt"},
		{input: "samples/capture.log", want: "capture.log_real.txt"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, OutputName(tt.input))
		})
	}
}
