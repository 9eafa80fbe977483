package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/afero"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/MihaiLupoiu/scenex/capture"
	"github.com/MihaiLupoiu/scenex/scenario"
)

// DefaultInputs is the stock set of captured sample logs.
func DefaultInputs() []string {
	return []string{
		"samples/sample1.txt",
		"samples/sample2.txt",
		"samples/sample3.txt",
		"samples/sample4.txt",
		"samples/sample5.txt",
		"samples/sample_scenario.txt",
		"samples/sample_scenario2.txt",
		"samples/sample_scenario3.txt",
	}
}

type Config struct {
	// Inputs are processed in order, one at a time.
	Inputs []string
	// OutputDir receives the scenario files. Empty means the current
	// directory.
	OutputDir string
	// Throttle caps how many files are processed per second, 0 means no
	// limit.
	Throttle int
}

// FileReport is the per-file part of the batch summary.
type FileReport struct {
	Input  string
	Output string

	Width   int
	Height  int
	Agents  int
	Player0 int
	Player1 int
}

// Failure records one skipped input.
type Failure struct {
	Input  string
	Reason string
}

// Summary aggregates one batch run.
type Summary struct {
	RunID    string
	Reports  []FileReport
	Failures []Failure
}

// Runner converts captured logs into scenario files, one input after
// another. A broken input is logged and skipped, it never stops the batch.
type Runner struct {
	fs     afero.Fs
	logger *zap.Logger
	cfg    Config

	rl ratelimit.Limiter
}

func NewRunner(fs afero.Fs, logger *zap.Logger, cfg Config) *Runner {
	rl := ratelimit.NewUnlimited()
	if cfg.Throttle > 0 {
		rl = ratelimit.New(cfg.Throttle)
	}

	return &Runner{
		fs:     fs,
		logger: logger,
		cfg:    cfg,
		rl:     rl,
	}
}

func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: ulid.Make().String()}
	logger := r.logger.With(zap.String("run_id", summary.RunID))

	logger.Info("start batch", zap.Int("inputs", len(r.cfg.Inputs)))

	if r.cfg.OutputDir != "" {
		if err := r.fs.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
			return summary, fmt.Errorf("create output dir: %w", err)
		}
	}

	for _, input := range r.cfg.Inputs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		r.rl.Take()

		logger.Info("process capture", zap.String("file", input))

		report, err := r.processFile(input)
		if err != nil {
			logger.Warn("skip capture",
				zap.String("file", input),
				zap.Error(err),
			)
			summary.Failures = append(summary.Failures, Failure{
				Input:  input,
				Reason: err.Error(),
			})
			continue
		}

		logger.Info("created scenario",
			zap.String("output", report.Output),
			zap.String("map", fmt.Sprintf("%dx%d", report.Width, report.Height)),
			zap.Int("agents", report.Agents),
			zap.Int("player0", report.Player0),
			zap.Int("player1", report.Player1),
		)
		summary.Reports = append(summary.Reports, *report)
	}

	logger.Info("batch done",
		zap.Int("created", len(summary.Reports)),
		zap.Int("failed", len(summary.Failures)),
	)

	return summary, nil
}

func (r *Runner) processFile(input string) (*FileReport, error) {
	f, err := r.fs.Open(input)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	doc, err := capture.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse capture: %w", err)
	}

	output := filepath.Join(r.cfg.OutputDir, OutputName(input))
	if err := scenario.WriteFile(r.fs, output, doc); err != nil {
		return nil, err
	}

	p0, p1 := doc.PlayerCounts()

	return &FileReport{
		Input:   input,
		Output:  output,
		Width:   doc.Width,
		Height:  doc.Height,
		Agents:  len(doc.Agents),
		Player0: p0,
		Player1: p1,
	}, nil
}

// OutputName maps an input path to its scenario file name: the samples/
// prefix goes away and .txt becomes _real.txt.
func OutputName(input string) string {
	name := strings.ReplaceAll(input, "samples/", "")
	if strings.HasSuffix(name, ".txt") {
		return strings.TrimSuffix(name, ".txt") + "_real.txt"
	}
	return name + "_real.txt"
}
