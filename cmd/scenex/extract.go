package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MihaiLupoiu/scenex/batch"
)

func newExtractCmd(debug *bool) *cobra.Command {
	var (
		manifestPath string
		outputDir    string
		throttle     int
	)

	cmd := &cobra.Command{
		Use:   "extract [capture...]",
		Short: "Convert captured logs into scenario files",
		Long: "Converts captured referee logs into flat scenario files for the\n" +
			"offline tester. Without arguments the stock sample set is processed;\n" +
			"a manifest replaces it entirely.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(*debug)
			if err != nil {
				return err
			}
			defer logger.Sync()

			fs := afero.NewOsFs()

			cfg := batch.Config{
				Inputs:    batch.DefaultInputs(),
				OutputDir: outputDir,
				Throttle:  throttle,
			}
			if len(args) > 0 {
				cfg.Inputs = args
			}
			if manifestPath != "" {
				m, err := batch.LoadManifest(fs, manifestPath)
				if err != nil {
					logger.Error("load manifest", zap.Error(err))
					return err
				}
				cfg = m.Config()
				if outputDir != "" {
					cfg.OutputDir = outputDir
				}
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			runner := batch.NewRunner(fs, logger, cfg)

			summary, err := runner.Run(ctx)
			if err != nil {
				logger.Error("batch aborted", zap.Error(err))
				return err
			}

			printSummary(cmd, summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to a YAML batch manifest")
	cmd.Flags().StringVarP(&outputDir, "out", "o", "", "Directory for the scenario files")
	cmd.Flags().IntVar(&throttle, "throttle", 0, "Max captures processed per second (0 = unlimited)")

	return cmd
}

func printSummary(cmd *cobra.Command, s *batch.Summary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Created %d scenarios, %d captures failed\n",
		len(s.Reports), len(s.Failures))

	for _, r := range s.Reports {
		fmt.Fprintf(out, "  %s: map %dx%d, agents %d (Player0=%d, Player1=%d)\n",
			r.Output, r.Width, r.Height, r.Agents, r.Player0, r.Player1)
	}
	for _, f := range s.Failures {
		fmt.Fprintf(out, "  %s: FAILED: %s\n", f.Input, f.Reason)
	}
}
