package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/MihaiLupoiu/scenex/capture"
	"github.com/MihaiLupoiu/scenex/scenario"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <capture> <scenario>",
		Short: "Verify a scenario file against its captured log",
		Long: "Re-parses the captured log and the emitted scenario file and\n" +
			"verifies that dimensions and agent count round-tripped.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()

			f, err := fs.Open(args[0])
			if err != nil {
				return fmt.Errorf("open capture: %w", err)
			}
			defer f.Close()

			parsed, err := capture.Parse(f)
			if err != nil {
				return fmt.Errorf("parse capture: %s: %w", args[0], err)
			}

			written, err := scenario.ReadFile(fs, args[1])
			if err != nil {
				return err
			}

			if parsed.Width != written.Width || parsed.Height != written.Height {
				return fmt.Errorf("map mismatch: capture %dx%d, scenario %dx%d",
					parsed.Width, parsed.Height, written.Width, written.Height)
			}
			if len(parsed.Agents) != len(written.Agents) {
				return fmt.Errorf("agent count mismatch: capture %d, scenario %d",
					len(parsed.Agents), len(written.Agents))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "OK: map %dx%d, %d agents\n",
				written.Width, written.Height, len(written.Agents))
			return nil
		},
	}
}
