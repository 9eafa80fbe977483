package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/MihaiLupoiu/scenex/scenario"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <scenario>",
		Short: "Print a scenario file as an ASCII map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := scenario.ReadFile(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Map %dx%d\n", doc.Width, doc.Height)
			fmt.Fprint(out, scenario.Render(doc))

			p0, p1 := doc.PlayerCounts()
			fmt.Fprintf(out, "Agents: %d (Player0=%d, Player1=%d)\n",
				len(doc.Agents), p0, p1)

			return nil
		},
	}
}
