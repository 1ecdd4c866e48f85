package cmd

import (
	"fmt"

	"github.com/rithvikp/relnorm/report"
	"github.com/spf13/cobra"
)

func newFourthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "4nf FILE",
		Short: "Test the schema in FILE for 4NF and decompose it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := parseFile(args[0])
			if err != nil {
				return err
			}
			s, err := file.Schema(a.schemaOptions()...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			out := report.NewTextFormatter(w)
			_, _ = fmt.Fprintf(w, "Is in 4NF: %t\n\n", s.IsIn4NF())
			return out.Result("Decomposition:", s.Decompose4NF())
		},
	}
}
