package cmd

import (
	"fmt"
	"os"

	"github.com/rithvikp/relnorm/analysis/proof"
	"github.com/rithvikp/relnorm/ast"
	"github.com/rithvikp/relnorm/report"
	"github.com/spf13/cobra"
)

func newProveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prove FILE",
		Short: "Check the dependency proof in FILE",
		Long: `prove reads a header line of attributes followed by one step per line:

  <dependency> <rule> [<step>,<step>] [<attributes>]

Rules: Given, Reflexivity, Transitivity, Augmentation, Coalescence,
Complementation, Replication, Union, Intersection, Difference.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			parsed, err := ast.ParseProof(f)
			if err != nil {
				return fmt.Errorf("unable to parse %s: %w", args[0], err)
			}
			p, err := proof.New(parsed)
			if err != nil {
				return err
			}

			res, err := proof.Check(p)
			if err != nil {
				return err
			}
			a.logger.Info("proof checked", "steps", len(p.Steps), "valid", res.Valid)

			report.NewTextFormatter(cmd.OutOrStdout()).Proof(res)
			return nil
		},
	}
}
