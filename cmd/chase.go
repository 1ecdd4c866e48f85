package cmd

import (
	"fmt"

	"github.com/rithvikp/relnorm/analysis/deps"
	"github.com/rithvikp/relnorm/engine"
	"github.com/rithvikp/relnorm/report"
	"github.com/spf13/cobra"
)

func newChaseCmd(a *app) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "chase FILE",
		Short: "Run the chase on FILE",
		Long: `chase reads a dependency file ending in either

  RESULT
  <target dependency>

to test whether the target follows from the dependencies, or

  DISTINGUISHED
  <attribute groups separated by spaces>

to test whether the decomposition into those groups is lossless.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := parseFile(args[0])
			if err != nil {
				return err
			}

			out := report.NewTextFormatter(cmd.OutOrStdout())
			opts := engine.Options{MaxRounds: a.cfg.MaxChaseRounds}
			if verbose {
				opts.OnStep = func(d deps.Dependency, t *engine.Tableau) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
					out.Tableau(t)
				}
			}

			c, err := engine.FromFile(file, opts)
			if err != nil {
				return err
			}
			if verbose {
				out.Tableau(c.Tableau())
			}
			if err := c.Run(); err != nil {
				return err
			}
			a.logger.Info("chase finished", "target", c.Target().String(), "rows", len(c.Tableau().Tuples))

			out.Verdict(c.Target(), c.Verify())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print the tableau after every step")
	return cmd
}
