package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rithvikp/relnorm/analysis/deps"
	"github.com/rithvikp/relnorm/report"
	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type query func(s *deps.Schema) any

var queries = map[string]query{
	"attribute_closures":          func(s *deps.Schema) any { return s.AttributeClosures() },
	"essential_closures":          func(s *deps.Schema) any { return s.EssentialClosures() },
	"superkeys":                   func(s *deps.Schema) any { return s.Superkeys() },
	"candidate_keys":              func(s *deps.Schema) any { return s.CandidateKeys() },
	"prime_attributes":            func(s *deps.Schema) any { return s.PrimeAttributes() },
	"fd_closure":                  func(s *deps.Schema) any { return s.FDClosure() },
	"minimal_cover":               func(s *deps.Schema) any { return s.MinimalCover(nil) },
	"minimal_cover_from_fds":      func(s *deps.Schema) any { return s.MinimalCoverFromFDs() },
	"all_minimal_covers":          func(s *deps.Schema) any { return s.AllMinimalCovers(nil) },
	"all_minimal_covers_from_fds": func(s *deps.Schema) any { return s.AllMinimalCoversFromFDs() },
	"compact_fds":                 func(s *deps.Schema) any { return deps.CompactFDs(s.FDs()) },
	"normal_form":                 func(s *deps.Schema) any { return s.NormalForm() },
	"is_in_bcnf":                  func(s *deps.Schema) any { return s.IsInBCNF() },
	"is_in_3nf":                   func(s *deps.Schema) any { return s.IsIn3NF() },
	"is_in_2nf":                   func(s *deps.Schema) any { return s.IsIn2NF() },
	"is_in_4nf":                   func(s *deps.Schema) any { return s.IsIn4NF() },
	"bcnf_decomposition":          func(s *deps.Schema) any { return s.Decompose() },
	"dependency_preserving":       func(s *deps.Schema) any { return s.IsDependencyPreserving() },
	"3nf_synthesis":               func(s *deps.Schema) any { return s.Synthesize() },
	"3nf_synthesis_in_bcnf":       func(s *deps.Schema) any { return s.IsSynthesisInBCNF() },
	"4nf_decomposition":           func(s *deps.Schema) any { return s.Decompose4NF() },
}

var defaultQueries = []string{
	"candidate_keys",
	"prime_attributes",
	"minimal_cover_from_fds",
	"normal_form",
	"bcnf_decomposition",
	"dependency_preserving",
	"3nf_synthesis",
}

func newAnalyzeCmd(a *app) *cobra.Command {
	var (
		names        []string
		commandsFile string
	)

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Run queries against the schema in FILE",
		Long: `analyze reads a dependency file (a header line of attributes followed by one
FD or MVD per line) and prints the result of each query.

Queries: ` + strings.Join(queryNames(), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if commandsFile != "" {
				fromFile, err := readCommands(commandsFile)
				if err != nil {
					return err
				}
				names = append(names, fromFile...)
			}
			if len(names) == 0 {
				names = a.cfg.Queries
			}
			if len(names) == 0 {
				names = defaultQueries
			}
			for _, n := range names {
				if _, ok := queries[n]; !ok {
					return fmt.Errorf("unknown query %q", n)
				}
			}

			file, err := parseFile(args[0])
			if err != nil {
				return err
			}
			s, err := file.Schema(a.schemaOptions()...)
			if err != nil {
				return err
			}
			a.logger.Info("loaded schema", "attributes", s.Attributes().String(), "fds", len(s.FDs()), "mvds", len(s.MVDs()))

			out := report.NewTextFormatter(cmd.OutOrStdout())
			out.Schema(s)
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			for _, n := range names {
				if err := out.Result(n, queries[n](s)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&names, "query", "q", nil, "Query to run (repeatable)")
	cmd.Flags().StringVar(&commandsFile, "commands", "", "File with one query name per line")
	return cmd
}

func queryNames() []string {
	names := maps.Keys(queries)
	slices.Sort(names)
	return names
}

// readCommands returns the non-empty lines of a commands file.
func readCommands(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			names = append(names, line)
		}
	}
	return names, sc.Err()
}
