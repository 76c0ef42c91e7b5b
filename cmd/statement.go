package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pnlbook/pnlbook"
	"github.com/pnlbook/pnlbook/renderer"
)

// statementCmd holds the flags for the 'statement' subcommand.
type statementCmd struct {
	format string
	fiscal string
}

func (*statementCmd) Name() string     { return "statement" }
func (*statementCmd) Synopsis() string { return "display the fiscal-year profit & loss statement" }
func (*statementCmd) Usage() string {
	return `plb statement [-format <short|full>] [-fy <year>]

  Reconciles both sources and displays the daily ledger grouped by fiscal
  year, with bill, expense, TPL, NTPL and gross profit columns.
`
}

func (c *statementCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "short", "Amount format: short (Cr/L/k) or full (exact rupees)")
	f.StringVar(&c.fiscal, "fy", "", "Only show one fiscal year, e.g. 2024-2025")
}

func (c *statementCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	full, err := parseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.fiscal != "" {
		var years []pnlbook.YearSummary
		for _, y := range s.Years {
			if y.FiscalYear == c.fiscal {
				years = append(years, y)
			}
		}
		if len(years) == 0 {
			fmt.Fprintf(os.Stderr, "Error: no activity in fiscal year %q\n", c.fiscal)
			return subcommands.ExitFailure
		}
		s = &pnlbook.Statement{Years: years, Results: s.Results, Matches: s.Matches}
	}

	printMarkdown(renderer.StatementMarkdown(s, full))
	return subcommands.ExitSuccess
}

func parseFormat(s string) (full bool, err error) {
	switch s {
	case "short":
		return false, nil
	case "full":
		return true, nil
	default:
		return false, fmt.Errorf("unknown format %q, want short or full", s)
	}
}
