package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/pnlbook/pnlbook/renderer"
)

// positionsCmd holds the flags for the 'positions' subcommand.
type positionsCmd struct {
	format string
	symbol string
}

func (*positionsCmd) Name() string     { return "positions" }
func (*positionsCmd) Synopsis() string { return "list matched buy/sell positions" }
func (*positionsCmd) Usage() string {
	return `plb positions [-format <short|full>] [-symbol <symbol>]

  Lists every FIFO lot consumption: which buy each sell was matched against,
  with the realized P&L of the round trip.
`
}

func (c *positionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "short", "Amount format: short (Cr/L/k) or full (exact rupees)")
	f.StringVar(&c.symbol, "symbol", "", "Only show positions of one instrument")
}

func (c *positionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	matches := s.Matches
	if c.symbol != "" {
		matches = nil
		for _, m := range s.Matches {
			if m.Symbol == c.symbol {
				matches = append(matches, m)
			}
		}
	}

	printMarkdown(renderer.PositionsMarkdown(matches, full))
	return subcommands.ExitSuccess
}
