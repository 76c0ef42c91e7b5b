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

// tradesCmd holds the flags for the 'trades' subcommand.
type tradesCmd struct {
	format string
	date   string
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "display the instrument detail of one trading date" }
func (*tradesCmd) Usage() string {
	return `plb trades -d <date> [-format <short|full>]

  Displays the per-instrument breakdown of one date: expiry write-offs,
  intraday matches, carried buys and FIFO sells.
`
}

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trading date, e.g. 31/03/2025 or 2025-03-31")
	f.StringVar(&c.format, "format", "short", "Amount format: short (Cr/L/k) or full (exact rupees)")
}

func (c *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	full, err := parseFormat(c.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	date, err := pnlbook.ParseTradeDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := LoadStatement()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TradesMarkdown(date, s.Results[date], full))
	return subcommands.ExitSuccess
}
