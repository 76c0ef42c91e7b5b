// Package cmd implements the CLI application to browse the reconciled P&L
// ledger.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/google/subcommands"
	"github.com/pnlbook/pnlbook"
	"github.com/pnlbook/pnlbook/fyers"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&statementCmd{}, "reports")
	c.Register(&positionsCmd{}, "reports")
	c.Register(&tradesCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

const tradebookURLEnv = "PLB_TRADEBOOK_URL"

var zipPath = flag.String("zip", "contract-notes.zip", "Path to the contract-note ZIP archive")
var tradebookURL = flag.String("url", "", "Tradebook endpoint URL.\n If missing it will read the environment variable \""+tradebookURLEnv+"\".")

func endpoint() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *tradebookURL == "" {
		*tradebookURL = os.Getenv(tradebookURLEnv)
	}
	return *tradebookURL
}

// LoadStatement ingests both sources and reconciles them.
//
// The archive and the endpoint are independent; they load concurrently and
// each degrades to empty maps on failure so the other still gets processed.
// Reconciliation starts only once both are fully materialized.
func LoadStatement() (*pnlbook.Statement, error) {
	var in pnlbook.Inputs

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		archive, closeArchive, err := fyers.OpenArchive(*zipPath)
		if err != nil {
			log.Printf("warning, archive unavailable, continuing without it: %v", err)
			return
		}
		defer closeArchive()
		in.Bills = archive.Bills()
		in.Expenses = archive.Expenses()
		in.Primary = archive.TradeBook()
	}()

	go func() {
		defer wg.Done()
		addr := endpoint()
		if addr == "" {
			return
		}
		book, estimated, err := fyers.FetchTradebook(addr)
		if err != nil {
			log.Printf("warning, tradebook endpoint unavailable, continuing without it: %v", err)
			return
		}
		in.Secondary = book
		in.EstimatedExpenses = estimated
	}()

	wg.Wait()

	if in.Bills == nil {
		in.Bills = make(pnlbook.BillMap)
	}
	if in.Expenses == nil {
		in.Expenses = make(pnlbook.ExpenseMap)
	}
	if in.EstimatedExpenses == nil {
		in.EstimatedExpenses = make(pnlbook.ExpenseMap)
	}

	s, err := pnlbook.Reconcile(in)
	if err != nil {
		return nil, fmt.Errorf("cannot reconcile sources: %w", err)
	}
	return s, nil
}
