package importer

import (
	"fmt"
	"io"

	"github.com/radieske/bet-ledger/internal/ledger/catalog"
)

const (
	maxPrintedErrors        = 50
	maxPrintedUncategorized = 20
)

// Print escreve o relatório legível da importação
func (r Report) Print(w io.Writer) {
	mode := "import"
	if r.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(w, "%s finished: %d rows processed, %d imported, %d failed\n", mode, r.Processed, r.Imported, r.Failed())

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "\nerrors:")
		for i, e := range r.Errors {
			if i == maxPrintedErrors {
				fmt.Fprintf(w, "  ... and %d more\n", len(r.Errors)-maxPrintedErrors)
				break
			}
			fmt.Fprintf(w, "  %s\n", e.Error())
		}
	}

	if len(r.Uncategorized) > 0 {
		fmt.Fprintf(w, "\nplayer prop selections without a market (%d):\n", len(r.Uncategorized))
		for i, s := range r.Uncategorized {
			if i == maxPrintedUncategorized {
				fmt.Fprintf(w, "  ... and %d more\n", len(r.Uncategorized)-maxPrintedUncategorized)
				break
			}
			fmt.Fprintf(w, "  %s\n", s)
		}
		fmt.Fprintln(w, "\nknown markets:")
		for _, m := range catalog.PlayerPropMarkets {
			fmt.Fprintf(w, "  %s\n", m)
		}
	}
}
