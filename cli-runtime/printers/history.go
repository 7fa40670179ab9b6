package printers

import (
	"fmt"
	"io"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// ChangeCauseImageUpdated is reported for every revision after the first.
const ChangeCauseImageUpdated = "image updated"

// historyPrinter prints the revision table of kubectl rollout history. The
// revision counter on the resource is the only source of history.
type historyPrinter struct {
	options *PrinterOptions
}

// NewHistoryPrinter creates a rollout history printer.
func NewHistoryPrinter(options *PrinterOptions) Printer {
	if options == nil {
		options = &PrinterOptions{}
	}
	return &historyPrinter{options: options}
}

func (p *historyPrinter) PrintResources(resources v1.Store, writer io.Writer) error {
	for i, r := range resources {
		if i > 0 {
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
		config := p.options.config(r.Type)
		if _, err := fmt.Fprintln(writer, config.QualifiedName(r.Name)); err != nil {
			return err
		}

		w := GetNewTabWriter(writer)
		fmt.Fprintln(w, "REVISION\tCHANGE-CAUSE")
		revision := r.MetaIntOr(v1.MetaRevision, 1)
		for rev := 1; rev <= revision; rev++ {
			cause := noneValue
			if rev > 1 {
				cause = ChangeCauseImageUpdated
			}
			fmt.Fprintf(w, "%d\t%s\n", rev, cause)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}
