package printers

import (
	"fmt"
	"io"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// namePrinter prints resources as qualified names, one per line.
type namePrinter struct {
	options *PrinterOptions
}

// NewNamePrinter creates a new name printer.
func NewNamePrinter(options *PrinterOptions) Printer {
	if options == nil {
		options = &PrinterOptions{}
	}
	return &namePrinter{options: options}
}

// PrintResources prints "type.group/name" for every resource.
func (p *namePrinter) PrintResources(resources v1.Store, writer io.Writer) error {
	for _, r := range resources {
		if _, err := fmt.Fprintln(writer, p.options.config(r.Type).QualifiedName(r.Name)); err != nil {
			return err
		}
	}
	return nil
}
