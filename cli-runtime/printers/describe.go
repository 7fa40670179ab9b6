package printers

import (
	"fmt"
	"io"
	"sort"
	"time"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// describePrinter prints the human readable report of kubectl describe.
type describePrinter struct {
	options *PrinterOptions
}

// NewDescribePrinter creates a describe printer.
func NewDescribePrinter(options *PrinterOptions) Printer {
	if options == nil {
		options = &PrinterOptions{}
	}
	return &describePrinter{options: options}
}

// PrintResources writes one report per resource, separated by a blank line.
// Each report starts with a fixed preamble followed by every metadata entry
// in key order with the key capitalized.
func (p *describePrinter) PrintResources(resources v1.Store, writer io.Writer) error {
	for i, r := range resources {
		if i > 0 {
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
		if err := p.describe(r, writer); err != nil {
			return err
		}
	}
	return nil
}

func (p *describePrinter) describe(r v1.Resource, writer io.Writer) error {
	w := GetNewTabWriter(writer)

	created := unknownValue
	if !r.CreatedAt.IsZero() {
		created = r.CreatedAt.UTC().Format(time.RFC1123Z)
	}

	fmt.Fprintf(w, "Name:\t%s\n", r.Name)
	fmt.Fprintf(w, "Namespace:\t%s\n", orNone(r.Namespace))
	fmt.Fprintf(w, "Type:\t%s\n", r.Type)
	p.describeLabels(w, r.Labels)
	fmt.Fprintf(w, "Created:\t%s\n", created)

	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s:\t%s\n", capitalize(k), formatValue(r.Metadata[k]))
	}

	return w.Flush()
}

// describeLabels prints one label per line like kubectl does, the first on
// the Labels line itself.
func (p *describePrinter) describeLabels(w io.Writer, labels map[string]string) {
	if len(labels) == 0 {
		fmt.Fprintf(w, "Labels:\t%s\n", noneValue)
		return
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		label := "Labels:"
		if i > 0 {
			label = ""
		}
		fmt.Fprintf(w, "%s\t%s=%s\n", label, k, labels[k])
	}
}
