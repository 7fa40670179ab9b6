package printers

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

const (
	tabwriterMinWidth = 6
	tabwriterWidth    = 4
	tabwriterPadding  = 3
	tabwriterPadChar  = ' '
)

// tablePrinter prints resources in the aligned column format of kubectl get.
type tablePrinter struct {
	options  *PrinterOptions
	provider ColumnDefinitionProvider
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(options *PrinterOptions) Printer {
	return NewTablePrinterWithColumns(options, nil)
}

// NewTablePrinterWithColumns creates a table printer with a custom column provider.
func NewTablePrinterWithColumns(options *PrinterOptions, provider ColumnDefinitionProvider) Printer {
	if options == nil {
		options = &PrinterOptions{}
	}
	if provider == nil {
		provider = &DefaultColumnProvider{}
	}
	return &tablePrinter{
		options:  options,
		provider: provider,
	}
}

// GetNewTabWriter returns a tabwriter configured like kubectl's.
func GetNewTabWriter(output io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(output, tabwriterMinWidth, tabwriterWidth, tabwriterPadding, tabwriterPadChar, 0)
}

// PrintResources prints one table per resource type. When more than one type
// is present, tables are separated by a blank line and names are qualified
// with their type, as "kubectl get all" does.
func (p *tablePrinter) PrintResources(resources v1.Store, writer io.Writer) error {
	groups, order := groupByType(resources)
	withKind := len(order) > 1

	for i, resourceType := range order {
		if i > 0 {
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
		if err := p.printGroup(resourceType, groups[resourceType], withKind, writer); err != nil {
			return err
		}
	}
	return nil
}

func (p *tablePrinter) printGroup(resourceType string, resources v1.Store, withKind bool, writer io.Writer) error {
	w := GetNewTabWriter(writer)
	columns := p.provider.GetColumns(resourceType, p.options.Wide)
	config := p.options.config(resourceType)
	withNamespace := p.options.AllNamespaces && config.Namespaced
	now := p.options.now()

	if !p.options.NoHeaders {
		var headers []string
		if withNamespace {
			headers = append(headers, "NAMESPACE")
		}
		for _, col := range columns {
			headers = append(headers, col.Name)
		}
		if p.options.ShowLabels {
			headers = append(headers, "LABELS")
		}
		if _, err := fmt.Fprintln(w, strings.Join(headers, "\t")); err != nil {
			return err
		}
	}

	for _, r := range resources {
		var values []string
		if withNamespace {
			values = append(values, r.Namespace)
		}
		for i, col := range columns {
			value := col.Value(r, now)
			if i == 0 && withKind {
				value = config.QualifiedName(value)
			}
			values = append(values, value)
		}
		if p.options.ShowLabels {
			values = append(values, labelsColumn(r))
		}
		if _, err := fmt.Fprintln(w, strings.Join(values, "\t")); err != nil {
			return err
		}
	}

	return w.Flush()
}

// groupByType splits resources by type, keeping store order within each
// group and ordering groups by first appearance.
func groupByType(resources v1.Store) (map[string]v1.Store, []string) {
	groups := make(map[string]v1.Store)
	var order []string
	for _, r := range resources {
		if _, ok := groups[r.Type]; !ok {
			order = append(order, r.Type)
		}
		groups[r.Type] = append(groups[r.Type], r)
	}
	return groups, order
}
