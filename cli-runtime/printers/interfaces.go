// Package printers renders resource collections for the terminal: aligned
// tables for get, describe reports, rollout history and the json, yaml and
// name output formats.
package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Printer knows how to print resources.
type Printer interface {
	// PrintResources prints the given resources to the writer in store order
	PrintResources(resources v1.Store, writer io.Writer) error
}

// PrinterOptions contains configuration for printers.
type PrinterOptions struct {
	// NoHeaders indicates whether to omit headers in table output
	NoHeaders bool
	// ShowLabels appends a LABELS column to table output
	ShowLabels bool
	// Wide indicates whether to use wide output format
	Wide bool
	// AllNamespaces prepends a NAMESPACE column for namespaced types
	AllNamespaces bool
	// Now is the clock ages are computed against
	Now func() time.Time
	// Registry supplies kinds, API versions and qualified names
	Registry registry.Registry
	// Store is the full cluster state, used to resolve owner references
	Store v1.Store
}

func (o *PrinterOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// config returns the registered config for a type tag, or a synthesized one
// for types the registry does not know.
func (o *PrinterOptions) config(resourceType string) registry.ResourceConfig {
	if o.Registry != nil {
		if config, err := o.Registry.GetResourceConfig(resourceType); err == nil {
			return config
		}
	}
	return registry.ResourceConfig{
		Type:       resourceType,
		Singular:   resourceType,
		Plural:     resourceType + "s",
		Kind:       capitalize(resourceType),
		Version:    "v1",
		Namespaced: !v1.IsClusterScoped(resourceType),
	}
}

// PrinterFactory creates printers for different output formats.
type PrinterFactory struct {
	options *PrinterOptions
}

// NewPrinterFactory creates a new printer factory with the given options.
func NewPrinterFactory(options *PrinterOptions) *PrinterFactory {
	if options == nil {
		options = &PrinterOptions{}
	}
	return &PrinterFactory{options: options}
}

// NewPrinter creates a printer for the specified -o format.
func (f *PrinterFactory) NewPrinter(format string) (Printer, error) {
	switch format {
	case "", "table":
		return NewTablePrinter(f.options), nil
	case "wide":
		opts := *f.options
		opts.Wide = true
		return NewTablePrinter(&opts), nil
	case "json":
		return NewJSONPrinter(f.options), nil
	case "yaml":
		return NewYAMLPrinter(f.options), nil
	case "name":
		return NewNamePrinter(f.options), nil
	default:
		return nil, fmt.Errorf("unable to match a printer suitable for the output format %q, allowed formats are: json,name,wide,yaml", format)
	}
}

// Sprint runs p over resources and returns the output without the trailing
// newline.
func Sprint(p Printer, resources v1.Store) (string, error) {
	var b strings.Builder
	if err := p.PrintResources(resources, &b); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
