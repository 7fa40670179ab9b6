package printers

import (
	"fmt"
	"io"

	"sigs.k8s.io/yaml"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// yamlPrinter prints resources in YAML format.
type yamlPrinter struct {
	options *PrinterOptions
}

// NewYAMLPrinter creates a new YAML printer.
func NewYAMLPrinter(options *PrinterOptions) Printer {
	if options == nil {
		options = &PrinterOptions{}
	}
	return &yamlPrinter{options: options}
}

// PrintResources prints resources in YAML format.
func (p *yamlPrinter) PrintResources(resources v1.Store, writer io.Writer) error {
	data, err := yaml.Marshal(toPrintable(resources, p.options))
	if err != nil {
		return fmt.Errorf("failed to marshal to YAML: %w", err)
	}

	_, err = writer.Write(data)
	return err
}
