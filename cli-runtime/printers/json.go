package printers

import (
	"encoding/json"
	"fmt"
	"io"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"

	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Object is the API shaped view of a resource used by json and yaml output.
type Object struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	// Spec carries the resource metadata map minus the owner back-reference
	Spec map[string]any `json:"spec,omitempty"`
}

// List wraps several objects the way kubectl prints a multi-item get.
type List struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata"`

	Items []Object `json:"items"`
}

// ToObject converts a resource into its API shaped view. Owner references are
// resolved against options.Store when the owner is present there.
func ToObject(r v1.Resource, options *PrinterOptions) Object {
	if options == nil {
		options = &PrinterOptions{}
	}
	config := options.config(r.Type)
	obj := Object{
		TypeMeta: metav1.TypeMeta{APIVersion: config.APIVersion(), Kind: config.Kind},
		ObjectMeta: metav1.ObjectMeta{
			Name:              r.Name,
			Namespace:         r.Namespace,
			UID:               types.UID(r.ID),
			Labels:            r.Labels,
			CreationTimestamp: metav1.NewTime(r.CreatedAt),
		},
	}

	for k, v := range r.Metadata {
		if k == v1.MetaManagedBy {
			continue
		}
		if obj.Spec == nil {
			obj.Spec = make(map[string]any, len(r.Metadata))
		}
		obj.Spec[k] = v
	}

	if owner := r.ManagedBy(); owner != "" {
		ref := metav1.OwnerReference{UID: types.UID(owner), Controller: boolPtr(true)}
		if o, ok := options.Store.Get(owner); ok {
			ownerConfig := options.config(o.Type)
			ref.APIVersion = ownerConfig.APIVersion()
			ref.Kind = ownerConfig.Kind
			ref.Name = o.Name
		}
		obj.OwnerReferences = []metav1.OwnerReference{ref}
	}
	return obj
}

// toPrintable returns a single Object for one resource and a List otherwise.
func toPrintable(resources v1.Store, options *PrinterOptions) any {
	if len(resources) == 1 {
		return ToObject(resources[0], options)
	}
	list := List{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "List"},
		Items:    make([]Object, 0, len(resources)),
	}
	for _, r := range resources {
		list.Items = append(list.Items, ToObject(r, options))
	}
	return list
}

func boolPtr(b bool) *bool { return &b }

// jsonPrinter prints resources in JSON format.
type jsonPrinter struct {
	options *PrinterOptions
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(options *PrinterOptions) Printer {
	if options == nil {
		options = &PrinterOptions{}
	}
	return &jsonPrinter{options: options}
}

// PrintResources prints resources in JSON format.
func (p *jsonPrinter) PrintResources(resources v1.Store, writer io.Writer) error {
	data, err := json.MarshalIndent(toPrintable(resources, p.options), "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	_, err = fmt.Fprintln(writer, string(data))
	return err
}
