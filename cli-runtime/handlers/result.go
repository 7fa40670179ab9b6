package handlers

import (
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/registry"
	v1 "github.com/MallardxGreen/K8-Learning-Simulator-sub000/core/types/v1"
)

// Handler executes one action. args holds the tokens after the action with
// the namespace flag already removed; namespace is never empty.
type Handler func(ctx *Context, store v1.Store, args []string, namespace string) (v1.Store, Result)

// Result is what a command reports back to the caller.
type Result struct {
	// Success is false for every user visible error
	Success bool `json:"success"`
	// Message is the terminal output of the command
	Message string `json:"message"`
	// ResourcesCreated lists new records in creation order
	ResourcesCreated []v1.Resource `json:"resourcesCreated,omitempty"`
	// ResourcesDeleted lists the ids of removed records, cascades included
	ResourcesDeleted []string `json:"resourcesDeleted,omitempty"`
	// ResourcesUpdated lists records that changed in place
	ResourcesUpdated []v1.Resource `json:"resourcesUpdated,omitempty"`
}

// Succeed returns a successful result with a formatted message.
func Succeed(format string, args ...any) Result {
	return Result{Success: true, Message: fmt.Sprintf(format, args...)}
}

// Fail turns err into a failure result rendered the way kubectl prints it.
func Fail(err error) Result {
	return Result{Success: false, Message: ErrorMessage(err)}
}

// ErrorMessage renders an error like kubectl: API status errors as
// "Error from server (Reason): ...", validation failures as "The ... is
// invalid: ..." and anything else as "error: ...".
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	switch reason := apierrors.ReasonForError(err); reason {
	case metav1.StatusReasonUnknown:
		return "error: " + err.Error()
	case metav1.StatusReasonInvalid:
		return "The " + err.Error()
	default:
		return fmt.Sprintf("Error from server (%s): %s", reason, err.Error())
	}
}

func notFound(config registry.ResourceConfig, name string) error {
	return apierrors.NewNotFound(config.GroupResource(), name)
}

func alreadyExists(config registry.ResourceConfig, name string) error {
	return apierrors.NewAlreadyExists(config.GroupResource(), name)
}

func namespaceNotFound(namespace string) error {
	return apierrors.NewNotFound(schema.GroupResource{Resource: "namespaces"}, namespace)
}

// Usage errors reported before any lookup.
var (
	errResourceType = fmt.Errorf("you must specify the type of resource")
)

// missingName is the error for "create TYPE" without a name.
func missingName(kind string) error {
	return fmt.Errorf("%s name is required", kind)
}
