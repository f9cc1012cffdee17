package providers

import (
	"fmt"
	"net/http"
	"strings"
)

// ErrBadArguments reports input rejected by a provider's schema before any
// network I/O happened.
type ErrBadArguments struct {
	Provider string
	Data     map[string]any
	Message  string
}

func (e *ErrBadArguments) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func NewErrBadArguments(provider string, data map[string]any, message string) error {
	return &ErrBadArguments{Provider: provider, Data: data, Message: message}
}

// ErrSchema reports a malformed provider schema, caught at construction.
type ErrSchema struct {
	Provider string
	Message  string
}

func (e *ErrSchema) Error() string {
	return fmt.Sprintf("%s: invalid schema: %s", e.Provider, e.Message)
}

// ErrNotification is raised from Response.RaiseOnErrors when a dispatch
// failed and the caller asked for escalation.
type ErrNotification struct {
	Provider string
	Data     map[string]any
	Errors   []string
	Response *Response
}

func (e *ErrNotification) Error() string {
	return fmt.Sprintf("notification to %s failed: %s", e.Provider, strings.Join(e.Errors, "; "))
}

// ErrResource reports a failed provider resource call. Resources never
// return partial payloads; any failure surfaces here with the response
// attached.
type ErrResource struct {
	Provider string
	Resource string
	Errors   []string
	Body     []byte
	Response *http.Response
}

func (e *ErrResource) Error() string {
	return fmt.Sprintf("resource %s of %s failed: %s", e.Resource, e.Provider, strings.Join(e.Errors, "; "))
}

// ErrNoSuchNotifier reports a strict registry miss.
type ErrNoSuchNotifier struct {
	Name string
}

func (e *ErrNoSuchNotifier) Error() string {
	return fmt.Sprintf("no such notifier: %q", e.Name)
}
