package providers

import "net/http"

// Status is the outcome of one dispatch attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Response describes the outcome of one Notify call. Status is failure
// exactly when Errors is non-empty.
type Response struct {
	Status   Status
	Provider string

	// Data is the canonical post-shaping payload handed to the wire.
	Data map[string]any

	// HTTPResponse is the raw response, nil on transport failure. Its body
	// has been drained into Body.
	HTTPResponse *http.Response
	Body         []byte

	Errors []string
}

// OK reports whether the dispatch succeeded.
func (r *Response) OK() bool { return len(r.Errors) == 0 }

// RaiseOnErrors converts a failed response into an error; it returns nil on
// success.
func (r *Response) RaiseOnErrors() error {
	if r.OK() {
		return nil
	}
	return &ErrNotification{
		Provider: r.Provider,
		Data:     r.Data,
		Errors:   r.Errors,
		Response: r,
	}
}
