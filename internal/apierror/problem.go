// Package apierror provides RFC 7807 Problem Details error responses and the
// policy that maps failures escaping request handling onto them.
package apierror

// ProblemDetails represents an RFC 7807 Problem Details response.
// See https://www.rfc-editor.org/rfc/rfc7807.html
//
// Field order is the serialization order.
type ProblemDetails struct {
	Type     string `json:"type"`               // URI reference identifying the problem type
	Title    string `json:"title"`              // Short human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation specific to this occurrence
	Instance string `json:"instance,omitempty"` // Request path that produced the problem
}

// Error implements the error interface for ProblemDetails.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
