package apierror

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// problemRender renders a problem document through DefaultSerializer.
type problemRender struct {
	data any
}

func (r problemRender) Render(w http.ResponseWriter) error {
	body, err := DefaultSerializer.Marshal(r.data)
	if err != nil {
		return err
	}
	r.WriteContentType(w)
	_, err = w.Write(body)
	return err
}

func (r problemRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeProblemJSON)
}

// WriteProblem writes a ProblemDetails response to the gin context.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Render(problem.Status, problemRender{data: problem})
}

// WriteValidationProblem writes a ValidationProblemDetails response to the gin context.
func WriteValidationProblem(c *gin.Context, problem *ValidationProblemDetails) {
	c.Render(problem.Status, problemRender{data: problem})
}

// NewStatusError creates a problem for status using its registered type and
// standard reason phrase as title.
func NewStatusError(status int, instance, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:     TypeFor(status),
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(instance, resource, id string) *ProblemDetails {
	return NewStatusError(http.StatusNotFound, instance,
		fmt.Sprintf("%s with ID '%s' was not found", resource, id))
}

// NewRateLimitError creates a 429 Too Many Requests response.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(instance string, retryAfter int) *ProblemDetails {
	return NewStatusError(http.StatusTooManyRequests, instance,
		fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter))
}
