package apierror

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/swaggest/jsonschema-go"
)

// ValidationDetail is the detail used by every validation problem.
const ValidationDetail = "Please refer to the errors property for additional details."

// ValidationProblemDetails is a ProblemDetails carrying per-field messages.
type ValidationProblemDetails struct {
	ProblemDetails
	Errors map[string][]string `json:"errors"`
}

// NewValidationProblem creates a 400 response listing every message in errs.
func NewValidationProblem(instance string, errs map[string][]string) *ValidationProblemDetails {
	count := 0
	for _, messages := range errs {
		count += len(messages)
	}

	title := fmt.Sprintf("%d validation errors occurred.", count)
	if count == 1 {
		title = "1 validation error occurred."
	}

	return &ValidationProblemDetails{
		ProblemDetails: ProblemDetails{
			Type:     TypeValidation,
			Title:    title,
			Status:   http.StatusBadRequest,
			Detail:   ValidationDetail,
			Instance: instance,
		},
		Errors: errs,
	}
}

// Fields returns the names of the invalid fields in sorted order.
func (v *ValidationProblemDetails) Fields() []string {
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ExampleValidationProblem is the payload shown in API documentation for
// validation responses.
func ExampleValidationProblem() ValidationProblemDetails {
	problem := NewValidationProblem("/example", map[string][]string{
		"Property1": {"Error message 1", "Error message 2"},
	})
	return *problem
}

// PrepareJSONSchema sets the documented default and example of the schema.
func (ValidationProblemDetails) PrepareJSONSchema(schema *jsonschema.Schema) error {
	example := ExampleValidationProblem()
	schema.WithDefault(example)
	schema.WithExamples(example)
	return nil
}
