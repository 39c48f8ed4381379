package apierror

import (
	"net/http"
)

// Mapper converts Failures into ProblemDetails and writes them.
// It is built once at startup and shared by all requests.
type Mapper struct {
	diagnostics bool
	serializer  *Serializer
	observe     func(ProblemDetails)
}

// MapperOption configures a Mapper.
type MapperOption func(*Mapper)

// WithDiagnostics includes the full description of unexpected failures in
// the detail field. Only for non-production environments.
func WithDiagnostics(enabled bool) MapperOption {
	return func(m *Mapper) { m.diagnostics = enabled }
}

// WithSerializer overrides DefaultSerializer.
func WithSerializer(s *Serializer) MapperOption {
	return func(m *Mapper) {
		if s != nil {
			m.serializer = s
		}
	}
}

// WithObserver registers a callback invoked with every problem the Mapper
// writes. The callback must be safe for concurrent use.
func WithObserver(fn func(ProblemDetails)) MapperOption {
	return func(m *Mapper) { m.observe = fn }
}

// NewMapper creates a Mapper.
func NewMapper(opts ...MapperOption) *Mapper {
	m := &Mapper{serializer: DefaultSerializer}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Diagnostics reports whether unexpected failures are described in full.
func (m *Mapper) Diagnostics() bool {
	return m.diagnostics
}

// Map builds the ProblemDetails for a failure raised while serving instance.
func (m *Mapper) Map(f Failure, instance string) ProblemDetails {
	problem := ProblemDetails{
		Type:     TypeDefault,
		Status:   StatusOf(f),
		Instance: instance,
	}

	switch f := f.(type) {
	case MalformedRequest:
		problem.Title = TitleInvalidRequest
		problem.Detail = f.Message
	case Unexpected:
		problem.Title = TitleUnexpected
		if m.diagnostics {
			problem.Detail = f.Description
			if problem.Detail == "" {
				problem.Detail = "unexpected failure without description"
			}
		}
	default:
		problem.Title = TitleUnexpected
	}

	return problem
}

// Write maps f and writes the result as application/problem+json.
// The returned problem is valid even when the write fails.
func (m *Mapper) Write(w http.ResponseWriter, f Failure, instance string) (ProblemDetails, error) {
	problem := m.Map(f, instance)
	if m.observe != nil {
		m.observe(problem)
	}
	return problem, m.serializer.Write(w, problem.Status, problem, ContentTypeProblemJSON)
}
