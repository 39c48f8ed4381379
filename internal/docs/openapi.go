// Package docs builds the OpenAPI document served to the Swagger UI.
package docs

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/gin-gonic/gin"
	"github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi31"
)

// Route describes an API operation for both routing and documentation.
// Request and Response are sample values whose types are reflected into
// schemas; path parameters are declared with `path:"name"` tags on Request.
type Route struct {
	Method   string
	Path     string
	Summary  string
	Tags     []string
	Request  any
	Response any
	Status   int
	Handler  gin.HandlerFunc
}

// Info is the document metadata.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Build reflects routes into an OpenAPI 3.1 document. Every operation
// documents the problem responses the exception handler can produce.
func Build(info Info, routes []Route) ([]byte, error) {
	r := openapi31.NewReflector()
	r.Spec.Info.WithTitle(info.Title).WithVersion(info.Version)
	if info.Description != "" {
		r.Spec.Info.WithDescription(info.Description)
	}

	for _, route := range routes {
		op, err := r.NewOperationContext(route.Method, Path(route.Path))
		if err != nil {
			return nil, fmt.Errorf("failed to create operation %s %s: %w", route.Method, route.Path, err)
		}

		op.SetSummary(route.Summary)
		op.SetTags(route.Tags...)

		if route.Request != nil {
			op.AddReqStructure(route.Request)
		}

		status := route.Status
		if status == 0 {
			status = http.StatusOK
		}
		op.AddRespStructure(route.Response, openapi.WithHTTPStatus(status))

		problem := openapi.WithContentType(apierror.ContentTypeProblemJSON)
		switch {
		case hasBody(route.Method):
			op.AddRespStructure(new(apierror.ValidationProblemDetails), problem, openapi.WithHTTPStatus(http.StatusBadRequest))
		case hasParams(route.Path):
			op.AddRespStructure(new(apierror.ProblemDetails), problem, openapi.WithHTTPStatus(http.StatusBadRequest))
		}
		if hasParams(route.Path) {
			op.AddRespStructure(new(apierror.ProblemDetails), problem, openapi.WithHTTPStatus(http.StatusNotFound))
		}
		op.AddRespStructure(new(apierror.ProblemDetails), problem, openapi.WithHTTPStatus(http.StatusInternalServerError))

		if err := r.AddOperation(op); err != nil {
			return nil, fmt.Errorf("failed to add operation %s %s: %w", route.Method, route.Path, err)
		}
	}

	return r.Spec.MarshalJSON()
}

// Path converts a gin route pattern to OpenAPI form: /widgets/:id becomes
// /widgets/{id}.
func Path(pattern string) string {
	segments := strings.Split(pattern, "/")
	for i, s := range segments {
		if len(s) > 1 && (s[0] == ':' || s[0] == '*') {
			segments[i] = "{" + s[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func hasParams(pattern string) bool {
	return strings.Contains(pattern, "/:") || strings.Contains(pattern, "/*")
}
