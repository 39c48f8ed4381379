package apierror

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	// Set gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

func TestProblemDetailsJSON(t *testing.T) {
	problem := &ProblemDetails{
		Type:     TypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   "Widget with ID '123' was not found",
		Instance: "/api/v1/widgets/123",
	}

	data, err := json.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if result["type"] != TypeNotFound {
		t.Errorf("Expected type=%q, got %q", TypeNotFound, result["type"])
	}
	if result["title"] != "Not Found" {
		t.Errorf("Expected title=%q, got %q", "Not Found", result["title"])
	}
	if result["status"] != float64(http.StatusNotFound) {
		t.Errorf("Expected status=%d, got %v", http.StatusNotFound, result["status"])
	}
	if result["detail"] != "Widget with ID '123' was not found" {
		t.Errorf("Unexpected detail: %v", result["detail"])
	}
	if result["instance"] != "/api/v1/widgets/123" {
		t.Errorf("Expected instance=%q, got %q", "/api/v1/widgets/123", result["instance"])
	}
}

func TestProblemDetailsJSONOmitsEmpty(t *testing.T) {
	problem := &ProblemDetails{
		Type:   TypeDefault,
		Title:  TitleUnexpected,
		Status: http.StatusInternalServerError,
	}

	data, err := DefaultSerializer.Marshal(problem)
	if err != nil {
		t.Fatalf("Failed to marshal ProblemDetails: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	for _, field := range []string{"detail", "instance"} {
		if _, exists := result[field]; exists {
			t.Errorf("Expected field %q to be omitted when empty, but it was present", field)
		}
	}

	for _, field := range []string{"type", "title", "status"} {
		if _, exists := result[field]; !exists {
			t.Errorf("Expected required field %q to be present", field)
		}
	}
}

func TestWriteProblemContentType(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteProblem(c, NewNotFoundError("/api/v1/widgets/1", "Widget", "1"))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status=%d, got %d", http.StatusNotFound, w.Code)
	}
	contentType := w.Header().Get("Content-Type")
	if contentType != ContentTypeProblemJSON {
		t.Errorf("Expected Content-Type=%q, got %q", ContentTypeProblemJSON, contentType)
	}
}

func TestWriteValidationProblem(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteValidationProblem(c, NewValidationProblem("/api/v1/widgets", map[string][]string{
		"name":  {"name is required"},
		"price": {"price must be 0 or greater"},
	}))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status=%d, got %d", http.StatusBadRequest, w.Code)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal response body: %v", err)
	}
	if result["title"] != "2 validation errors occurred." {
		t.Errorf("Unexpected title: %v", result["title"])
	}
	errs, ok := result["errors"].(map[string]interface{})
	if !ok || len(errs) != 2 {
		t.Errorf("Expected 2 error fields, got %v", result["errors"])
	}
}

func TestNewValidationProblemSingleError(t *testing.T) {
	problem := NewValidationProblem("/x", map[string][]string{"name": {"is required"}})

	if problem.Title != "1 validation error occurred." {
		t.Errorf("Unexpected title: %q", problem.Title)
	}
	if problem.Type != TypeValidation {
		t.Errorf("Expected type=%q, got %q", TypeValidation, problem.Type)
	}
	if problem.Detail != ValidationDetail {
		t.Errorf("Unexpected detail: %q", problem.Detail)
	}
}

func TestValidationProblemFieldsSorted(t *testing.T) {
	problem := NewValidationProblem("/x", map[string][]string{
		"price": {"a"},
		"name":  {"b"},
		"id":    {"c"},
	})

	fields := problem.Fields()
	want := []string{"id", "name", "price"}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("Fields() = %v, want %v", fields, want)
		}
	}
}

func TestExampleValidationProblem(t *testing.T) {
	example := ExampleValidationProblem()

	if example.Title != "2 validation errors occurred." {
		t.Errorf("Unexpected title: %q", example.Title)
	}
	if example.Status != http.StatusBadRequest {
		t.Errorf("Expected status=%d, got %d", http.StatusBadRequest, example.Status)
	}
	if example.Instance != "/example" {
		t.Errorf("Expected instance=%q, got %q", "/example", example.Instance)
	}
	if len(example.Errors["Property1"]) != 2 {
		t.Errorf("Expected 2 messages for Property1, got %v", example.Errors)
	}
}

func TestNewNotFoundError(t *testing.T) {
	problem := NewNotFoundError("/api/v1/widgets/w-456", "Widget", "w-456")

	if problem.Type != TypeNotFound {
		t.Errorf("Expected type=%q, got %q", TypeNotFound, problem.Type)
	}
	if problem.Status != http.StatusNotFound {
		t.Errorf("Expected status=%d, got %d", http.StatusNotFound, problem.Status)
	}
	if problem.Detail != "Widget with ID 'w-456' was not found" {
		t.Errorf("Unexpected detail: %q", problem.Detail)
	}
}

func TestNewRateLimitError(t *testing.T) {
	problem := NewRateLimitError("/api/v1/widgets", 60)

	if problem.Type != TypeRateLimit {
		t.Errorf("Expected type=%q, got %q", TypeRateLimit, problem.Type)
	}
	if problem.Status != http.StatusTooManyRequests {
		t.Errorf("Expected status=%d, got %d", http.StatusTooManyRequests, problem.Status)
	}
	if problem.Title != "Too Many Requests" {
		t.Errorf("Unexpected title: %q", problem.Title)
	}
}

func TestTypeForUnknownStatus(t *testing.T) {
	if got := TypeFor(http.StatusTeapot); got != TypeDefault {
		t.Errorf("TypeFor(418) = %q, want %q", got, TypeDefault)
	}
}

func TestProblemDetailsError(t *testing.T) {
	p1 := &ProblemDetails{Title: TitleInvalidRequest, Detail: "Custom error message"}
	if p1.Error() != "Custom error message" {
		t.Errorf("Expected Error()=%q, got %q", "Custom error message", p1.Error())
	}

	p2 := &ProblemDetails{Title: TitleInvalidRequest}
	if p2.Error() != TitleInvalidRequest {
		t.Errorf("Expected Error()=%q, got %q", TitleInvalidRequest, p2.Error())
	}
}
