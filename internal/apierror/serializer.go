package apierror

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// Content types written by the Serializer.
const (
	ContentTypeJSON        = "application/json; charset=utf-8"
	ContentTypeProblemJSON = "application/problem+json"
)

// Serializer writes JSON response bodies. Empty optional fields are omitted
// through the omitempty tags of the serialized types. A Serializer is never
// mutated after construction and is safe for concurrent use.
type Serializer struct {
	escapeHTML bool
}

// DefaultSerializer does not escape HTML characters.
var DefaultSerializer = NewSerializer(false)

// NewSerializer creates a Serializer.
func NewSerializer(escapeHTML bool) *Serializer {
	return &Serializer{escapeHTML: escapeHTML}
}

// Marshal encodes v without a trailing newline.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(s.escapeHTML)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write encodes v and writes it with the given status and content type.
// The body is encoded before any header is written, so an encoding error
// leaves the response untouched.
func (s *Serializer) Write(w http.ResponseWriter, status int, v any, contentType string) error {
	body, err := s.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %T: %w", v, err)
	}

	if contentType == "" {
		contentType = ContentTypeJSON
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write response body: %w", err)
	}
	return nil
}
