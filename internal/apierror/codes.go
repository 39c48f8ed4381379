package apierror

import "net/http"

// TypeDefault is the problem type used for failures resolved by the Mapper.
const TypeDefault = "/"

// Problem type URIs for responses written directly by handlers and middleware.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "https://tools.ietf.org/html/rfc7231#section-6.5.1"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "https://tools.ietf.org/html/rfc7231#section-6.5.4"

	// TypeMethodNotAllowed indicates the route exists for another method (405)
	TypeMethodNotAllowed = "https://tools.ietf.org/html/rfc7231#section-6.5.5"

	// TypePayloadTooLarge indicates the request body exceeded the limit (413)
	TypePayloadTooLarge = "https://tools.ietf.org/html/rfc7231#section-6.5.11"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "https://tools.ietf.org/html/rfc6585#section-4"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "https://tools.ietf.org/html/rfc7231#section-6.6.1"
)

// Titles used by the Mapper.
const (
	TitleInvalidRequest = "Invalid request."
	TitleUnexpected     = "An unexpected error occurred."
)

var typesByStatus = map[int]string{
	http.StatusBadRequest:            TypeValidation,
	http.StatusNotFound:              TypeNotFound,
	http.StatusMethodNotAllowed:      TypeMethodNotAllowed,
	http.StatusRequestEntityTooLarge: TypePayloadTooLarge,
	http.StatusTooManyRequests:       TypeRateLimit,
	http.StatusInternalServerError:   TypeInternal,
}

// TypeFor returns the problem type URI registered for a status code,
// or TypeDefault when none is.
func TypeFor(status int) string {
	if t, ok := typesByStatus[status]; ok {
		return t
	}
	return TypeDefault
}
