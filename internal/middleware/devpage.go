package middleware

import (
	"html/template"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/JonnyWalker81/apitemplate/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

var developerPage = template.Must(template.New("developer-error").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>{{.Title}}</title>
  <style>
    body { font-family: sans-serif; margin: 2em; }
    pre { background: #f4f4f4; padding: 1em; overflow-x: auto; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  <p><code>{{.Method}} {{.Path}}</code> returned <strong>{{.Status}}</strong>.</p>
  <pre>{{.Description}}</pre>
</body>
</html>`))

type developerPageData struct {
	Title       string
	Method      string
	Path        string
	Status      int
	Description string
}

// DeveloperErrorPage renders failures as an HTML page with full diagnostic
// information for requests that accept text/html. Other requests are left to
// ExceptionHandler, which must be registered before this middleware.
// It is unsafe to use this in production.
func DeveloperErrorPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !acceptsHTML(c.Request) {
			c.Next()
			return
		}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler || c.Writer.Written() {
				panic(rec)
			}
			renderDeveloperPage(c, apierror.Recovered(rec, debug.Stack()))
			c.Abort()
		}()

		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		renderDeveloperPage(c, apierror.Classify(c.Errors.Last().Err))
	}
}

func renderDeveloperPage(c *gin.Context, failure apierror.Failure) {
	data := developerPageData{
		Title:  apierror.TitleUnexpected,
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Status: apierror.StatusOf(failure),
	}

	switch f := failure.(type) {
	case apierror.MalformedRequest:
		data.Title = apierror.TitleInvalidRequest
		data.Description = f.Message
	case apierror.Unexpected:
		data.Description = f.Description
	}

	logger.Ctx(c.Request.Context()).Error("rendering developer error page",
		logger.String("path", data.Path),
		logger.Int("status", data.Status),
		logger.String("failure", data.Description),
	)

	c.Render(data.Status, render.HTML{Template: developerPage, Data: data})
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Accept")), "text/html")
}
