package docs

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

const swaggerUIVersion = "5.17.14"

var uiPage = template.Must(template.New("swagger-ui").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8"/>
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css"/>
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js" crossorigin></script>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-standalone-preset.js" crossorigin></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({
        urls: [{ url: {{.SpecURL}}, name: {{.Name}} }],
        dom_id: "#swagger-ui",
        deepLinking: true,
        displayRequestDuration: true,
        presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
        layout: "StandaloneLayout",
      });
    };
  </script>
</body>
</html>`))

type uiData struct {
	Title   string
	Version string
	SpecURL string
	Name    string
}

// UIHandler serves a Swagger UI page titled title that loads the document
// at specURL under the endpoint name.
func UIHandler(title, specURL, name string) gin.HandlerFunc {
	data := uiData{Title: title, Version: swaggerUIVersion, SpecURL: specURL, Name: name}
	return func(c *gin.Context) {
		// The page loads its assets from the CDN.
		c.Header("Content-Security-Policy",
			"default-src 'self'; script-src 'self' 'unsafe-inline' https://unpkg.com; style-src 'self' 'unsafe-inline' https://unpkg.com; img-src 'self' data:")
		c.Render(http.StatusOK, render.HTML{Template: uiPage, Data: data})
	}
}

// DocumentHandler serves a prebuilt OpenAPI document.
func DocumentHandler(document []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", document)
	}
}
