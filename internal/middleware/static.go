package middleware

import (
	"net/http"
	"path"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/JonnyWalker81/apitemplate/internal/config"
	"github.com/gin-gonic/gin"
)

// StaticFiles serves files from root and applies profile to every file it
// serves. The file name is the /*filepath route parameter, or the request
// path when used as a NoRoute fallback. Missing files and directories get a
// 404 problem without cache headers.
func StaticFiles(root http.FileSystem, profile config.CacheProfile) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("filepath")
		if name == "" {
			name = c.Request.URL.Path
		}
		name = path.Clean("/" + name)

		f, err := root.Open(name)
		if err != nil {
			apierror.WriteProblem(c, apierror.NewStatusError(http.StatusNotFound, c.Request.URL.Path, ""))
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			apierror.WriteProblem(c, apierror.NewStatusError(http.StatusNotFound, c.Request.URL.Path, ""))
			return
		}

		profile.Apply(c.Writer.Header())
		http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
	}
}
