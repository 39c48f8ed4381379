package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/JonnyWalker81/apitemplate/internal/logger"
	"github.com/gin-gonic/gin"
)

// ExceptionHandler is the terminal failure boundary of the pipeline.
// It converts panics, and errors recorded with c.Error when the handler wrote
// no response, into problem responses produced by mapper.
//
// Handlers report failures with:
//
//	_ = c.Error(err)
//	return
//
// Errors wrapping *apierror.RequestError become "Invalid request." problems
// carrying the error's status; everything else becomes a 500.
func ExceptionHandler(mapper *apierror.Mapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// The server relies on this sentinel to abort the connection quietly.
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			writeFailure(c, mapper, apierror.Recovered(rec, debug.Stack()))
			c.Abort()
		}()

		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		writeFailure(c, mapper, apierror.Classify(c.Errors.Last().Err))
	}
}

func writeFailure(c *gin.Context, mapper *apierror.Mapper, failure apierror.Failure) {
	log := logger.Ctx(c.Request.Context()).With(
		logger.String("method", c.Request.Method),
		logger.String("path", c.Request.URL.Path),
	)

	switch f := failure.(type) {
	case apierror.MalformedRequest:
		log.Warn("request rejected",
			logger.Int("status", apierror.StatusOf(f)),
			logger.String("reason", f.Message),
		)
	case apierror.Unexpected:
		log.Error("unhandled failure", logger.String("failure", f.Description))
	}

	if c.Writer.Written() {
		log.Warn("response already started, problem details dropped")
		return
	}

	if _, err := mapper.Write(c.Writer, failure, c.Request.URL.Path); err != nil {
		log.Error("failed to write problem details", logger.Err(err))
	}
}
