package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JonnyWalker81/apitemplate/internal/logger"
)

// Serve starts an HTTP server for handler on addr. It returns a function
// that shuts the server down gracefully and a channel that receives the
// server's terminal error. http.ErrServerClosed is not reported.
func Serve(addr string, handler http.Handler) (func(ctx context.Context), <-chan error) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errChan <- err
		close(errChan)
	}()

	logger.Info("API server is listening", logger.String("addr", addr))

	return func(ctx context.Context) {
		logger.Info("API server is shutting down")
		defer logger.Info("API server has shut down")

		if err := srv.Shutdown(ctx); err != nil {
			_ = srv.Close()
			logger.Error("could not stop the API server gracefully", logger.Err(err))
		}
	}, errChan
}
