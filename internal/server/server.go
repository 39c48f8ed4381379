// Package server assembles the HTTP pipeline.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/JonnyWalker81/apitemplate/internal/config"
	"github.com/JonnyWalker81/apitemplate/internal/docs"
	"github.com/JonnyWalker81/apitemplate/internal/handlers"
	"github.com/JonnyWalker81/apitemplate/internal/metrics"
	"github.com/JonnyWalker81/apitemplate/internal/middleware"
	"github.com/JonnyWalker81/apitemplate/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// SwaggerDocumentPath is where the OpenAPI document is served.
	SwaggerDocumentPath = "/swagger/v1/swagger.json"
	// SwaggerEndpointName labels the document in the Swagger UI.
	SwaggerEndpointName = "Version 1"
)

// ErrMissingStaticCacheProfile is returned when static files are enabled
// without a static_files cache profile.
var ErrMissingStaticCacheProfile = errors.New("cache_profiles.static_files section is missing in configuration")

// Deps are the services the API routes are built on.
type Deps struct {
	Widgets  service.WidgetService
	Registry *prometheus.Registry
}

// App is the configured pipeline.
type App struct {
	*gin.Engine

	Mapper   *apierror.Mapper
	Document []byte

	limiter *middleware.RateLimiter
}

// Close releases background resources held by the pipeline.
func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}

// Routes returns the documented API operations.
func Routes(deps Deps) []docs.Route {
	return handlers.NewWidgetHandler(deps.Widgets).Routes()
}

// Document builds the OpenAPI document for routes.
func Document(cfg *config.Config, routes []docs.Route) ([]byte, error) {
	return docs.Build(docs.Info{
		Title:       cfg.App.Name,
		Version:     cfg.App.Version,
		Description: "Failures are reported as RFC 7807 problem details.",
	}, routes)
}

// New builds the pipeline for cfg. Middleware order matters: the exception
// handler sits inside request logging and metrics so they observe the
// problem status, and outside everything that can fail.
func New(cfg *config.Config, deps Deps) (*App, error) {
	setMode(cfg.Server.Env)

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)

	mapper := apierror.NewMapper(
		apierror.WithDiagnostics(cfg.Server.IsDevelopment()),
		apierror.WithObserver(m.ObserveProblem),
	)

	app := &App{Engine: gin.New(), Mapper: mapper}
	r := app.Engine
	r.HandleMethodNotAllowed = true

	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Metrics(m),
		middleware.ExceptionHandler(mapper),
	)
	if cfg.Server.IsDevelopment() {
		r.Use(middleware.DeveloperErrorPage())
	}
	r.Use(
		middleware.SecurityHeaders(cfg.Server.IsProduction()),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.BodyLimit(cfg.Server.MaxBodyBytes),
	)
	if cfg.Server.RateLimit > 0 {
		app.limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, time.Minute, "general")
		r.Use(middleware.RateLimit(app.limiter))
	}

	staticFallback, err := registerStatic(r, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	r.NoRoute(func(c *gin.Context) {
		if staticFallback != nil && (c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead) {
			staticFallback(c)
			return
		}
		apierror.WriteProblem(c, apierror.NewStatusError(http.StatusNotFound, c.Request.URL.Path, ""))
	})
	r.NoMethod(func(c *gin.Context) {
		apierror.WriteProblem(c, apierror.NewStatusError(http.StatusMethodNotAllowed, c.Request.URL.Path, ""))
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	routes := Routes(deps)
	for _, route := range routes {
		r.Handle(route.Method, route.Path, route.Handler)
	}

	if cfg.Swagger.Enabled {
		document, err := Document(cfg, routes)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
		}
		app.Document = document
		r.GET(SwaggerDocumentPath, docs.DocumentHandler(document))
		r.GET("/", docs.UIHandler(cfg.App.Name, SwaggerDocumentPath, SwaggerEndpointName))
	}

	return app, nil
}

// registerStatic mounts static files under the configured prefix. With an
// empty prefix the files are served from the site root, which gin can only
// do as a NoRoute fallback; that handler is returned for the caller to install.
func registerStatic(r *gin.Engine, cfg *config.Config) (gin.HandlerFunc, error) {
	if !cfg.Static.Enabled {
		return nil, nil
	}

	profile, ok := cfg.CacheProfile(config.CacheProfileStaticFiles)
	if !ok {
		return nil, ErrMissingStaticCacheProfile
	}

	h := middleware.StaticFiles(http.Dir(cfg.Static.Dir), profile)
	prefix := cfg.Static.Prefix()
	if prefix == "" {
		return h, nil
	}

	pattern := prefix + "/*filepath"
	r.GET(pattern, h)
	r.HEAD(pattern, h)
	return nil, nil
}

func setMode(env string) {
	switch env {
	case config.EnvDevelopment:
		gin.SetMode(gin.DebugMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}
