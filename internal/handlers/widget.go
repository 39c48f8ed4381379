package handlers

import (
	"errors"
	"net/http"

	"github.com/JonnyWalker81/apitemplate/internal/apierror"
	"github.com/JonnyWalker81/apitemplate/internal/docs"
	"github.com/JonnyWalker81/apitemplate/internal/models"
	"github.com/JonnyWalker81/apitemplate/internal/service"
	"github.com/gin-gonic/gin"
)

type WidgetHandler struct {
	widgetService service.WidgetService
}

// NewWidgetHandler creates a new widget handler
func NewWidgetHandler(widgetService service.WidgetService) *WidgetHandler {
	return &WidgetHandler{
		widgetService: widgetService,
	}
}

// Routes lists the widget operations for registration and documentation.
func (h *WidgetHandler) Routes() []docs.Route {
	tags := []string{"Widgets"}
	return []docs.Route{
		{
			Method: http.MethodGet, Path: "/api/v1/widgets", Summary: "List widgets", Tags: tags,
			Request: new(models.ListWidgetsQuery), Response: new([]models.Widget),
			Handler: h.ListWidgets,
		},
		{
			Method: http.MethodPost, Path: "/api/v1/widgets", Summary: "Create a widget", Tags: tags,
			Request: new(models.CreateWidgetRequest), Response: new(models.Widget), Status: http.StatusCreated,
			Handler: h.CreateWidget,
		},
		{
			Method: http.MethodGet, Path: "/api/v1/widgets/:id", Summary: "Get a widget", Tags: tags,
			Request: new(models.WidgetPath), Response: new(models.Widget),
			Handler: h.GetWidget,
		},
		{
			Method: http.MethodPatch, Path: "/api/v1/widgets/:id", Summary: "Update a widget", Tags: tags,
			Request: new(models.UpdateWidgetInput), Response: new(models.Widget),
			Handler: h.UpdateWidget,
		},
		{
			Method: http.MethodDelete, Path: "/api/v1/widgets/:id", Summary: "Delete a widget", Tags: tags,
			Request: new(models.WidgetPath), Status: http.StatusNoContent,
			Handler: h.DeleteWidget,
		},
	}
}

// ListWidgets handles GET /api/v1/widgets
func (h *WidgetHandler) ListWidgets(c *gin.Context) {
	var query models.ListWidgetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(apierror.BindError(err))
		return
	}

	widgets, err := h.widgetService.ListWidgets(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, widgets)
}

// CreateWidget handles POST /api/v1/widgets
func (h *WidgetHandler) CreateWidget(c *gin.Context) {
	var req models.CreateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apierror.BindError(err))
		return
	}

	widget, err := h.widgetService.CreateWidget(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+widget.ID)
	c.JSON(http.StatusCreated, widget)
}

// GetWidget handles GET /api/v1/widgets/:id
func (h *WidgetHandler) GetWidget(c *gin.Context) {
	widget, err := h.widgetService.GetWidget(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, widget)
}

// UpdateWidget handles PATCH /api/v1/widgets/:id
func (h *WidgetHandler) UpdateWidget(c *gin.Context) {
	var req models.UpdateWidgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apierror.BindError(err))
		return
	}

	widget, err := h.widgetService.UpdateWidget(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, widget)
}

// DeleteWidget handles DELETE /api/v1/widgets/:id
func (h *WidgetHandler) DeleteWidget(c *gin.Context) {
	if err := h.widgetService.DeleteWidget(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// fail writes the expected outcomes directly and leaves the rest to the
// exception handler.
func (h *WidgetHandler) fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		apierror.WriteValidationProblem(c, apierror.NewValidationProblem(c.Request.URL.Path, verr.Fields))
	case errors.Is(err, service.ErrWidgetNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(c.Request.URL.Path, "Widget", c.Param("id")))
	case service.IsInvalidID(err):
		_ = c.Error(apierror.NewRequestError(http.StatusBadRequest, "The widget id must be a UUIDv7."))
	default:
		_ = c.Error(err)
	}
}
