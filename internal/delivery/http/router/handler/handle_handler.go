package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"vitrine/internal/delivery/http/response"
	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HandleHandlerParams holds dependencies for HandleHandler, injected by Fx.
type HandleHandlerParams struct {
	fx.In

	Handles service.HandleRegistry
	Logger  *slog.Logger
}

// HandleHandler serves the bytes behind live delivery handles
type HandleHandler struct {
	handles service.HandleRegistry
	logger  *slog.Logger
}

// NewHandleHandler is the constructor for HandleHandler
func NewHandleHandler(params HandleHandlerParams) *HandleHandler {
	return &HandleHandler{
		handles: params.Handles,
		logger:  params.Logger,
	}
}

// Serve streams a live handle's bytes
// GET /handles/:id
func (h *HandleHandler) Serve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid handle ID")
	}

	handle, err := h.handles.Lookup(id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	disposition := "attachment"
	if handle.Disposition == entity.DispositionInline {
		disposition = "inline"
	}

	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf(`%s; filename="%s"`, disposition, handle.DisplayName))
	c.Response().Header().Set("ETag", `"`+handle.Checksum+`"`)
	c.Response().Header().Set("Cache-Control", "no-store")

	return c.Blob(http.StatusOK, handle.ContentType, handle.Data)
}
