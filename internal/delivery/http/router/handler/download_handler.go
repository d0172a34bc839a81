// Package handler contains the HTTP request handlers.
package handler

import (
	"log/slog"
	"net/http"

	"vitrine/internal/delivery/http/response"
	"vitrine/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DownloadHandlerParams holds dependencies for DownloadHandler, injected by Fx.
type DownloadHandlerParams struct {
	fx.In

	DownloadUC usecase.DownloadUsecase
	Logger     *slog.Logger
}

// DownloadHandler holds dependencies for the secure-download endpoints
type DownloadHandler struct {
	downloadUC usecase.DownloadUsecase
	logger     *slog.Logger
}

// NewDownloadHandler is the constructor for DownloadHandler
func NewDownloadHandler(params DownloadHandlerParams) *DownloadHandler {
	return &DownloadHandler{
		downloadUC: params.DownloadUC,
		logger:     params.Logger,
	}
}

// issuedTokenResponse is the minting result. Expiry is epoch milliseconds,
// matching the timestamps embedded in the token itself.
type issuedTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// deliveryResponse points the client at the transient handle holding its
// bytes. The handle is released on a fixed schedule whether or not it is
// consumed, so the client should fetch it immediately.
type deliveryResponse struct {
	HandleID    string `json:"handle_id"`
	URL         string `json:"url"`
	DisplayName string `json:"display_name"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	ReleaseAt   int64  `json:"release_at"` // epoch milliseconds
}

func toDeliveryResponse(d *usecase.Delivery) deliveryResponse {
	return deliveryResponse{
		HandleID:    d.HandleID.String(),
		URL:         "/handles/" + d.HandleID.String(),
		DisplayName: d.DisplayName,
		ContentType: d.ContentType,
		SizeBytes:   d.SizeBytes,
		ReleaseAt:   d.ReleaseAt.UnixMilli(),
	}
}

// IssueToken mints a download token for one file of one order
// POST /orders/:orderID/files/:fileID/token
func (h *DownloadHandler) IssueToken(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	fileID := c.Param("fileID")
	if fileID == "" {
		return response.BadRequest(c, "INVALID_ID", "Missing file ID")
	}

	issued, err := h.downloadUC.IssueToken(c.Request().Context(), orderID, fileID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, issuedTokenResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt.UnixMilli(),
	}, "Download token issued")
}

// Download exchanges a token for an attachment delivery handle
// GET /downloads/file?token=...&name=...
func (h *DownloadHandler) Download(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "MISSING_TOKEN", "Missing download token")
	}

	delivery, err := h.downloadUC.Download(c.Request().Context(), token, c.QueryParam("name"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toDeliveryResponse(delivery), "Download ready")
}

// View exchanges a token for an inline delivery handle
// GET /downloads/view?token=...
func (h *DownloadHandler) View(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "MISSING_TOKEN", "Missing download token")
	}

	delivery, err := h.downloadUC.View(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toDeliveryResponse(delivery), "View ready")
}

// GenerateQR renders a QR code PNG of the token's public view URL
// GET /downloads/qr?token=...
func (h *DownloadHandler) GenerateQR(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "MISSING_TOKEN", "Missing download token")
	}

	png, err := h.downloadUC.GenerateQR(c.Request().Context(), token)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	c.Response().Header().Set("Content-Disposition", `inline; filename="download-qr.png"`)

	return c.Blob(http.StatusOK, "image/png", png)
}
