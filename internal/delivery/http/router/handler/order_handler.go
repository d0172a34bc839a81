package handler

import (
	"log/slog"
	"net/http"

	"vitrine/internal/delivery/http/response"
	"vitrine/internal/domain/entity"
	"vitrine/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler holds dependencies for order-related handlers
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

// AdvanceStatusRequest represents the request body for advancing order status
type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid completed"`
}

type orderFileResponse struct {
	FileID        string `json:"file_id"`
	DisplayName   string `json:"display_name"`
	SizeBytes     int64  `json:"size_bytes"`
	DownloadCount int64  `json:"download_count"`
}

type orderResponse struct {
	ID     string              `json:"id"`
	Status string              `json:"status"`
	Files  []orderFileResponse `json:"files"`
}

func toOrderResponse(order *entity.Order) orderResponse {
	files := make([]orderFileResponse, 0, len(order.Files))
	for _, f := range order.Files {
		files = append(files, orderFileResponse{
			FileID:        f.FileID,
			DisplayName:   f.DisplayName,
			SizeBytes:     f.SizeBytes,
			DownloadCount: f.DownloadCount,
		})
	}

	return orderResponse{
		ID:     order.ID.String(),
		Status: string(order.Status),
		Files:  files,
	}
}

// ListOrders returns the authenticated subject's orders
// GET /orders
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orderUC.ListOrders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	payload := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, toOrderResponse(order))
	}

	return response.Success(c, http.StatusOK, payload, "Orders retrieved successfully")
}

// GetOrder returns one of the subject's orders
// GET /orders/:orderID
func (h *OrderHandler) GetOrder(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), orderID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "Order retrieved successfully")
}

// AdvanceStatus moves an order one forward lifecycle step
// PATCH /orders/:orderID/status
func (h *OrderHandler) AdvanceStatus(c echo.Context) error {
	orderID, err := uuid.Parse(c.Param("orderID"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid order ID")
	}

	var req AdvanceStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.orderUC.AdvanceStatus(c.Request().Context(), orderID, entity.OrderStatus(req.Status)); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"order_id": orderID.String(),
		"status":   req.Status,
	}, "Order status advanced")
}
