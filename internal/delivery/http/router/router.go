// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"vitrine/internal/delivery/http/middleware"
	"vitrine/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DownloadHandler *handler.DownloadHandler
	HandleHandler   *handler.HandleHandler
	OrderHandler    *handler.OrderHandler

	RequestIDMiddleware   *middleware.RequestIDMiddleware
	CredentialsMiddleware *middleware.CredentialsMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	downloadHandler *handler.DownloadHandler
	handleHandler   *handler.HandleHandler
	orderHandler    *handler.OrderHandler

	requestIDMiddleware   *middleware.RequestIDMiddleware
	credentialsMiddleware *middleware.CredentialsMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		downloadHandler:       params.DownloadHandler,
		handleHandler:         params.HandleHandler,
		orderHandler:          params.OrderHandler,
		requestIDMiddleware:   params.RequestIDMiddleware,
		credentialsMiddleware: params.CredentialsMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestIDMiddleware.Process)
	e.Use(r.credentialsMiddleware.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Order routes; the session provider resolves the subject from the
	// forwarded credentials inside the use case layer.
	orderGroup := e.Group("/orders")
	{
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/:orderID", r.orderHandler.GetOrder)
		orderGroup.PATCH("/:orderID/status", r.orderHandler.AdvanceStatus)
		orderGroup.POST("/:orderID/files/:fileID/token", r.downloadHandler.IssueToken)
	}

	// Token-gated delivery routes
	downloadGroup := e.Group("/downloads")
	{
		downloadGroup.GET("/file", r.downloadHandler.Download)
		downloadGroup.GET("/view", r.downloadHandler.View)
		downloadGroup.GET("/qr", r.downloadHandler.GenerateQR)
	}

	// Transient handle fetch; no session required, possession of a live
	// handle id is the capability.
	e.GET("/handles/:id", r.handleHandler.Serve)
}
