package usecase

import (
	"context"

	"vitrine/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase exposes the order-status surface this service needs: buyers
// list their own orders, the shop-front integration advances order status.
type OrderUsecase interface {
	// ListOrders returns the authenticated subject's orders, newest first.
	ListOrders(ctx context.Context) ([]*entity.Order, error)

	// GetOrder returns one order after checking it belongs to the subject.
	GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error)

	// AdvanceStatus moves an order one forward step in its lifecycle
	// (pending -> paid -> completed), atomically.
	AdvanceStatus(ctx context.Context, orderID uuid.UUID, next entity.OrderStatus) error
}
