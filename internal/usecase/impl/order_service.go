package impl

import (
	"context"
	"log/slog"

	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"
	"vitrine/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type orderService struct {
	sessions  service.SessionProvider
	orderRepo repository.OrderRepository
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	Sessions  service.SessionProvider
	OrderRepo repository.OrderRepository
	TxManager repository.TransactionManager
	Logger    *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		sessions:  params.Sessions,
		orderRepo: params.OrderRepo,
		txManager: params.TxManager,
		logger:    params.Logger,
	}
}

// ListOrders returns the authenticated subject's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]*entity.Order, error) {
	subject, err := s.sessions.CurrentSubject(ctx)
	if err != nil {
		return nil, domainerrors.ErrNotAuthenticated.WithDetails(err.Error())
	}

	orders, err := s.orderRepo.FindByCustomerID(ctx, subject.ID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one order after checking it belongs to the subject.
func (s *orderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	subject, err := s.sessions.CurrentSubject(ctx)
	if err != nil {
		return nil, domainerrors.ErrNotAuthenticated.WithDetails(err.Error())
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to load order")
	}

	if order.CustomerEmail != subject.Email || order.CustomerID != subject.ID {
		return nil, domainerrors.ErrOrderOwnership
	}

	return order, nil
}

// AdvanceStatus moves an order one forward step, read-validate-update inside
// a single transaction so concurrent advances cannot skip a step.
func (s *orderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, next entity.OrderStatus) error {
	return s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		repo := factory.NewOrderRepository()

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, repository.ErrOrderNotFound) {
				return domainerrors.ErrOrderNotFound
			}

			return domainerrors.NewDatabaseExecuteError(err, "failed to load order")
		}

		if !order.Status.CanTransitionTo(next) {
			return domainerrors.ErrInvalidTransition.WithDetails(
				"from " + string(order.Status) + " to " + string(next),
			)
		}

		if err := repo.UpdateStatus(ctx, orderID, next); err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update order status")
		}

		s.logger.Info("Order status advanced",
			slog.String("order_id", orderID.String()),
			slog.String("from", string(order.Status)),
			slog.String("to", string(next)),
		)

		return nil
	})
}
