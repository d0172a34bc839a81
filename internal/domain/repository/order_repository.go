// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"vitrine/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order persistence.
// Orders are read-mostly here: the shop front writes them, this service reads
// them to gate token issuance and bumps download counters on delivery.
type OrderRepository interface {
	// FindByID retrieves an order with its deliverable files.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByCustomerID retrieves all orders belonging to a customer,
	// newest first.
	FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Order, error)

	// UpdateStatus advances an order's status. Callers are responsible for
	// checking the transition is a valid forward step.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// IncrementDownloadCount records one completed delivery of an order file.
	IncrementDownloadCount(ctx context.Context, orderID uuid.UUID, fileID string) error
}
