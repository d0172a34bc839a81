package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the linear lifecycle of a shop order.
// Transitions only move forward: pending -> paid -> completed.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
)

// CanTransitionTo reports whether moving to the given status is a valid
// forward step in the order lifecycle.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid
	case OrderStatusPaid:
		return next == OrderStatusCompleted
	default:
		return false
	}
}

// Order represents a purchase of downloadable deliverables.
// Customer identity mirrors the auth provider's subject (email + id) so
// token binding can be checked against a loaded order record.
type Order struct {
	ID            uuid.UUID
	CustomerEmail string
	CustomerID    string
	Status        OrderStatus
	Files         []*OrderFile
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsDownloadable reports whether deliverables of this order may be fetched.
// Only completed orders release files.
func (o *Order) IsDownloadable() bool {
	return o.Status == OrderStatusCompleted
}

// File returns the order's deliverable with the given storage file id,
// or nil when the order does not include it.
func (o *Order) File(fileID string) *OrderFile {
	for _, f := range o.Files {
		if f.FileID == fileID {
			return f
		}
	}

	return nil
}

// OrderFile is a single purchased deliverable stored in the object store.
type OrderFile struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	FileID        string // object key within the order-files namespace
	DisplayName   string // filename offered to the buyer
	SizeBytes     int64
	DownloadCount int64
	CreatedAt     time.Time
}
