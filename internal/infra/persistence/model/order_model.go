package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderModel is the GORM-specific struct for the 'orders' table.
// The shop front writes these rows; this service reads them to gate token
// issuance and bumps per-file download counters on delivery.
type OrderModel struct {
	ID            uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CustomerEmail string            `gorm:"type:varchar(255);not null;index"`
	CustomerID    string            `gorm:"type:varchar(64);not null;index"`
	Status        string            `gorm:"type:varchar(16);not null;default:'pending'"`
	Files         []*OrderFileModel `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// OrderFileModel is the GORM-specific struct for the 'order_files' table.
// FileID is the object key within the order-files storage namespace.
type OrderFileModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index"`
	FileID        string    `gorm:"type:varchar(512);not null"`
	DisplayName   string    `gorm:"type:varchar(255);not null"`
	SizeBytes     int64     `gorm:"not null;default:0"`
	DownloadCount int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderFileModel) TableName() string {
	return "order_files"
}
