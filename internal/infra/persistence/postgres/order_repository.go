package postgres

import (
	"context"

	"vitrine/internal/domain/entity"
	"vitrine/internal/domain/repository"
	"vitrine/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// orderRepository implements the repository.OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{
		db: db,
	}
}

// FindByID retrieves an order with its deliverable files.
func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Files").
		Where("id = ?", id).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by ID")
	}

	return toOrderDomain(&orderM), nil
}

// FindByCustomerID retrieves all orders belonging to a customer, newest first.
func (repo *orderRepository) FindByCustomerID(ctx context.Context, customerID string) ([]*entity.Order, error) {
	var orderModels []*model.OrderModel

	if err := repo.db.WithContext(ctx).
		Preload("Files").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find orders by customer")
	}

	orders := make([]*entity.Order, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toOrderDomain(orderM))
	}

	return orders, nil
}

// UpdateStatus advances an order's status. Transition validity is checked by
// the caller; inside a transaction the row should be read first.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update order status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// IncrementDownloadCount records one completed delivery of an order file.
func (repo *orderRepository) IncrementDownloadCount(ctx context.Context, orderID uuid.UUID, fileID string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderFileModel{}).
		Where("order_id = ? AND file_id = ?", orderID, fileID).
		Update("download_count", gorm.Expr("download_count + 1"))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to increment download count")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toOrderDomain converts a GORM OrderModel to a domain Order entity.
func toOrderDomain(data *model.OrderModel) *entity.Order {
	if data == nil {
		return nil
	}

	files := make([]*entity.OrderFile, 0, len(data.Files))
	for _, fileM := range data.Files {
		files = append(files, toOrderFileDomain(fileM))
	}

	return &entity.Order{
		ID:            data.ID,
		CustomerEmail: data.CustomerEmail,
		CustomerID:    data.CustomerID,
		Status:        entity.OrderStatus(data.Status),
		Files:         files,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}
}

// toOrderFileDomain converts a GORM OrderFileModel to a domain OrderFile entity.
func toOrderFileDomain(data *model.OrderFileModel) *entity.OrderFile {
	if data == nil {
		return nil
	}

	return &entity.OrderFile{
		ID:            data.ID,
		OrderID:       data.OrderID,
		FileID:        data.FileID,
		DisplayName:   data.DisplayName,
		SizeBytes:     data.SizeBytes,
		DownloadCount: data.DownloadCount,
		CreatedAt:     data.CreatedAt,
	}
}
