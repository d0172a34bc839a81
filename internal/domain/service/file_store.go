package service

import (
	"context"

	"vitrine/internal/domain/entity"
)

// OrderFilesNamespace is the fixed namespace within the backing bucket that
// holds order deliverables. All fetches are scoped under this prefix.
const OrderFilesNamespace = "order-files"

// FileStore fetches protected deliverable bytes from the backing object
// store. Implementations map provider failures onto the application error
// taxonomy: a permission denial becomes the bucket-permission guidance error,
// anything else a generic fetch failure.
type FileStore interface {
	Fetch(ctx context.Context, fileID string) (*entity.FileContent, error)
}
