package service

import (
	"github.com/google/uuid"

	"vitrine/internal/domain/entity"
)

// HandleRegistry owns the transient in-memory delivery handles. A handle is
// created per download or view attempt and released exactly once by a
// scheduled task after its disposition-specific delay. Looking up a released
// or unknown handle fails with the handle-gone error.
type HandleRegistry interface {
	// Register stores the fetched content under a fresh handle and schedules
	// its release. The returned handle is already live.
	Register(content *entity.FileContent, fileID, displayName string, disposition entity.HandleDisposition) *entity.DeliveryHandle

	// Lookup returns a live handle by id.
	Lookup(id uuid.UUID) (*entity.DeliveryHandle, error)

	// Release drops the handle immediately. Returns false when the handle
	// was already gone; the scheduled release uses this to stay idempotent.
	Release(id uuid.UUID) bool
}
