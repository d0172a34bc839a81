// Package handle keeps the transient in-memory references that downloads
// and views are served from. A handle stands in for the fetched bytes just
// long enough for the client to consume them, then a scheduled task releases
// it; re-requesting the same URL afterwards yields handle-gone.
package handle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/service"
	"vitrine/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Scheduler runs fn once after delay. The default is time.AfterFunc; tests
// inject a manual scheduler to drive releases deterministically.
type Scheduler func(delay time.Duration, fn func())

type registry struct {
	mu      sync.Mutex
	handles map[uuid.UUID]*entity.DeliveryHandle

	downloadTTL time.Duration
	viewTTL     time.Duration
	schedule    Scheduler
	now         func() time.Time
	logger      *slog.Logger
}

// Params holds dependencies for the handle registry, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewRegistry builds the registry from configuration and drains it on stop.
func NewRegistry(params Params) service.HandleRegistry {
	cfg := params.Config.Handles

	reg := NewRegistryWithScheduler(cfg.DownloadTTL, cfg.ViewTTL, func(delay time.Duration, fn func()) {
		time.AfterFunc(delay, fn)
	}, time.Now, params.Logger)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			reg.(*registry).drain()

			return nil
		},
	})

	return reg
}

// NewRegistryWithScheduler is the fully injectable constructor used by tests.
func NewRegistryWithScheduler(downloadTTL, viewTTL time.Duration, schedule Scheduler, now func() time.Time, logger *slog.Logger) service.HandleRegistry {
	return &registry{
		handles:     make(map[uuid.UUID]*entity.DeliveryHandle),
		downloadTTL: downloadTTL,
		viewTTL:     viewTTL,
		schedule:    schedule,
		now:         now,
		logger:      logger,
	}
}

func (r *registry) Register(content *entity.FileContent, fileID, displayName string, disposition entity.HandleDisposition) *entity.DeliveryHandle {
	ttl := r.downloadTTL
	if disposition == entity.DispositionInline {
		ttl = r.viewTTL
	}

	now := r.now()
	h := &entity.DeliveryHandle{
		ID:          uuid.New(),
		FileID:      fileID,
		DisplayName: displayName,
		ContentType: content.ContentType,
		Disposition: disposition,
		Data:        content.Data,
		Checksum:    util.ChecksumBytes(content.Data),
		CreatedAt:   now,
		ReleaseAt:   now.Add(ttl),
	}

	r.mu.Lock()
	r.handles[h.ID] = h
	r.mu.Unlock()

	r.logger.Debug("Delivery handle registered",
		slog.String("handle_id", h.ID.String()),
		slog.String("file_id", fileID),
		slog.String("disposition", string(disposition)),
		slog.String("size", util.FormatBytes(content.Size)),
		slog.String("release_in", util.FormatDuration(ttl)),
	)

	id := h.ID
	r.schedule(ttl, func() {
		if r.Release(id) {
			r.logger.Debug("Delivery handle released",
				slog.String("handle_id", id.String()),
			)
		}
	})

	return h
}

func (r *registry) Lookup(id uuid.UUID) (*entity.DeliveryHandle, error) {
	r.mu.Lock()
	h, ok := r.handles[id]
	r.mu.Unlock()

	if !ok {
		return nil, domainerrors.ErrHandleGone
	}

	return h, nil
}

func (r *registry) Release(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handles[id]; !ok {
		return false
	}
	delete(r.handles, id)

	return true
}

// drain drops every outstanding handle. Called on shutdown.
func (r *registry) drain() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.handles) > 0 {
		r.logger.Info("Draining delivery handles",
			slog.Int("count", len(r.handles)),
		)
	}
	r.handles = make(map[uuid.UUID]*entity.DeliveryHandle)
}

// Module provides the handle registry FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRegistry),
)
