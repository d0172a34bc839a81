// Package impl contains the concrete use case implementations.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "vitrine/internal/delivery/context"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"
	"vitrine/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type downloadService struct {
	sessions  service.SessionProvider
	tokens    service.DownloadTokenService
	store     service.FileStore
	handles   service.HandleRegistry
	orderRepo repository.OrderRepository
	events    service.EventPublisher
	qrcode    service.QRCodeService
	logger    *slog.Logger
}

// DownloadServiceParams holds dependencies for DownloadService, injected by Fx.
type DownloadServiceParams struct {
	fx.In

	Sessions  service.SessionProvider
	Tokens    service.DownloadTokenService
	Store     service.FileStore
	Handles   service.HandleRegistry
	OrderRepo repository.OrderRepository
	Events    service.EventPublisher
	QRCode    service.QRCodeService
	Logger    *slog.Logger
}

// NewDownloadService creates a new download service instance
func NewDownloadService(params DownloadServiceParams) usecase.DownloadUsecase {
	return &downloadService{
		sessions:  params.Sessions,
		tokens:    params.Tokens,
		store:     params.Store,
		handles:   params.Handles,
		orderRepo: params.OrderRepo,
		events:    params.Events,
		qrcode:    params.QRCode,
		logger:    params.Logger,
	}
}

// IssueToken mints a download token after enforcing order gating: the order
// must exist, belong to the authenticated subject (email AND id), be
// completed, and include the requested file.
func (s *downloadService) IssueToken(ctx context.Context, orderID uuid.UUID, fileID string) (*usecase.IssuedToken, error) {
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

	if !order.IsDownloadable() {
		return nil, domainerrors.ErrOrderNotReady
	}

	if order.File(fileID) == nil {
		return nil, domainerrors.ErrFileNotInOrder
	}

	token, expiresAt := s.tokens.Issue(fileID, orderID.String(), subject)

	s.publishEvent(ctx, &service.DownloadEvent{
		Type:      service.EventTokenIssued,
		OrderID:   orderID.String(),
		FileID:    fileID,
		SubjectID: subject.ID,
	})

	return &usecase.IssuedToken{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Download runs a download attempt and returns an attachment handle.
func (s *downloadService) Download(ctx context.Context, token, displayName string) (*usecase.Delivery, error) {
	return s.deliver(ctx, token, displayName, entity.DispositionAttachment)
}

// View runs a view attempt and returns an inline handle.
func (s *downloadService) View(ctx context.Context, token string) (*usecase.Delivery, error) {
	return s.deliver(ctx, token, "", entity.DispositionInline)
}

// deliver is the shared attempt pipeline: resolve subject, validate token,
// fetch bytes, register handle. Each step fails the whole attempt with its
// typed reason; there is no retry. Concurrent attempts for the same file run
// independent pipelines.
func (s *downloadService) deliver(ctx context.Context, token, displayName string, disposition entity.HandleDisposition) (*usecase.Delivery, error) {
	subject, err := s.sessions.CurrentSubject(ctx)
	if err != nil {
		s.publishDenied(ctx, token, "", "not_authenticated")

		return nil, domainerrors.ErrNotAuthenticated.WithDetails(err.Error())
	}

	result := s.tokens.Validate(token, subject)
	if !result.Valid {
		s.publishDenied(ctx, token, subject.ID, string(result.Kind))

		return nil, validationError(result)
	}

	content, err := s.store.Fetch(ctx, result.FileID)
	if err != nil {
		s.publishEvent(ctx, &service.DownloadEvent{
			Type:      service.EventDownloadDenied,
			OrderID:   result.OrderID,
			FileID:    result.FileID,
			SubjectID: subject.ID,
			Reason:    "fetch_failed",
		})

		return nil, err
	}

	if displayName == "" {
		displayName = s.lookupDisplayName(ctx, result.OrderID, result.FileID)
	}

	h := s.handles.Register(content, result.FileID, displayName, disposition)

	s.publishEvent(ctx, &service.DownloadEvent{
		Type:      service.EventDownloadCompleted,
		OrderID:   result.OrderID,
		FileID:    result.FileID,
		SubjectID: subject.ID,
	})
	s.recordDownload(ctx, result.OrderID, result.FileID)

	return &usecase.Delivery{
		HandleID:    h.ID,
		DisplayName: h.DisplayName,
		ContentType: h.ContentType,
		SizeBytes:   content.Size,
		ReleaseAt:   h.ReleaseAt,
	}, nil
}

// GenerateQR validates the token for the current subject before rendering,
// so the endpoint cannot be used to probe foreign tokens.
func (s *downloadService) GenerateQR(ctx context.Context, token string) ([]byte, error) {
	subject, err := s.sessions.CurrentSubject(ctx)
	if err != nil {
		return nil, domainerrors.ErrNotAuthenticated.WithDetails(err.Error())
	}

	result := s.tokens.Validate(token, subject)
	if !result.Valid {
		return nil, validationError(result)
	}

	png, err := s.qrcode.GenerateDownloadQR(token)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WithDetails(err.Error())
	}

	return png, nil
}

// lookupDisplayName falls back to the order file's stored display name, or
// the raw file id when the order cannot be loaded.
func (s *downloadService) lookupDisplayName(ctx context.Context, orderID, fileID string) string {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return fileID
	}

	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return fileID
	}

	if f := order.File(fileID); f != nil && f.DisplayName != "" {
		return f.DisplayName
	}

	return fileID
}

// recordDownload bumps the per-file counter, best effort.
func (s *downloadService) recordDownload(ctx context.Context, orderID, fileID string) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return
	}

	if err := s.orderRepo.IncrementDownloadCount(ctx, id, fileID); err != nil {
		s.loggerFor(ctx).Warn("Failed to record download",
			slog.String("order_id", orderID),
			slog.String("file_id", fileID),
			slog.Any("error", err),
		)
	}
}

// publishDenied reports a denied attempt. The token may be anything the
// caller sent; ids are recovered from it only when it decodes cleanly.
func (s *downloadService) publishDenied(ctx context.Context, token, subjectID, reason string) {
	event := &service.DownloadEvent{
		Type:      service.EventDownloadDenied,
		SubjectID: subjectID,
		Reason:    reason,
	}
	if payload, err := s.tokens.Decode(token); err == nil {
		event.OrderID = payload.OrderID
		event.FileID = payload.FileID
	}

	s.publishEvent(ctx, event)
}

// publishEvent sends the event to the feed, best effort.
func (s *downloadService) publishEvent(ctx context.Context, event *service.DownloadEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := s.events.PublishDownloadEvent(ctx, event); err != nil {
		s.loggerFor(ctx).Warn("Failed to publish download event",
			slog.String("event_type", event.Type),
			slog.Any("error", err),
		)
	}
}

func (s *downloadService) loggerFor(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// validationError maps a failed validation result onto the error taxonomy.
// The result's message is already user-legible; it is carried verbatim.
func validationError(result service.ValidationResult) error {
	switch result.Kind {
	case service.KindMalformedToken:
		return domainerrors.ErrMalformedToken
	case service.KindExpired:
		return domainerrors.ErrTokenExpired
	case service.KindOwnershipMismatch:
		return domainerrors.ErrOwnershipMismatch
	case service.KindSessionMismatch:
		return domainerrors.ErrSessionMismatch
	case service.KindSignatureMismatch:
		return domainerrors.ErrSignatureMismatch
	default:
		return domainerrors.ErrInternalError.WithDetails(result.Message)
	}
}
