package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"vitrine/config"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/repository"
	"vitrine/internal/domain/service"
	"vitrine/internal/infra/handle"
	"vitrine/internal/infra/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Hand-rolled fakes for the domain interfaces. The token service and the
// handle registry are the real implementations, pinned with injected clocks
// and schedulers, so the pipeline under test is as close to production as a
// unit test allows.

type fakeSessionProvider struct {
	subject *entity.Subject
	err     error
}

func (f *fakeSessionProvider) CurrentSubject(context.Context) (*entity.Subject, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.subject, nil
}

type fakeFileStore struct {
	files map[string]*entity.FileContent
	err   error
}

func (f *fakeFileStore) Fetch(_ context.Context, fileID string) (*entity.FileContent, error) {
	if content, ok := f.files[fileID]; ok {
		return content, nil
	}
	if f.err != nil {
		return nil, f.err
	}

	return nil, domainerrors.ErrFetchFailed
}

type fakeOrderRepo struct {
	orders        map[uuid.UUID]*entity.Order
	incremented   []string // "orderID/fileID" per call
	statusUpdates []entity.OrderStatus
	findErr       error
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	if order, ok := f.orders[id]; ok {
		return order, nil
	}

	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) FindByCustomerID(_ context.Context, customerID string) ([]*entity.Order, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}

	var orders []*entity.Order
	for _, order := range f.orders {
		if order.CustomerID == customerID {
			orders = append(orders, order)
		}
	}

	return orders, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.Status = status
	f.statusUpdates = append(f.statusUpdates, status)

	return nil
}

func (f *fakeOrderRepo) IncrementDownloadCount(_ context.Context, orderID uuid.UUID, fileID string) error {
	f.incremented = append(f.incremented, orderID.String()+"/"+fileID)

	return nil
}

type fakeTxManager struct {
	repo *fakeOrderRepo
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f)
}

func (f *fakeTxManager) NewOrderRepository() repository.OrderRepository {
	return f.repo
}

type fakeEventPublisher struct {
	events []*service.DownloadEvent
	err    error
}

func (f *fakeEventPublisher) PublishDownloadEvent(_ context.Context, event *service.DownloadEvent) error {
	f.events = append(f.events, event)

	return f.err
}

func (f *fakeEventPublisher) Close() error {
	return nil
}

func (f *fakeEventPublisher) lastOfType(eventType string) *service.DownloadEvent {
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].Type == eventType {
			return f.events[i]
		}
	}

	return nil
}

type fakeQRCodeService struct {
	png []byte
	err error
}

func (f *fakeQRCodeService) GenerateDownloadQR(string) ([]byte, error) {
	return f.png, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokenService(t *testing.T, now func() time.Time) service.DownloadTokenService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Download = &config.DownloadConfig{
		Secret: "test-secret",
		TTL:    15 * time.Minute,
	}

	svc, err := token.NewWithClock(cfg, now)
	require.NoError(t, err)

	return svc
}

func testHandleRegistry() service.HandleRegistry {
	return handle.NewRegistryWithScheduler(
		time.Second,
		120*time.Second,
		func(time.Duration, func()) {}, // releases driven manually in tests
		time.Now,
		discardLogger(),
	)
}
