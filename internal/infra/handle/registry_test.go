package handle

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler records scheduled releases so tests fire them on demand.
type manualScheduler struct {
	delays []time.Duration
	fns    []func()
}

func (s *manualScheduler) schedule(delay time.Duration, fn func()) {
	s.delays = append(s.delays, delay)
	s.fns = append(s.fns, fn)
}

func (s *manualScheduler) fire(i int) {
	s.fns[i]()
}

func newTestRegistry(t *testing.T) (*registry, *manualScheduler) {
	t.Helper()
	sched := &manualScheduler{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := NewRegistryWithScheduler(time.Second, 120*time.Second, sched.schedule, time.Now, logger)

	return reg.(*registry), sched
}

func pdfContent() *entity.FileContent {
	return &entity.FileContent{
		Data:        []byte("%PDF-1.4 fake"),
		ContentType: "application/pdf",
		Size:        13,
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg, _ := newTestRegistry(t)

	h := reg.Register(pdfContent(), "brochure.pdf", "Brochure.pdf", entity.DispositionAttachment)
	require.NotEqual(t, uuid.Nil, h.ID)
	assert.Equal(t, "application/pdf", h.ContentType)
	assert.Equal(t, util.ChecksumBytes([]byte("%PDF-1.4 fake")), h.Checksum)

	got, err := reg.Lookup(h.ID)
	require.NoError(t, err)
	assert.Same(t, h, got)
}

func TestRegistry_DispositionSelectsDelay(t *testing.T) {
	reg, sched := newTestRegistry(t)

	reg.Register(pdfContent(), "a.pdf", "a.pdf", entity.DispositionAttachment)
	reg.Register(pdfContent(), "b.pdf", "b.pdf", entity.DispositionInline)

	require.Len(t, sched.delays, 2)
	assert.Equal(t, time.Second, sched.delays[0])
	assert.Equal(t, 120*time.Second, sched.delays[1])
}

func TestRegistry_ScheduledReleaseInvalidatesHandle(t *testing.T) {
	reg, sched := newTestRegistry(t)

	h := reg.Register(pdfContent(), "a.pdf", "a.pdf", entity.DispositionAttachment)
	sched.fire(0)

	_, err := reg.Lookup(h.ID)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrHandleGone.ErrorCode(), appErr.ErrorCode())
}

func TestRegistry_ReleaseIsExactlyOnce(t *testing.T) {
	reg, sched := newTestRegistry(t)

	h := reg.Register(pdfContent(), "a.pdf", "a.pdf", entity.DispositionAttachment)

	assert.True(t, reg.Release(h.ID))
	assert.False(t, reg.Release(h.ID))

	// The scheduled release after a manual one must be a no-op.
	sched.fire(0)
	assert.False(t, reg.Release(h.ID))
}

func TestRegistry_LookupUnknownHandle(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.Lookup(uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrHandleGone)
}

func TestRegistry_DrainDropsEverything(t *testing.T) {
	reg, _ := newTestRegistry(t)

	h1 := reg.Register(pdfContent(), "a.pdf", "a.pdf", entity.DispositionAttachment)
	h2 := reg.Register(pdfContent(), "b.pdf", "b.pdf", entity.DispositionInline)

	reg.drain()

	_, err := reg.Lookup(h1.ID)
	assert.Error(t, err)
	_, err = reg.Lookup(h2.ID)
	assert.Error(t, err)
}
