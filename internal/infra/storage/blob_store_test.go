package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"
)

func newTestBucket(t *testing.T) *blob.Bucket {
	t.Helper()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() {
		_ = bucket.Close()
	})

	return bucket
}

func writeDeliverable(t *testing.T, bucket *blob.Bucket, fileID, contentType string, data []byte) {
	t.Helper()
	err := bucket.WriteAll(context.Background(), service.OrderFilesNamespace+"/"+fileID, data, &blob.WriterOptions{
		ContentType: contentType,
	})
	require.NoError(t, err)
}

func TestBlobFileStore_FetchReturnsContent(t *testing.T) {
	bucket := newTestBucket(t)
	writeDeliverable(t, bucket, "brochure.pdf", "application/pdf", []byte("%PDF-1.4 fake"))

	store := NewBlobFileStoreWithBucket(bucket, slog.New(slog.NewTextHandler(io.Discard, nil)))

	content, err := store.Fetch(context.Background(), "brochure.pdf")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), content.Data)
	assert.Equal(t, "application/pdf", content.ContentType)
	assert.Equal(t, int64(len("%PDF-1.4 fake")), content.Size)
}

func TestBlobFileStore_FetchScopedToNamespace(t *testing.T) {
	bucket := newTestBucket(t)

	// A key outside the order-files namespace must not be reachable.
	err := bucket.WriteAll(context.Background(), "public/brochure.pdf", []byte("outside"), nil)
	require.NoError(t, err)

	store := NewBlobFileStoreWithBucket(bucket, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err = store.Fetch(context.Background(), "brochure.pdf")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrFetchFailed.ErrorCode(), appErr.ErrorCode())
}

func TestBlobFileStore_FetchMissingFileMapsToFetchFailed(t *testing.T) {
	bucket := newTestBucket(t)
	store := NewBlobFileStoreWithBucket(bucket, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := store.Fetch(context.Background(), "no-such-file.zip")
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrFetchFailed.ErrorCode(), appErr.ErrorCode())
	assert.NotEmpty(t, appErr.Details())
}

func TestGuessContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", guessContentType("file.pdf"))
	assert.Equal(t, "application/octet-stream", guessContentType("file.unknownext"))
	assert.Equal(t, "application/octet-stream", guessContentType("noextension"))
}
