// Package storage fetches order deliverables from the backing object store.
package storage

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path"

	"vitrine/config"
	"vitrine/internal/domain/entity"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Register the file:// bucket scheme for local development.
	_ "gocloud.dev/blob/fileblob"
)

// blobFileStore fetches deliverable bytes from a gocloud bucket. All keys
// live under the order-files namespace; the service never reads outside it.
type blobFileStore struct {
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params holds dependencies for the file store, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobFileStore opens the configured bucket and registers its shutdown.
func NewBlobFileStore(params Params) (service.FileStore, error) {
	cfg := params.Config.Storage
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("storage bucket URL must be configured")
	}

	bucket, err := blob.OpenBucket(params.Ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", cfg.BucketURL)
	}

	params.Logger.Info("File store bucket opened",
		slog.String("bucket_url", cfg.BucketURL),
	)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing file store bucket")

			return bucket.Close()
		},
	})

	return &blobFileStore{bucket: bucket, logger: params.Logger}, nil
}

// NewBlobFileStoreWithBucket wraps an already opened bucket. Used by tests.
func NewBlobFileStoreWithBucket(bucket *blob.Bucket, logger *slog.Logger) service.FileStore {
	return &blobFileStore{bucket: bucket, logger: logger}
}

// Fetch reads the deliverable identified by fileID from the order-files
// namespace. Provider failures are mapped onto the application taxonomy: a
// permission denial surfaces the bucket-permission guidance, everything else
// a generic fetch failure.
func (s *blobFileStore) Fetch(ctx context.Context, fileID string) (*entity.FileContent, error) {
	key := path.Join(service.OrderFilesNamespace, fileID)

	reader, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, s.mapFetchError(err, key)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, s.mapFetchError(err, key)
	}

	contentType := reader.ContentType()
	if contentType == "" {
		contentType = guessContentType(fileID)
	}

	return &entity.FileContent{
		Data:        data,
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (s *blobFileStore) mapFetchError(err error, key string) error {
	code := gcerrors.Code(err)

	s.logger.Warn("File store fetch failed",
		slog.String("key", key),
		slog.Int("gcerror_code", int(code)),
		slog.Any("error", err),
	)

	if code == gcerrors.PermissionDenied {
		return domainerrors.ErrAuthorizationDenied.WithDetails(err.Error())
	}

	return domainerrors.ErrFetchFailed.WithDetails(err.Error())
}

// guessContentType falls back to the file extension when the store carries
// no content type metadata.
func guessContentType(fileID string) string {
	if byExt := mime.TypeByExtension(path.Ext(fileID)); byExt != "" {
		return byExt
	}

	return "application/octet-stream"
}

// Module provides the storage FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewBlobFileStore),
)
