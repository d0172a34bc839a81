// Package usecase defines the application's use case interfaces.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// IssuedToken is the result of minting a download token for an order file.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// Delivery is the result of a successful download or view attempt: a live
// transient handle the client fetches the bytes from before it is released.
type Delivery struct {
	HandleID    uuid.UUID
	DisplayName string
	ContentType string
	SizeBytes   int64
	ReleaseAt   time.Time
}

// DownloadUsecase drives the secure-download pipeline: minting tokens for
// purchased files and exchanging valid tokens for transient delivery handles.
type DownloadUsecase interface {
	// IssueToken mints a fresh download token for one file of one order,
	// after enforcing order gating against the authenticated subject.
	IssueToken(ctx context.Context, orderID uuid.UUID, fileID string) (*IssuedToken, error)

	// Download runs a download attempt: validate the token against the
	// current subject, fetch the bytes, register an attachment handle.
	// displayName overrides the filename offered to the browser; empty
	// falls back to the order file's stored display name.
	Download(ctx context.Context, token, displayName string) (*Delivery, error)

	// View runs a view attempt: same pipeline with an inline handle and
	// the longer viewing release delay.
	View(ctx context.Context, token string) (*Delivery, error)

	// GenerateQR validates the token for the current subject and renders a
	// QR code PNG of its public view URL for cross-device handoff.
	GenerateQR(ctx context.Context, token string) ([]byte, error)
}
