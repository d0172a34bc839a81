package entity

import (
	"time"

	"github.com/google/uuid"
)

// HandleDisposition selects how a delivery handle is served to the client.
type HandleDisposition string

const (
	// DispositionAttachment triggers a browser download of the bytes.
	DispositionAttachment HandleDisposition = "attachment"
	// DispositionInline opens the bytes for viewing in the browser.
	DispositionInline HandleDisposition = "inline"
)

// DeliveryHandle is a transient, in-memory reference to fetched file bytes.
// It is owned exclusively by the download or view attempt that created it and
// is released exactly once by a scheduled task: shortly after a download is
// triggered, or after a longer viewing window for inline delivery. After
// release the handle is gone; a new attempt mints a new token and a new handle.
type DeliveryHandle struct {
	ID          uuid.UUID
	FileID      string
	DisplayName string
	ContentType string
	Disposition HandleDisposition
	Data        []byte
	Checksum    string // hex SHA-256 of Data, served as ETag
	CreatedAt   time.Time
	ReleaseAt   time.Time
}
