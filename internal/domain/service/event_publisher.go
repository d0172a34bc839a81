package service

import (
	"context"
)

// Download event types published to the admin event feed.
const (
	EventTokenIssued       = "token_issued"
	EventDownloadCompleted = "download_completed"
	EventDownloadDenied    = "download_denied"
)

// DownloadEvent records one token or download attempt for reporting.
type DownloadEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Type      string `json:"type"`
	OrderID   string `json:"order_id"`
	FileID    string `json:"file_id"`
	SubjectID string `json:"subject_id,omitempty"`
	Reason    string `json:"reason,omitempty"` // Denial reason, empty on success
}

// EventPublisher defines the interface for publishing download events to a
// message queue for the admin reporting side.
type EventPublisher interface {
	// PublishDownloadEvent publishes a download event for async processing
	PublishDownloadEvent(ctx context.Context, event *DownloadEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
