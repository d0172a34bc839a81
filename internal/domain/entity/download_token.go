package entity

import "time"

// TokenPayload is the decoded body of a download token. A token is an opaque,
// self-contained capability string binding a deliverable file, the order it
// was purchased through, and the buyer's identity, with a fixed expiry.
//
// Field order matters: the signature is computed over the canonical JSON
// serialization of these fields in declaration order, so reordering them
// changes which tokens verify.
type TokenPayload struct {
	FileID       string `json:"fileId"`
	OrderID      string `json:"orderId"`
	SubjectEmail string `json:"subjectEmail"`
	SubjectID    string `json:"subjectId"`
	ExpiresAt    int64  `json:"expiresAt"` // epoch milliseconds
	IssuedAt     int64  `json:"issuedAt"`  // epoch milliseconds
	Signature    string `json:"signature"`
}

// IsExpired reports whether the token is past its expiry at the given instant.
// A token is still valid at exactly ExpiresAt.
func (p *TokenPayload) IsExpired(now time.Time) bool {
	return now.UnixMilli() > p.ExpiresAt
}

// BoundTo reports whether the token is bound to the given subject.
// Email and id must both match exactly.
func (p *TokenPayload) BoundTo(subject *Subject) bool {
	return subject != nil && p.SubjectEmail == subject.Email && p.SubjectID == subject.ID
}
