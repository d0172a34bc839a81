// Package token implements the signed, expiring capability tokens that gate
// access to purchased deliverable files.
package token

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf16"
)

// digestInput is the field set the signature covers. Serialization order is
// part of the wire contract: the validator recomputes the digest over the
// same canonical string, so the fields must stay in this exact order.
type digestInput struct {
	FileID       string `json:"fileId"`
	OrderID      string `json:"orderId"`
	SubjectEmail string `json:"subjectEmail"`
	SubjectID    string `json:"subjectId"`
	ExpiresAt    int64  `json:"expiresAt"`
	IssuedAt     int64  `json:"issuedAt"`
	Secret       string `json:"secret"`
}

// digest folds the canonical JSON serialization of in into a 32-bit integer
// with a polynomial rolling hash (h = h*31 + unit, wrapping each step) over
// UTF-16 code units, then returns the absolute value encoded in base 36.
//
// This is NOT cryptographically secure. It has no collision resistance and
// its tamper evidence rests entirely on the secrecy of the appended secret
// field. Treat it as an integrity checksum against casual link editing, never
// as a security-grade MAC.
func digest(in digestInput) string {
	canonical := canonicalJSON(in)

	var h int32
	for _, unit := range utf16.Encode([]rune(canonical)) {
		h = h*31 + int32(unit)
	}

	n := int64(h)
	if n < 0 {
		n = -n
	}

	return strconv.FormatInt(n, 36)
}

// canonicalJSON serializes v with struct field order preserved and HTML
// escaping disabled, so the same value always yields the same byte string.
func canonicalJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding flat structs of strings and integers cannot fail.
	_ = enc.Encode(v)

	return strings.TrimSuffix(buf.String(), "\n")
}
