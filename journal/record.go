// Package journal persists an append-only log of clipboard deliveries.
//
// Each record is a length-prefixed msgpack frame. Delivered content is
// never stored; records carry its SHA-256 digest and length so a session
// can be audited without leaking the document.
package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
	"unicode/utf8"
)

// RecordType discriminates journal records.
type RecordType string

// Record types, in the order a session emits them.
const (
	TypeSessionStart RecordType = "session_start"
	TypeHeader       RecordType = "header"
	TypeDeliver      RecordType = "deliver"
	TypeReplay       RecordType = "replay"
	TypeFooter       RecordType = "footer"
	TypeClear        RecordType = "clear"
	TypeSessionEnd   RecordType = "session_end"
)

// Record is one journal entry.
type Record struct {
	Type      RecordType `msgpack:"type" json:"type" yaml:"type"`
	Seq       int64      `msgpack:"seq" json:"seq" yaml:"seq"`
	SessionID string     `msgpack:"session_id" json:"session_id" yaml:"session_id"`
	Time      time.Time  `msgpack:"time" json:"time" yaml:"time"`

	// Source is set on session_start.
	Source string `msgpack:"source,omitempty" json:"source,omitempty" yaml:"source,omitempty"`
	// Reason is set on session_end ("quit", "done" or "error").
	Reason string `msgpack:"reason,omitempty" json:"reason,omitempty" yaml:"reason,omitempty"`

	// Start and Next are the line range [Start, Next) of a fragment.
	Start int `msgpack:"start" json:"start" yaml:"start"`
	Next  int `msgpack:"next" json:"next" yaml:"next"`
	Units int `msgpack:"units" json:"units" yaml:"units"`

	// Digest is the hex SHA-256 of the delivered text; Length its rune count.
	Digest string `msgpack:"digest,omitempty" json:"digest,omitempty" yaml:"digest,omitempty"`
	Length int    `msgpack:"length" json:"length" yaml:"length"`
}

// Digest returns the hex SHA-256 of text.
func Digest(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// WithContent fills Digest and Length from text.
func (r Record) WithContent(text string) Record {
	r.Digest = Digest(text)
	r.Length = utf8.RuneCountInString(text)
	return r
}
