package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// ChangeRecord is one amount edit of an adjustment entry.
type ChangeRecord struct {
	At     time.Time       `json:"at"`
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
}

// DecodeAuditHistory parses the serialized edit history of an entry into the
// canonical ordered list. Two legacy shapes are tolerated: a single
// {before,after} object is wrapped as a one-element history, and anything
// unparseable degrades to an empty history. It never fails: recording the
// next edit matters more than preserving unreadable legacy data.
func DecodeAuditHistory(raw string) []ChangeRecord {
	if raw == "" {
		return nil
	}

	var history []ChangeRecord
	if err := json.Unmarshal([]byte(raw), &history); err == nil {
		return history
	}

	var single ChangeRecord
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if !single.Before.IsZero() || !single.After.IsZero() {
			return []ChangeRecord{single}
		}
	}

	return nil
}

// EncodeAuditHistory serializes a history for storage.
func EncodeAuditHistory(history []ChangeRecord) string {
	if len(history) == 0 {
		return ""
	}
	data, err := json.Marshal(history)
	if err != nil {
		return ""
	}
	return string(data)
}

// AppendEdit records an amount change on the entry's audit trail. Existing
// history is never overwritten, only extended.
func AppendEdit(entry *MovementEntry, before, after decimal.Decimal, at time.Time) {
	history := DecodeAuditHistory(entry.AuditDetails)
	history = append(history, ChangeRecord{At: at, Before: before, After: after})
	entry.AuditDetails = EncodeAuditHistory(history)
}

// LastChange returns the most recent edit, if any.
func LastChange(entry *MovementEntry) (ChangeRecord, bool) {
	history := DecodeAuditHistory(entry.AuditDetails)
	if len(history) == 0 {
		return ChangeRecord{}, false
	}
	return history[len(history)-1], true
}
