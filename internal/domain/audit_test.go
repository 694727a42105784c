package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestDecodeAuditHistory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty string", raw: "", want: 0},
		{
			name: "canonical list",
			raw:  `[{"at":"2026-01-10T18:30:00Z","before":"100","after":"150"},{"at":"2026-01-11T09:00:00Z","before":"150","after":"120"}]`,
			want: 2,
		},
		{
			name: "legacy single object wrapped",
			raw:  `{"before":"100","after":"150"}`,
			want: 1,
		},
		{name: "garbage degrades to empty", raw: `{{not json`, want: 0},
		{name: "unrelated object degrades to empty", raw: `{"foo":"bar"}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := DecodeAuditHistory(tt.raw)
			if len(history) != tt.want {
				t.Errorf("DecodeAuditHistory(%q) returned %d records, want %d", tt.raw, len(history), tt.want)
			}
		})
	}
}

func TestDecodeAuditHistory_PreservesOrder(t *testing.T) {
	t.Parallel()

	raw := `[{"before":"100","after":"150"},{"before":"150","after":"120"}]`
	history := DecodeAuditHistory(raw)
	if len(history) != 2 {
		t.Fatalf("expected 2 records, got %d", len(history))
	}
	if !history[0].After.Equal(history[1].Before) {
		t.Errorf("records out of order: first.after=%s second.before=%s", history[0].After, history[1].Before)
	}
}

func TestAppendEdit(t *testing.T) {
	t.Parallel()

	entry := &MovementEntry{AmountIncome: decimal.NewFromInt(150)}
	now := time.Date(2026, 1, 10, 18, 30, 0, 0, time.UTC)

	AppendEdit(entry, decimal.NewFromInt(100), decimal.NewFromInt(150), now)
	AppendEdit(entry, decimal.NewFromInt(150), decimal.NewFromInt(120), now.Add(time.Hour))
	AppendEdit(entry, decimal.NewFromInt(120), decimal.NewFromInt(130), now.Add(2*time.Hour))

	history := DecodeAuditHistory(entry.AuditDetails)
	if len(history) != 3 {
		t.Fatalf("expected 3 records after 3 edits, got %d", len(history))
	}
	if !history[0].Before.Equal(decimal.NewFromInt(100)) {
		t.Errorf("first record before = %s, want 100", history[0].Before)
	}
	if !history[2].After.Equal(decimal.NewFromInt(130)) {
		t.Errorf("last record after = %s, want 130", history[2].After)
	}
}

func TestAppendEdit_ExtendsLegacyHistory(t *testing.T) {
	t.Parallel()

	entry := &MovementEntry{
		AmountIncome: decimal.NewFromInt(150),
		AuditDetails: `{"before":"100","after":"150"}`,
	}

	AppendEdit(entry, decimal.NewFromInt(150), decimal.NewFromInt(200), time.Now())

	history := DecodeAuditHistory(entry.AuditDetails)
	if len(history) != 2 {
		t.Fatalf("expected legacy record plus new edit, got %d records", len(history))
	}
	if !history[0].Before.Equal(decimal.NewFromInt(100)) {
		t.Errorf("legacy record lost: before = %s, want 100", history[0].Before)
	}
}

func TestLastChange(t *testing.T) {
	t.Parallel()

	entry := &MovementEntry{AmountIncome: decimal.NewFromInt(100)}
	if _, ok := LastChange(entry); ok {
		t.Error("expected no change on a fresh entry")
	}

	AppendEdit(entry, decimal.NewFromInt(100), decimal.NewFromInt(90), time.Now())
	change, ok := LastChange(entry)
	if !ok {
		t.Fatal("expected a change record after an edit")
	}
	if !change.After.Equal(decimal.NewFromInt(90)) {
		t.Errorf("last change after = %s, want 90", change.After)
	}
}

func TestEncodeAuditHistory_EmptyIsEmptyString(t *testing.T) {
	t.Parallel()

	if got := EncodeAuditHistory(nil); got != "" {
		t.Errorf("EncodeAuditHistory(nil) = %q, want empty string", got)
	}
}
