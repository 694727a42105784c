package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fondocore/fondo/internal/adapter/http/dto"
	"github.com/fondocore/fondo/internal/domain"
	"github.com/fondocore/fondo/internal/usecase/mocks"
)

func summaryRow(t *testing.T, resp *dto.SummaryResponse, typeID string) *dto.SummaryRowResponse {
	t.Helper()
	for _, row := range resp.Rows {
		if row.MovementTypeID == typeID {
			return row
		}
	}
	t.Fatalf("no row for type %q", typeID)
	return nil
}

func TestSummaryHandler_Get(t *testing.T) {
	f := newAPIFixture(t)
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	f.seedLedger(t, day)

	rec := f.do(t, http.MethodGet,
		"/api/v1/summary?company_id=company-1&account_id=general_fund&from=2026-01-01&to=2026-01-31", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	summary := decodeBody[dto.SummaryResponse](t, rec)
	if len(summary.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(summary.Rows))
	}
	ventas := summaryRow(t, &summary, "ventas")
	if !ventas.Totals["CRC"].Ingreso.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("ventas ingreso = %s, want 5000", ventas.Totals["CRC"].Ingreso)
	}
	planilla := summaryRow(t, &summary, "planilla")
	if !planilla.Totals["CRC"].Gasto.Equal(decimal.NewFromInt(200)) {
		t.Errorf("planilla gasto = %s, want 200", planilla.Totals["CRC"].Gasto)
	}
	if !summary.NetBalance["CRC"].Equal(decimal.NewFromInt(4800)) {
		t.Errorf("net balance = %s, want 4800", summary.NetBalance["CRC"])
	}
}

func TestSummaryHandler_ExcludeAdjustments(t *testing.T) {
	f := newAPIFixture(t)
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	f.seedLedger(t, day)

	code := domain.ProviderCodeAutoAdjustment
	closingID := "closing-1"
	adjustment := &domain.MovementEntry{
		ID:              "adj-1",
		CompanyID:       "company-1",
		AccountID:       domain.AccountGeneralFund,
		Currency:        domain.CurrencyCRC,
		MovementTypeID:  domain.AdjustmentTypeOverage,
		AmountIncome:    decimal.NewFromInt(250),
		ProviderCode:    &code,
		OriginalEntryID: &closingID,
		CreatedAt:       day.Add(23 * time.Hour),
	}
	if err := f.movementRepo.Create(context.Background(), &mocks.MockTransaction{}, adjustment); err != nil {
		t.Fatalf("seeding adjustment: %v", err)
	}

	rec := f.do(t, http.MethodGet,
		"/api/v1/summary?company_id=company-1&account_id=general_fund&from=2026-01-01&to=2026-01-31&include_adjustments=false", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	summary := decodeBody[dto.SummaryResponse](t, rec)
	if len(summary.Rows) != 2 {
		t.Fatalf("expected 2 rows without adjustments, got %d", len(summary.Rows))
	}
	if !summary.NetBalance["CRC"].Equal(decimal.NewFromInt(4800)) {
		t.Errorf("net balance = %s, want 4800", summary.NetBalance["CRC"])
	}

	// The fixture default includes adjustments.
	rec = f.do(t, http.MethodGet,
		"/api/v1/summary?company_id=company-1&account_id=general_fund&from=2026-01-01&to=2026-01-31", nil)
	summary = decodeBody[dto.SummaryResponse](t, rec)
	if len(summary.Rows) != 3 {
		t.Fatalf("expected 3 rows with adjustments, got %d", len(summary.Rows))
	}
	if !summary.NetBalance["CRC"].Equal(decimal.NewFromInt(5050)) {
		t.Errorf("net balance = %s, want 5050", summary.NetBalance["CRC"])
	}
}

func TestSummaryHandler_BadRequest(t *testing.T) {
	f := newAPIFixture(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing company", "/api/v1/summary?account_id=general_fund&from=2026-01-01&to=2026-01-31"},
		{"missing dates", "/api/v1/summary?company_id=company-1&account_id=general_fund"},
		{"bad date format", "/api/v1/summary?company_id=company-1&account_id=general_fund&from=01/01/2026&to=2026-01-31"},
		{"unknown account", "/api/v1/summary?company_id=company-1&account_id=vault&from=2026-01-01&to=2026-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
