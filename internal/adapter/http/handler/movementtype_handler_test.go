package handler

import (
	"net/http"
	"testing"

	"github.com/fondocore/fondo/internal/adapter/http/dto"
	"github.com/fondocore/fondo/internal/domain"
)

func addType(t *testing.T, f *apiFixture, category, name string) dto.MovementTypeResponse {
	t.Helper()

	rec := f.do(t, http.MethodPost, "/api/v1/movement-types/", dto.AddTypeRequest{
		OwnerID:  "owner-1",
		Category: category,
		Name:     name,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	return decodeBody[dto.MovementTypeResponse](t, rec)
}

func TestMovementTypeHandler_CreateAndList(t *testing.T) {
	f := newAPIFixture(t)

	first := addType(t, f, string(domain.CategoryIngreso), "Ventas")
	if first.Order != 1 {
		t.Errorf("first order = %d, want 1", first.Order)
	}
	second := addType(t, f, string(domain.CategoryIngreso), "Abonos")
	if second.Order != 2 {
		t.Errorf("second order = %d, want 2", second.Order)
	}
	addType(t, f, string(domain.CategoryGasto), "Planilla")

	rec := f.do(t, http.MethodGet, "/api/v1/movement-types/?owner_id=owner-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	types := decodeBody[[]dto.MovementTypeResponse](t, rec)
	if len(types) != 3 {
		t.Fatalf("expected 3 types, got %d", len(types))
	}
	// Ingreso group first, ordered within the group.
	if types[0].Name != "Ventas" || types[1].Name != "Abonos" || types[2].Name != "Planilla" {
		t.Errorf("catalog order = %q, %q, %q", types[0].Name, types[1].Name, types[2].Name)
	}

	rec = f.do(t, http.MethodGet, "/api/v1/movement-types/", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing owner_id status = %d, want 400", rec.Code)
	}
}

func TestMovementTypeHandler_Create_Invalid(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/movement-types/", dto.AddTypeRequest{
		OwnerID:  "owner-1",
		Category: "OTRO",
		Name:     "Ventas",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMovementTypeHandler_Reorder(t *testing.T) {
	f := newAPIFixture(t)
	addType(t, f, string(domain.CategoryIngreso), "Ventas")
	second := addType(t, f, string(domain.CategoryIngreso), "Abonos")

	rec := f.do(t, http.MethodPost, "/api/v1/movement-types/"+second.ID+"/reorder",
		dto.ReorderTypeRequest{Direction: "up"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/api/v1/movement-types/?owner_id=owner-1", nil)
	types := decodeBody[[]dto.MovementTypeResponse](t, rec)
	if types[0].Name != "Abonos" {
		t.Errorf("first type = %q, want Abonos after reorder", types[0].Name)
	}

	rec = f.do(t, http.MethodPost, "/api/v1/movement-types/"+second.ID+"/reorder",
		dto.ReorderTypeRequest{Direction: "sideways"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad direction status = %d, want 400", rec.Code)
	}
}

func TestMovementTypeHandler_Delete(t *testing.T) {
	f := newAPIFixture(t)
	created := addType(t, f, string(domain.CategoryIngreso), "Ventas")

	rec := f.do(t, http.MethodDelete, "/api/v1/movement-types/"+created.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodGet, "/api/v1/movement-types/?owner_id=owner-1", nil)
	types := decodeBody[[]dto.MovementTypeResponse](t, rec)
	if len(types) != 0 {
		t.Errorf("expected empty catalog, got %d types", len(types))
	}

	rec = f.do(t, http.MethodDelete, "/api/v1/movement-types/"+created.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}
