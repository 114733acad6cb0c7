package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

// An omitted cantidad_usada must be distinguishable from an explicit value:
// the first keeps the stored quantity, the second replaces it.
func TestUsoUpdateReqPartialDecoding(t *testing.T) {
	var priceOnly usoUpdateReq
	if err := json.Unmarshal([]byte(`{"precio_unitario": 99.5}`), &priceOnly); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if priceOnly.CantidadUsada != nil {
		t.Fatalf("omitted cantidad_usada decoded as %d, want nil", *priceOnly.CantidadUsada)
	}
	if priceOnly.PrecioUnitario == nil || *priceOnly.PrecioUnitario != 99.5 {
		t.Fatalf("precio_unitario = %v, want 99.5", priceOnly.PrecioUnitario)
	}

	var withQty usoUpdateReq
	if err := json.Unmarshal([]byte(`{"cantidad_usada": 3}`), &withQty); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if withQty.CantidadUsada == nil || *withQty.CantidadUsada != 3 {
		t.Fatalf("cantidad_usada = %v, want 3", withQty.CantidadUsada)
	}
}

func TestActualizarRejectsExplicitZeroQuantity(t *testing.T) {
	h := NewUsoRepuestoHandler(nil, nil)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/uso-repuestos/1/2",
		strings.NewReader(`{"cantidad_usada": 0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id_mantenimiento", "id_repuesto")
	c.SetParamValues("1", "2")

	if err := h.Actualizar(c); err != nil {
		t.Fatalf("Actualizar: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
