package handler

import (
	"net/http"
	"testing"
)

func TestPorOperacionRejectsUnknownType(t *testing.T) {
	h := NewAuditoriaHandler(nil)
	for _, op := range []string{"MERGE", "TRUNCATE", "select", ""} {
		c, rec := newCtx("/auditoria/operacion/" + op)
		c.SetParamNames("operacion")
		c.SetParamValues(op)
		if err := h.PorOperacion(c); err != nil {
			t.Fatalf("PorOperacion(%q): %v", op, err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("PorOperacion(%q) status = %d, want 400", op, rec.Code)
		}
	}
}

func TestHistorialRegistroRejectsBadID(t *testing.T) {
	h := NewAuditoriaHandler(nil)
	c, rec := newCtx("/auditoria/registro/usuario/abc")
	c.SetParamNames("tabla", "id_registro")
	c.SetParamValues("usuario", "abc")
	if err := h.HistorialRegistro(c); err != nil {
		t.Fatalf("HistorialRegistro: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
