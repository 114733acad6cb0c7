package handler

import (
	"net/http"
	"testing"
	"time"
)

func TestAnioParamDefaultsToCurrentYear(t *testing.T) {
	c, _ := newCtx("/estadisticas/ventas/por-mes")
	anio, ok := anioParam(c)
	if !ok || anio != time.Now().UTC().Year() {
		t.Fatalf("anioParam = (%d, %v), want current year", anio, ok)
	}
}

func TestAnioParamRejectsInvalid(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-2024"} {
		c, _ := newCtx("/estadisticas/ventas/por-mes?anio=" + bad)
		if _, ok := anioParam(c); ok {
			t.Fatalf("anioParam(%q) accepted", bad)
		}
	}
}

func TestVentasPorMesRejectsBadYear(t *testing.T) {
	h := NewEstadisticasHandler(nil)
	c, rec := newCtx("/estadisticas/ventas/por-mes?anio=abc")
	if err := h.VentasPorMes(c); err != nil {
		t.Fatalf("VentasPorMes: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestLimitParam(t *testing.T) {
	c, _ := newCtx("/estadisticas/repuestos/mas-usados")
	if got := limitParam(c, 10); got != 10 {
		t.Fatalf("default limit = %d, want 10", got)
	}
	c, _ = newCtx("/estadisticas/repuestos/mas-usados?limit=5")
	if got := limitParam(c, 10); got != 5 {
		t.Fatalf("explicit limit = %d, want 5", got)
	}
	c, _ = newCtx("/estadisticas/repuestos/mas-usados?limit=5000")
	if got := limitParam(c, 10); got != 10 {
		t.Fatalf("oversized limit = %d, want the default", got)
	}
}
