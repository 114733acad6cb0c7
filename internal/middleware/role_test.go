package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func doRole(t *testing.T, storedRole string, allowed RoleSet) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/recurso", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if storedRole != "" {
		c.Set(CtxRole, storedRole)
	}

	h := RequireRole(allowed)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware chain: %v", err)
	}
	return rec
}

func TestRequireRoleExactMatch(t *testing.T) {
	rec := doRole(t, "Administrador", SoloAdmin)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRoleAccentAndCaseVariants(t *testing.T) {
	// Every stored spelling of the technician role must satisfy a gate that
	// allows the canonical "Tecnico de Mantenimiento".
	variants := []string{
		"Tecnico de Mantenimiento",
		"Técnico de Mantenimiento",
		"TECNICO DE MANTENIMIENTO",
		"tecnico de mantenimiento",
		"Tecnico  De  Mantenimiento",
	}
	for _, v := range variants {
		rec := doRole(t, v, AdminOTecnico)
		if rec.Code != http.StatusOK {
			t.Fatalf("stored role %q: status = %d, want 200", v, rec.Code)
		}
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	rec := doRole(t, "Usuario Consulta", AdminOTecnico)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	body := rec.Body.String()
	// The denial must name the acceptable canonical roles.
	if !strings.Contains(body, RolAdministrador) || !strings.Contains(body, RolTecnico) {
		t.Fatalf("403 body does not list allowed roles: %s", body)
	}
}

func TestRequireRoleMissingRole(t *testing.T) {
	rec := doRole(t, "", SoloAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleUnknownRole(t *testing.T) {
	rec := doRole(t, "Becario", CualquierAutenticado)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}
