package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

func newCtx(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestPagingDefaults(t *testing.T) {
	c, _ := newCtx("/repuestos")
	skip, limit := paging(c)
	if skip != 0 || limit != 100 {
		t.Fatalf("paging() = (%d, %d), want (0, 100)", skip, limit)
	}
}

func TestPagingExplicit(t *testing.T) {
	c, _ := newCtx("/repuestos?skip=20&limit=50")
	skip, limit := paging(c)
	if skip != 20 || limit != 50 {
		t.Fatalf("paging() = (%d, %d), want (20, 50)", skip, limit)
	}
}

func TestPagingRejectsOutOfRange(t *testing.T) {
	c, _ := newCtx("/repuestos?skip=-5&limit=100000")
	skip, limit := paging(c)
	if skip != 0 || limit != 100 {
		t.Fatalf("paging() = (%d, %d), want defaults on invalid input", skip, limit)
	}
}

func TestParseIDParam(t *testing.T) {
	c, _ := newCtx("/repuestos/7")
	c.SetParamNames("id")
	c.SetParamValues("7")
	id, err := parseIDParam(c, "id")
	if err != nil || id != 7 {
		t.Fatalf("parseIDParam = (%d, %v), want (7, nil)", id, err)
	}

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c, _ := newCtx("/repuestos/x")
		c.SetParamNames("id")
		c.SetParamValues(bad)
		if _, err := parseIDParam(c, "id"); err == nil {
			t.Fatalf("parseIDParam(%q) accepted", bad)
		}
	}
}

func TestRepoErrorTaxonomy(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantDetail string
	}{
		{repository.ErrNotFound, http.StatusNotFound, "repuesto no encontrado"},
		{repository.ErrConflict, http.StatusBadRequest, "conflicto"},
		{&repository.InsufficientStockError{Disponible: 3, Requerido: 5}, http.StatusBadRequest, "Disponible: 3, Requerido: 5"},
		{errors.New("driver: bad connection"), http.StatusInternalServerError, "error de base de datos"},
	}
	for _, tc := range cases {
		c, rec := newCtx("/repuestos/1")
		if err := repoError(c, tc.err, "repuesto no encontrado"); err != nil {
			t.Fatalf("repoError(%v) returned %v", tc.err, err)
		}
		if rec.Code != tc.wantStatus {
			t.Fatalf("repoError(%v): status = %d, want %d", tc.err, rec.Code, tc.wantStatus)
		}
		if !strings.Contains(rec.Body.String(), tc.wantDetail) {
			t.Fatalf("repoError(%v): body %q missing %q", tc.err, rec.Body.String(), tc.wantDetail)
		}
	}
}

func TestRepoErrorWrappedInsufficientStock(t *testing.T) {
	// The stock error must be recognized through errors.As even when the
	// repository wraps it.
	wrapped := &repository.InsufficientStockError{Disponible: 1, Requerido: 4}
	c, rec := newCtx("/uso-repuestos")
	if err := repoError(c, wrapped, ""); err != nil {
		t.Fatalf("repoError: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
