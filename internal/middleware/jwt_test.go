package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
	"github.com/edwinroj/biomedical-inventory/internal/utils"
)

const testSecret = "secreto-de-prueba"

// fakeUsers is an in-memory UserSource.
type fakeUsers struct {
	users map[string]model.Usuario
	roles map[string]string
}

func (f *fakeUsers) GetByUsernameWithRole(_ context.Context, nombreUsuario string) (model.Usuario, string, error) {
	u, ok := f.users[nombreUsuario]
	if !ok {
		return model.Usuario{}, "", repository.ErrNotFound
	}
	return u, f.roles[nombreUsuario], nil
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{
		users: map[string]model.Usuario{
			"admin": {ID: 1, NombreUsuario: "admin", NombreCompleto: "Ana Admin", IDRol: 1},
		},
		roles: map[string]string{
			"admin": "Administrador",
		},
	}
}

func doAuth(t *testing.T, users UserSource, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := JWTAuth(testSecret, users)(func(c echo.Context) error {
		u, ok := CurrentUser(c)
		if !ok {
			t.Fatal("handler reached without user in context")
		}
		return c.JSON(http.StatusOK, echo.Map{"usuario": u.NombreUsuario})
	})
	if err := h(c); err != nil {
		t.Fatalf("middleware chain: %v", err)
	}
	return rec
}

func TestJWTAuthNoHeader(t *testing.T) {
	rec := doAuth(t, newFakeUsers(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("WWW-Authenticate = %q, want Bearer", got)
	}
}

func TestJWTAuthMalformedToken(t *testing.T) {
	rec := doAuth(t, newFakeUsers(), "Bearer basura")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongScheme(t *testing.T) {
	rec := doAuth(t, newFakeUsers(), "Basic YWRtaW46YWRtaW4=")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthUnknownUser(t *testing.T) {
	// A valid token whose subject was deleted after issuance must behave
	// exactly like a bad token.
	tok, err := utils.NewAccessToken(testSecret, "fantasma", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := doAuth(t, newFakeUsers(), "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("WWW-Authenticate = %q, want Bearer", got)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, "admin", 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := doAuth(t, newFakeUsers(), "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
}
