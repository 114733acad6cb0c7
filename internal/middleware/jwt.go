package middleware // middleware provides reusable request processing for handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/utils"
)

// Context keys under which the resolved identity is stored for handlers and
// downstream middleware.
const (
	CtxUser = "usuario" // model.Usuario of the authenticated caller
	CtxRole = "rol"     // stored role name of the caller (raw, not normalized)
)

// UserSource resolves a username to its user row and role name. UsuarioRepo
// satisfies it; tests substitute an in-memory implementation.
type UserSource interface {
	GetByUsernameWithRole(ctx context.Context, nombreUsuario string) (model.Usuario, string, error)
}

// JWTAuth returns middleware that authenticates a request: it extracts the
// Bearer token, verifies signature and expiry, and looks the subject up in
// the database. On success the user and its role name are stored in the Echo
// context.
//
// Every failure along that chain (missing header, malformed or expired
// token, unknown username) produces the same 401 response with a
// WWW-Authenticate challenge. Collapsing the cases is deliberate: a caller
// must not be able to distinguish "bad token" from "user since deleted".
func JWTAuth(secret string, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthenticated(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			username, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return unauthenticated(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, rol, err := users.GetByUsernameWithRole(ctx, username)
			if err != nil {
				return unauthenticated(c)
			}

			c.Set(CtxUser, u)
			c.Set(CtxRole, rol)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context) error {
	c.Response().Header().Set("WWW-Authenticate", "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"detail": "no se pudo validar las credenciales"})
}

// CurrentUser returns the authenticated user stored by JWTAuth. The boolean
// is false on routes that were not wrapped by it.
func CurrentUser(c echo.Context) (model.Usuario, bool) {
	u, ok := c.Get(CtxUser).(model.Usuario)
	return u, ok
}
