package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/utils"
)

// Canonical role names. The historical rol table holds these in assorted
// casings and accent variants ("Técnico de Mantenimiento", "TECNICO DE
// MANTENIMIENTO", "Tecnico De Mantenimiento", ...); the gate compares
// normalized forms, so any stored spelling matches its canonical role here.
const (
	RolAdministrador = "Administrador"
	RolTecnico       = "Tecnico de Mantenimiento"
	RolCompras       = "Responsable de Compras"
	RolGestor        = "Gestor Biomedico"
	RolConsulta      = "Usuario Consulta"
)

// RoleSet is a declared allow-list for an endpoint family. Route
// registration references these named sets instead of repeating string
// literals per call site.
type RoleSet []string

var (
	SoloAdmin            = RoleSet{RolAdministrador}
	AdminOTecnico        = RoleSet{RolAdministrador, RolTecnico}
	AdminOCompras        = RoleSet{RolAdministrador, RolCompras}
	AdminOGestor         = RoleSet{RolAdministrador, RolGestor}
	AdminGestorOCompras  = RoleSet{RolAdministrador, RolGestor, RolCompras}
	AdminTecnicoOCompras = RoleSet{RolAdministrador, RolTecnico, RolCompras}
	// CualquierAutenticado accepts every defined role; authentication alone
	// is enforced by JWTAuth, this set only rejects users whose stored role
	// is missing or unrecognized.
	CualquierAutenticado = RoleSet{RolAdministrador, RolTecnico, RolCompras, RolGestor, RolConsulta}
)

// RequireRole returns middleware enforcing that the authenticated caller's
// role is in the allowed set. It assumes JWTAuth already stored the role
// name in the context. Comparison happens on utils.NormalizeRole forms of
// both sides. Callers whose role is absent or not allowed get 403 with a
// message listing the acceptable canonical role names.
func RequireRole(allowed RoleSet) echo.MiddlewareFunc {
	normalized := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		normalized[utils.NormalizeRole(r)] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rol, ok := c.Get(CtxRole).(string)
			if !ok || rol == "" || !normalized[utils.NormalizeRole(rol)] {
				return c.JSON(http.StatusForbidden, echo.Map{
					"detail": "no tiene permisos. Se requiere uno de estos roles: " + strings.Join(allowed, ", "),
				})
			}
			return next(c)
		}
	}
}
