package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/config"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// UsuarioHandler implements the administrator-only user management
// endpoints.
type UsuarioHandler struct {
	Cfg   config.Config
	Users *repository.UsuarioRepo
	Roles *repository.RolRepo
	Audit *repository.AuditoriaRepo
}

func NewUsuarioHandler(cfg config.Config, users *repository.UsuarioRepo, roles *repository.RolRepo, audit *repository.AuditoriaRepo) *UsuarioHandler {
	return &UsuarioHandler{Cfg: cfg, Users: users, Roles: roles, Audit: audit}
}

type usuarioCreateReq struct {
	NombreCompleto string `json:"nombre_completo"`
	NombreUsuario  string `json:"nombre_usuario"`
	Contrasena     string `json:"contrasena"`
	IDRol          uint64 `json:"id_rol"`
}

type usuarioUpdateReq struct {
	NombreCompleto string `json:"nombre_completo"`
	Contrasena     string `json:"contrasena"` // empty keeps the current password
	IDRol          uint64 `json:"id_rol"`
}

func (h *UsuarioHandler) Create(c echo.Context) error {
	var req usuarioCreateReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.NombreUsuario = strings.TrimSpace(req.NombreUsuario)
	if req.NombreUsuario == "" || req.Contrasena == "" || req.IDRol == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_usuario, contrasena e id_rol son requeridos"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// The role must exist before the insert so the caller gets a 404 naming
	// the real problem instead of a driver FK error.
	if _, err := h.Roles.GetByID(ctx, req.IDRol); err != nil {
		return repoError(c, err, "rol no encontrado")
	}

	id, err := h.Users.Create(ctx, req.NombreCompleto, req.NombreUsuario, req.Contrasena, req.IDRol, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrUsernameExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "el nombre de usuario ya existe"})
		}
		return repoError(c, err, "rol no encontrado")
	}

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	auditar(c, h.Audit, "usuario", id, "INSERT", nil, u)
	return c.JSON(http.StatusCreated, u)
}

func (h *UsuarioHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	users, err := h.Users.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, users)
}

func (h *UsuarioHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	return c.JSON(http.StatusOK, u)
}

// GetByUsername looks a user up by login name. The repository normalizes
// the name the same way it does on create, so the lookup is case-stable.
func (h *UsuarioHandler) GetByUsername(c echo.Context) error {
	nombre := strings.TrimSpace(c.Param("nombre_usuario"))
	if nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_usuario es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	u, err := h.Users.GetByUsername(ctx, nombre)
	if err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UsuarioHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var req usuarioUpdateReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if req.IDRol == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_rol es requerido"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	antes, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	if _, err := h.Roles.GetByID(ctx, req.IDRol); err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	if err := h.Users.Update(ctx, id, req.NombreCompleto, req.IDRol, req.Contrasena, h.Cfg.BcryptCost); err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	despues, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	auditar(c, h.Audit, "usuario", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *UsuarioHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	antes, err := h.Users.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	if err := h.Users.Delete(ctx, id); err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	auditar(c, h.Audit, "usuario", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
