package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// RolHandler implements the administrator-only role catalog endpoints.
type RolHandler struct {
	Roles *repository.RolRepo
	Audit *repository.AuditoriaRepo
}

func NewRolHandler(roles *repository.RolRepo, audit *repository.AuditoriaRepo) *RolHandler {
	return &RolHandler{Roles: roles, Audit: audit}
}

type rolReq struct {
	Nombre string `json:"nombre_rol"`
}

func (h *RolHandler) Create(c echo.Context) error {
	var req rolReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_rol es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Roles.Create(ctx, req.Nombre)
	if err != nil {
		return repoError(c, err, "")
	}
	rol, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	auditar(c, h.Audit, "rol", id, "INSERT", nil, rol)
	return c.JSON(http.StatusCreated, rol)
}

func (h *RolHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	roles, err := h.Roles.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, roles)
}

func (h *RolHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	rol, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	return c.JSON(http.StatusOK, rol)
}

func (h *RolHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var req rolReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_rol es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	if err := h.Roles.Update(ctx, id, req.Nombre); err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	despues, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	auditar(c, h.Audit, "rol", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *RolHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Roles.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	if err := h.Roles.Delete(ctx, id); err != nil {
		return repoError(c, err, "rol no encontrado")
	}
	auditar(c, h.Audit, "rol", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
