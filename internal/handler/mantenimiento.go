package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/middleware"
	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// MantenimientoHandler implements maintenance event CRUD plus the
// per-equipment history and per-event spare part usage listings.
type MantenimientoHandler struct {
	Mantenimientos *repository.MantenimientoRepo
	Equipos        *repository.EquipoRepo
	Usos           *repository.UsoRepuestoRepo
	Audit          *repository.AuditoriaRepo
}

func NewMantenimientoHandler(mantenimientos *repository.MantenimientoRepo, equipos *repository.EquipoRepo, usos *repository.UsoRepuestoRepo, audit *repository.AuditoriaRepo) *MantenimientoHandler {
	return &MantenimientoHandler{Mantenimientos: mantenimientos, Equipos: equipos, Usos: usos, Audit: audit}
}

func tipoVacio(tipo *string) bool {
	return tipo == nil || strings.TrimSpace(*tipo) == ""
}

func (h *MantenimientoHandler) Create(c echo.Context) error {
	var m model.Mantenimiento
	if err := c.Bind(&m); err != nil {
		return invalidBody(c)
	}
	if m.IDEquipo == 0 || tipoVacio(m.TipoMantenimiento) {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_equipo y tipo_mantenimiento son requeridos"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Equipos.Exists(ctx, m.IDEquipo)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "equipo no encontrado"})
	}

	if u, ok := middleware.CurrentUser(c); ok {
		uid := u.ID
		m.IDUsuarioRegistro = &uid
	}

	id, err := h.Mantenimientos.Create(ctx, &m)
	if err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	out, err := h.Mantenimientos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "mantenimiento no encontrado")
	}
	auditar(c, h.Audit, "mantenimiento", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *MantenimientoHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Mantenimientos.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MantenimientoHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Mantenimientos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "mantenimiento no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

// PorEquipo returns the maintenance history of one piece of equipment.
func (h *MantenimientoHandler) PorEquipo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Equipos.Exists(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "equipo no encontrado"})
	}
	out, err := h.Mantenimientos.ListByEquipo(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

// UsosDeMantenimiento lists the spare part usages recorded under one
// maintenance event.
func (h *MantenimientoHandler) UsosDeMantenimiento(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Mantenimientos.Exists(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "mantenimiento no encontrado"})
	}
	out, err := h.Usos.ListByMantenimiento(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MantenimientoHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var m model.Mantenimiento
	if err := c.Bind(&m); err != nil {
		return invalidBody(c)
	}
	m.ID = id
	if m.IDEquipo == 0 || tipoVacio(m.TipoMantenimiento) {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_equipo y tipo_mantenimiento son requeridos"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	antes, err := h.Mantenimientos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "mantenimiento no encontrado")
	}
	ok, err := h.Equipos.Exists(ctx, m.IDEquipo)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "equipo no encontrado"})
	}
	if err := h.Mantenimientos.Update(ctx, &m); err != nil {
		return repoError(c, err, "mantenimiento no encontrado")
	}
	despues, err := h.Mantenimientos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "mantenimiento no encontrado")
	}
	auditar(c, h.Audit, "mantenimiento", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

// Delete removes a maintenance event. Usage rows under it are cascade
// deleted by the schema without restoring stock; callers who want stock back
// must delete the usages first.
func (h *MantenimientoHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Mantenimientos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "mantenimiento no encontrado")
	}
	if err := h.Mantenimientos.Delete(ctx, id); err != nil {
		return repoError(c, err, "mantenimiento no encontrado")
	}
	auditar(c, h.Audit, "mantenimiento", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
