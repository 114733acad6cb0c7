package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// DatosTecnicosHandler implements CRUD for the one-to-one technical sheet
// attached to equipment.
type DatosTecnicosHandler struct {
	Datos   *repository.DatosTecnicosRepo
	Equipos *repository.EquipoRepo
	Audit   *repository.AuditoriaRepo
}

func NewDatosTecnicosHandler(datos *repository.DatosTecnicosRepo, equipos *repository.EquipoRepo, audit *repository.AuditoriaRepo) *DatosTecnicosHandler {
	return &DatosTecnicosHandler{Datos: datos, Equipos: equipos, Audit: audit}
}

func (h *DatosTecnicosHandler) Create(c echo.Context) error {
	var d model.DatosTecnicos
	if err := c.Bind(&d); err != nil {
		return invalidBody(c)
	}
	if d.IDEquipo == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_equipo es requerido"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ok, err := h.Equipos.Exists(ctx, d.IDEquipo)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "equipo no encontrado"})
	}

	id, err := h.Datos.Create(ctx, &d)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "el equipo ya tiene datos tecnicos registrados"})
		}
		return repoError(c, err, "equipo no encontrado")
	}
	out, err := h.Datos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "datos tecnicos no encontrados")
	}
	auditar(c, h.Audit, "datos_tecnicos", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *DatosTecnicosHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Datos.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DatosTecnicosHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Datos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "datos tecnicos no encontrados")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DatosTecnicosHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var d model.DatosTecnicos
	if err := c.Bind(&d); err != nil {
		return invalidBody(c)
	}
	d.ID = id

	ctx, cancel := reqCtx(c)
	defer cancel()

	antes, err := h.Datos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "datos tecnicos no encontrados")
	}
	if err := h.Datos.Update(ctx, &d); err != nil {
		return repoError(c, err, "datos tecnicos no encontrados")
	}
	despues, err := h.Datos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "datos tecnicos no encontrados")
	}
	auditar(c, h.Audit, "datos_tecnicos", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *DatosTecnicosHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Datos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "datos tecnicos no encontrados")
	}
	if err := h.Datos.Delete(ctx, id); err != nil {
		return repoError(c, err, "datos tecnicos no encontrados")
	}
	auditar(c, h.Audit, "datos_tecnicos", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
