package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// FabricanteHandler implements manufacturer CRUD.
type FabricanteHandler struct {
	Fabricantes *repository.FabricanteRepo
	Audit       *repository.AuditoriaRepo
}

func NewFabricanteHandler(fabricantes *repository.FabricanteRepo, audit *repository.AuditoriaRepo) *FabricanteHandler {
	return &FabricanteHandler{Fabricantes: fabricantes, Audit: audit}
}

func (h *FabricanteHandler) Create(c echo.Context) error {
	var f model.Fabricante
	if err := c.Bind(&f); err != nil {
		return invalidBody(c)
	}
	f.Nombre = strings.TrimSpace(f.Nombre)
	if f.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_fabricante es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Fabricantes.Create(ctx, &f)
	if err != nil {
		return repoError(c, err, "")
	}
	out, err := h.Fabricantes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "fabricante no encontrado")
	}
	auditar(c, h.Audit, "fabricante", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *FabricanteHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Fabricantes.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FabricanteHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Fabricantes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "fabricante no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *FabricanteHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var f model.Fabricante
	if err := c.Bind(&f); err != nil {
		return invalidBody(c)
	}
	f.ID = id
	f.Nombre = strings.TrimSpace(f.Nombre)
	if f.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_fabricante es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Fabricantes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "fabricante no encontrado")
	}
	if err := h.Fabricantes.Update(ctx, &f); err != nil {
		return repoError(c, err, "fabricante no encontrado")
	}
	despues, err := h.Fabricantes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "fabricante no encontrado")
	}
	auditar(c, h.Audit, "fabricante", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *FabricanteHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Fabricantes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "fabricante no encontrado")
	}
	if err := h.Fabricantes.Delete(ctx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "el fabricante tiene equipos asociados"})
		}
		return repoError(c, err, "fabricante no encontrado")
	}
	auditar(c, h.Audit, "fabricante", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
