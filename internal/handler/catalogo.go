package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// CatalogoHandler serves one of the simple id/name/description lookup
// tables. Instantiated three times, once per table; the tabla field feeds
// the audit trail and the not-found message.
type CatalogoHandler struct {
	Repo  *repository.CatalogoRepo
	Audit *repository.AuditoriaRepo
	tabla string
}

func NewCategoriaHandler(repo *repository.CatalogoRepo, audit *repository.AuditoriaRepo) *CatalogoHandler {
	return &CatalogoHandler{Repo: repo, Audit: audit, tabla: "categoria_equipo"}
}

func NewNivelRiesgoHandler(repo *repository.CatalogoRepo, audit *repository.AuditoriaRepo) *CatalogoHandler {
	return &CatalogoHandler{Repo: repo, Audit: audit, tabla: "nivel_riesgo"}
}

func NewTipoTecnologiaHandler(repo *repository.CatalogoRepo, audit *repository.AuditoriaRepo) *CatalogoHandler {
	return &CatalogoHandler{Repo: repo, Audit: audit, tabla: "tipo_tecnologia"}
}

type catalogoReq struct {
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}

func (h *CatalogoHandler) notFoundMsg() string { return "registro de " + h.tabla + " no encontrado" }

func (h *CatalogoHandler) Create(c echo.Context) error {
	var req catalogoReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Repo.Create(ctx, req.Nombre, req.Descripcion)
	if err != nil {
		return repoError(c, err, "")
	}
	out, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, h.notFoundMsg())
	}
	auditar(c, h.Audit, h.tabla, id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *CatalogoHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repo.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogoHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, h.notFoundMsg())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CatalogoHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var req catalogoReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, h.notFoundMsg())
	}
	if err := h.Repo.Update(ctx, id, req.Nombre, req.Descripcion); err != nil {
		return repoError(c, err, h.notFoundMsg())
	}
	despues, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, h.notFoundMsg())
	}
	auditar(c, h.Audit, h.tabla, id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *CatalogoHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Repo.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, h.notFoundMsg())
	}
	if err := h.Repo.Delete(ctx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "el registro esta en uso por equipos existentes"})
		}
		return repoError(c, err, h.notFoundMsg())
	}
	auditar(c, h.Audit, h.tabla, id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
