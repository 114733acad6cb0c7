package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/middleware"
	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// EquipoHandler implements biomedical equipment CRUD. Every optional
// classification reference is validated before the write so the caller sees
// which one is dangling instead of a generic constraint error.
type EquipoHandler struct {
	Equipos     *repository.EquipoRepo
	Ubicaciones *repository.UbicacionRepo
	Fabricantes *repository.FabricanteRepo
	Categorias  *repository.CatalogoRepo
	Riesgos     *repository.CatalogoRepo
	Tecnologias *repository.CatalogoRepo
	Datos       *repository.DatosTecnicosRepo
	Audit       *repository.AuditoriaRepo
}

func NewEquipoHandler(
	equipos *repository.EquipoRepo,
	ubicaciones *repository.UbicacionRepo,
	fabricantes *repository.FabricanteRepo,
	categorias, riesgos, tecnologias *repository.CatalogoRepo,
	datos *repository.DatosTecnicosRepo,
	audit *repository.AuditoriaRepo,
) *EquipoHandler {
	return &EquipoHandler{
		Equipos:     equipos,
		Ubicaciones: ubicaciones,
		Fabricantes: fabricantes,
		Categorias:  categorias,
		Riesgos:     riesgos,
		Tecnologias: tecnologias,
		Datos:       datos,
		Audit:       audit,
	}
}

// validarReferencias checks every non-nil classification FK. Returns the
// name of the first missing reference, or "" when all resolve.
func (h *EquipoHandler) validarReferencias(ctx context.Context, e *model.EquipoBiomedico) (string, error) {
	type ref struct {
		id     *uint64
		nombre string
		exists func(context.Context, uint64) (bool, error)
	}
	refs := []ref{
		{e.IDUbicacion, "ubicacion", h.Ubicaciones.Exists},
		{e.IDFabricante, "fabricante", h.Fabricantes.Exists},
		{e.IDCategoria, "categoria", h.Categorias.Exists},
		{e.IDRiesgo, "nivel de riesgo", h.Riesgos.Exists},
		{e.IDTecnologia, "tipo de tecnologia", h.Tecnologias.Exists},
	}
	for _, rf := range refs {
		if rf.id == nil {
			continue
		}
		ok, err := rf.exists(ctx, *rf.id)
		if err != nil {
			return "", err
		}
		if !ok {
			return rf.nombre, nil
		}
	}
	return "", nil
}

func (h *EquipoHandler) Create(c echo.Context) error {
	var e model.EquipoBiomedico
	if err := c.Bind(&e); err != nil {
		return invalidBody(c)
	}
	e.Nombre = strings.TrimSpace(e.Nombre)
	if e.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_equipo es requerido"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	missing, err := h.validarReferencias(ctx, &e)
	if err != nil {
		return repoError(c, err, "")
	}
	if missing != "" {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": missing + " no encontrado"})
	}

	if u, ok := middleware.CurrentUser(c); ok {
		uid := u.ID
		e.IDUsuarioRegistro = &uid
	}

	id, err := h.Equipos.Create(ctx, &e)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "ya existe un equipo con ese numero_serie"})
		}
		return repoError(c, err, "referencia no encontrada")
	}
	out, err := h.Equipos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	auditar(c, h.Audit, "equipo_biomedico", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *EquipoHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Equipos.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EquipoHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Equipos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

// DatosTecnicosDeEquipo returns the technical sheet attached to a piece of
// equipment, 404 when it has none.
func (h *EquipoHandler) DatosTecnicosDeEquipo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Equipos.GetByID(ctx, id); err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	out, err := h.Datos.GetByEquipo(ctx, id)
	if err != nil {
		return repoError(c, err, "el equipo no tiene datos tecnicos registrados")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EquipoHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var e model.EquipoBiomedico
	if err := c.Bind(&e); err != nil {
		return invalidBody(c)
	}
	e.ID = id
	e.Nombre = strings.TrimSpace(e.Nombre)
	if e.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_equipo es requerido"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	antes, err := h.Equipos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	missing, err := h.validarReferencias(ctx, &e)
	if err != nil {
		return repoError(c, err, "")
	}
	if missing != "" {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": missing + " no encontrado"})
	}
	if err := h.Equipos.Update(ctx, &e); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "ya existe un equipo con ese numero_serie"})
		}
		return repoError(c, err, "equipo no encontrado")
	}
	despues, err := h.Equipos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	auditar(c, h.Audit, "equipo_biomedico", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *EquipoHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Equipos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	if err := h.Equipos.Delete(ctx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "el equipo tiene mantenimientos registrados"})
		}
		return repoError(c, err, "equipo no encontrado")
	}
	auditar(c, h.Audit, "equipo_biomedico", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
