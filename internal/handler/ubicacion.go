package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// UbicacionHandler implements location CRUD. A location may optionally
// belong to a client institution.
type UbicacionHandler struct {
	Ubicaciones *repository.UbicacionRepo
	Clientes    *repository.ClienteRepo
	Audit       *repository.AuditoriaRepo
}

func NewUbicacionHandler(ubicaciones *repository.UbicacionRepo, clientes *repository.ClienteRepo, audit *repository.AuditoriaRepo) *UbicacionHandler {
	return &UbicacionHandler{Ubicaciones: ubicaciones, Clientes: clientes, Audit: audit}
}

type ubicacionReq struct {
	Nombre    string  `json:"nombre_ubicacion"`
	IDCliente *uint64 `json:"id_cliente"`
}

func (h *UbicacionHandler) validarCliente(c echo.Context, idCliente *uint64) error {
	if idCliente == nil {
		return nil
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Clientes.Exists(ctx, *idCliente)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "cliente no encontrado"})
	}
	return nil
}

func (h *UbicacionHandler) Create(c echo.Context) error {
	var req ubicacionReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_ubicacion es requerido"})
	}
	if err := h.validarCliente(c, req.IDCliente); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Ubicaciones.Create(ctx, req.Nombre, req.IDCliente)
	if err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	out, err := h.Ubicaciones.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "ubicacion no encontrada")
	}
	auditar(c, h.Audit, "ubicacion", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *UbicacionHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Ubicaciones.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UbicacionHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Ubicaciones.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "ubicacion no encontrada")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UbicacionHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var req ubicacionReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.Nombre = strings.TrimSpace(req.Nombre)
	if req.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_ubicacion es requerido"})
	}
	if err := h.validarCliente(c, req.IDCliente); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Ubicaciones.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "ubicacion no encontrada")
	}
	if err := h.Ubicaciones.Update(ctx, id, req.Nombre, req.IDCliente); err != nil {
		return repoError(c, err, "ubicacion no encontrada")
	}
	despues, err := h.Ubicaciones.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "ubicacion no encontrada")
	}
	auditar(c, h.Audit, "ubicacion", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *UbicacionHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Ubicaciones.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "ubicacion no encontrada")
	}
	if err := h.Ubicaciones.Delete(ctx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "la ubicacion tiene equipos asociados"})
		}
		return repoError(c, err, "ubicacion no encontrada")
	}
	auditar(c, h.Audit, "ubicacion", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
