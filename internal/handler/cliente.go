package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// ClienteHandler implements client institution CRUD plus the nested
// locations listing.
type ClienteHandler struct {
	Clientes    *repository.ClienteRepo
	Ubicaciones *repository.UbicacionRepo
	Audit       *repository.AuditoriaRepo
}

func NewClienteHandler(clientes *repository.ClienteRepo, ubicaciones *repository.UbicacionRepo, audit *repository.AuditoriaRepo) *ClienteHandler {
	return &ClienteHandler{Clientes: clientes, Ubicaciones: ubicaciones, Audit: audit}
}

func (h *ClienteHandler) Create(c echo.Context) error {
	var cl model.Cliente
	if err := c.Bind(&cl); err != nil {
		return invalidBody(c)
	}
	cl.NombreInstitucion = strings.TrimSpace(cl.NombreInstitucion)
	if cl.NombreInstitucion == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_institucion es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Clientes.Create(ctx, &cl)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "ya existe un cliente con ese nit_ruc"})
		}
		return repoError(c, err, "")
	}
	out, err := h.Clientes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	auditar(c, h.Audit, "cliente", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *ClienteHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Clientes.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClienteHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Clientes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

// Ubicaciones lists the locations registered under one client.
func (h *ClienteHandler) UbicacionesDeCliente(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Clientes.GetByID(ctx, id); err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	out, err := h.Ubicaciones.ListByCliente(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ClienteHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var cl model.Cliente
	if err := c.Bind(&cl); err != nil {
		return invalidBody(c)
	}
	cl.ID = id
	cl.NombreInstitucion = strings.TrimSpace(cl.NombreInstitucion)
	if cl.NombreInstitucion == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_institucion es requerido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Clientes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	if err := h.Clientes.Update(ctx, &cl); err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	despues, err := h.Clientes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	auditar(c, h.Audit, "cliente", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *ClienteHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Clientes.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	if err := h.Clientes.Delete(ctx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "el cliente tiene ubicaciones o ventas asociadas"})
		}
		return repoError(c, err, "cliente no encontrado")
	}
	auditar(c, h.Audit, "cliente", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
