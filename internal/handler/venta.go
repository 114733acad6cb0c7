package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/middleware"
	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// VentaHandler implements sale CRUD and its line items.
type VentaHandler struct {
	Ventas   *repository.VentaRepo
	Clientes *repository.ClienteRepo
	Equipos  *repository.EquipoRepo
	Audit    *repository.AuditoriaRepo
}

func NewVentaHandler(ventas *repository.VentaRepo, clientes *repository.ClienteRepo, equipos *repository.EquipoRepo, audit *repository.AuditoriaRepo) *VentaHandler {
	return &VentaHandler{Ventas: ventas, Clientes: clientes, Equipos: equipos, Audit: audit}
}

func (h *VentaHandler) Create(c echo.Context) error {
	var v model.Venta
	if err := c.Bind(&v); err != nil {
		return invalidBody(c)
	}
	if v.IDCliente == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_cliente es requerido"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Clientes.Exists(ctx, v.IDCliente)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "cliente no encontrado"})
	}
	if u, ok := middleware.CurrentUser(c); ok {
		uid := u.ID
		v.IDUsuarioVendedor = &uid
	}

	id, err := h.Ventas.Create(ctx, &v)
	if err != nil {
		return repoError(c, err, "cliente no encontrado")
	}
	out, err := h.Ventas.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	auditar(c, h.Audit, "venta", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *VentaHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Ventas.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VentaHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Ventas.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	return c.JSON(http.StatusOK, out)
}

// DetallesDeVenta lists the line items of one sale.
func (h *VentaHandler) DetallesDeVenta(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Ventas.Exists(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "venta no encontrada"})
	}
	out, err := h.Ventas.ListDetallesByVenta(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VentaHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var v model.Venta
	if err := c.Bind(&v); err != nil {
		return invalidBody(c)
	}
	v.ID = id
	if v.IDCliente == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_cliente es requerido"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Ventas.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	ok, err := h.Clientes.Exists(ctx, v.IDCliente)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "cliente no encontrado"})
	}
	if err := h.Ventas.Update(ctx, &v); err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	despues, err := h.Ventas.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	auditar(c, h.Audit, "venta", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

// Delete removes a sale; its lines cascade at the schema level.
func (h *VentaHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Ventas.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	if err := h.Ventas.Delete(ctx, id); err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	auditar(c, h.Audit, "venta", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}

// --- detalle_venta ---

func (h *VentaHandler) CreateDetalle(c echo.Context) error {
	var d model.DetalleVenta
	if err := c.Bind(&d); err != nil {
		return invalidBody(c)
	}
	if d.IDVenta == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_venta es requerido"})
	}
	if d.Cantidad <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "cantidad debe ser mayor que cero"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Ventas.Exists(ctx, d.IDVenta)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "venta no encontrada"})
	}
	if d.IDEquipo != nil {
		ok, err := h.Equipos.Exists(ctx, *d.IDEquipo)
		if err != nil {
			return repoError(c, err, "")
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "equipo no encontrado"})
		}
	}

	id, err := h.Ventas.CreateDetalle(ctx, &d)
	if err != nil {
		return repoError(c, err, "referencia no encontrada")
	}
	out, err := h.Ventas.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de venta no encontrado")
	}
	auditar(c, h.Audit, "detalle_venta", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *VentaHandler) ListDetalles(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Ventas.ListDetalles(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VentaHandler) GetDetalle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Ventas.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de venta no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *VentaHandler) UpdateDetalle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var d model.DetalleVenta
	if err := c.Bind(&d); err != nil {
		return invalidBody(c)
	}
	d.ID = id
	if d.Cantidad <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "cantidad debe ser mayor que cero"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Ventas.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de venta no encontrado")
	}
	if d.IDEquipo != nil {
		ok, err := h.Equipos.Exists(ctx, *d.IDEquipo)
		if err != nil {
			return repoError(c, err, "")
		}
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"detail": "equipo no encontrado"})
		}
	}
	if err := h.Ventas.UpdateDetalle(ctx, &d); err != nil {
		return repoError(c, err, "detalle de venta no encontrado")
	}
	despues, err := h.Ventas.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de venta no encontrado")
	}
	auditar(c, h.Audit, "detalle_venta", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *VentaHandler) DeleteDetalle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Ventas.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de venta no encontrado")
	}
	if err := h.Ventas.DeleteDetalle(ctx, id); err != nil {
		return repoError(c, err, "detalle de venta no encontrado")
	}
	auditar(c, h.Audit, "detalle_venta", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
