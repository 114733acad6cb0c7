package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/middleware"
	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// CompraHandler implements procurement order CRUD and its line items.
type CompraHandler struct {
	Compras   *repository.CompraRepo
	Repuestos *repository.RepuestoRepo
	Equipos   *repository.EquipoRepo
	Audit     *repository.AuditoriaRepo
}

func NewCompraHandler(compras *repository.CompraRepo, repuestos *repository.RepuestoRepo, equipos *repository.EquipoRepo, audit *repository.AuditoriaRepo) *CompraHandler {
	return &CompraHandler{Compras: compras, Repuestos: repuestos, Equipos: equipos, Audit: audit}
}

func (h *CompraHandler) Create(c echo.Context) error {
	var compra model.CompraAdquisicion
	if err := c.Bind(&compra); err != nil {
		return invalidBody(c)
	}
	if u, ok := middleware.CurrentUser(c); ok {
		uid := u.ID
		compra.IDUsuarioAdmin = &uid
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Compras.Create(ctx, &compra)
	if err != nil {
		return repoError(c, err, "usuario no encontrado")
	}
	out, err := h.Compras.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	auditar(c, h.Audit, "compra_adquisicion", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *CompraHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Compras.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CompraHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Compras.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	return c.JSON(http.StatusOK, out)
}

// DetallesDeCompra lists the line items of one purchase.
func (h *CompraHandler) DetallesDeCompra(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Compras.Exists(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "compra no encontrada"})
	}
	out, err := h.Compras.ListDetallesByCompra(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CompraHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var compra model.CompraAdquisicion
	if err := c.Bind(&compra); err != nil {
		return invalidBody(c)
	}
	compra.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Compras.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	if err := h.Compras.Update(ctx, &compra); err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	despues, err := h.Compras.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	auditar(c, h.Audit, "compra_adquisicion", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

// Delete removes a purchase; its lines cascade at the schema level.
func (h *CompraHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Compras.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	if err := h.Compras.Delete(ctx, id); err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	auditar(c, h.Audit, "compra_adquisicion", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}

// --- detalle_compra ---

// validarReferenciasDetalle checks the optional part/equipment references of
// a purchase line.
func (h *CompraHandler) validarReferenciasDetalle(c echo.Context, d *model.DetalleCompra) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	if d.IDRepuesto != nil {
		if _, err := h.Repuestos.GetByID(ctx, *d.IDRepuesto); err != nil {
			return repoError(c, err, "repuesto no encontrado")
		}
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
	return nil
}

func (h *CompraHandler) CreateDetalle(c echo.Context) error {
	var d model.DetalleCompra
	if err := c.Bind(&d); err != nil {
		return invalidBody(c)
	}
	if d.IDCompra == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_compra es requerido"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	ok, err := h.Compras.Exists(ctx, d.IDCompra)
	if err != nil {
		return repoError(c, err, "")
	}
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"detail": "compra no encontrada"})
	}
	if err := h.validarReferenciasDetalle(c, &d); err != nil {
		return err
	}

	id, err := h.Compras.CreateDetalle(ctx, &d)
	if err != nil {
		return repoError(c, err, "referencia no encontrada")
	}
	out, err := h.Compras.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de compra no encontrado")
	}
	auditar(c, h.Audit, "detalle_compra", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *CompraHandler) ListDetalles(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Compras.ListDetalles(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CompraHandler) GetDetalle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Compras.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de compra no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CompraHandler) UpdateDetalle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var d model.DetalleCompra
	if err := c.Bind(&d); err != nil {
		return invalidBody(c)
	}
	d.ID = id
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Compras.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de compra no encontrado")
	}
	if err := h.validarReferenciasDetalle(c, &d); err != nil {
		return err
	}
	if err := h.Compras.UpdateDetalle(ctx, &d); err != nil {
		return repoError(c, err, "detalle de compra no encontrado")
	}
	despues, err := h.Compras.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de compra no encontrado")
	}
	auditar(c, h.Audit, "detalle_compra", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *CompraHandler) DeleteDetalle(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Compras.GetDetalle(ctx, id)
	if err != nil {
		return repoError(c, err, "detalle de compra no encontrado")
	}
	if err := h.Compras.DeleteDetalle(ctx, id); err != nil {
		return repoError(c, err, "detalle de compra no encontrado")
	}
	auditar(c, h.Audit, "detalle_compra", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
