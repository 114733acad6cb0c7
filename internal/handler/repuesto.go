package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// RepuestoHandler implements spare part CRUD plus the low-stock report.
// Stock set here is an administrative correction; consumption-driven stock
// changes only happen through the usage endpoints.
type RepuestoHandler struct {
	Repuestos *repository.RepuestoRepo
	Usos      *repository.UsoRepuestoRepo
	Audit     *repository.AuditoriaRepo
}

func NewRepuestoHandler(repuestos *repository.RepuestoRepo, usos *repository.UsoRepuestoRepo, audit *repository.AuditoriaRepo) *RepuestoHandler {
	return &RepuestoHandler{Repuestos: repuestos, Usos: usos, Audit: audit}
}

func validarRepuesto(c echo.Context, p *model.Repuesto) error {
	p.Nombre = strings.TrimSpace(p.Nombre)
	if p.Nombre == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "nombre_repuesto es requerido"})
	}
	if p.Stock < 0 || p.StockMinimo < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "stock y stock_minimo no pueden ser negativos"})
	}
	return nil
}

func (h *RepuestoHandler) Create(c echo.Context) error {
	var p model.Repuesto
	if err := c.Bind(&p); err != nil {
		return invalidBody(c)
	}
	if err := validarRepuesto(c, &p); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	id, err := h.Repuestos.Create(ctx, &p)
	if err != nil {
		return repoError(c, err, "")
	}
	out, err := h.Repuestos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "repuesto no encontrado")
	}
	auditar(c, h.Audit, "repuesto", id, "INSERT", nil, out)
	return c.JSON(http.StatusCreated, out)
}

func (h *RepuestoHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repuestos.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

// BajoStock lists the parts at or below their reorder threshold.
func (h *RepuestoHandler) BajoStock(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repuestos.ListBajoStock(ctx)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RepuestoHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Repuestos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "repuesto no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

// UsosDeRepuesto lists the maintenance events that consumed one part.
func (h *RepuestoHandler) UsosDeRepuesto(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if _, err := h.Repuestos.GetByID(ctx, id); err != nil {
		return repoError(c, err, "repuesto no encontrado")
	}
	out, err := h.Usos.ListByRepuesto(ctx, id)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RepuestoHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	var p model.Repuesto
	if err := c.Bind(&p); err != nil {
		return invalidBody(c)
	}
	p.ID = id
	if err := validarRepuesto(c, &p); err != nil {
		return err
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Repuestos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "repuesto no encontrado")
	}
	if err := h.Repuestos.Update(ctx, &p); err != nil {
		return repoError(c, err, "repuesto no encontrado")
	}
	despues, err := h.Repuestos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "repuesto no encontrado")
	}
	auditar(c, h.Audit, "repuesto", id, "UPDATE", antes, despues)
	return c.JSON(http.StatusOK, despues)
}

func (h *RepuestoHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Repuestos.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "repuesto no encontrado")
	}
	if err := h.Repuestos.Delete(ctx, id); err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "el repuesto esta referenciado por compras registradas"})
		}
		return repoError(c, err, "repuesto no encontrado")
	}
	auditar(c, h.Audit, "repuesto", id, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
