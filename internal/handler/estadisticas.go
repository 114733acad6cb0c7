package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// EstadisticasHandler serves the reporting endpoints: headline counts, the
// monthly dashboard and the ranking and per-record summary queries.
type EstadisticasHandler struct {
	Stats *repository.EstadisticasRepo
}

func NewEstadisticasHandler(stats *repository.EstadisticasRepo) *EstadisticasHandler {
	return &EstadisticasHandler{Stats: stats}
}

func (h *EstadisticasHandler) Resumen(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.Resumen(ctx)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) Dashboard(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.Dashboard(ctx)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) EquiposPorCategoria(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.EquiposPorCategoria(ctx)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, res)
}

// anioParam reads the `anio` query parameter, defaulting to the current
// year. Zero and negative years are rejected.
func anioParam(c echo.Context) (int, bool) {
	v := c.QueryParam("anio")
	if v == "" {
		return time.Now().UTC().Year(), true
	}
	anio, err := strconv.Atoi(v)
	if err != nil || anio <= 0 {
		return 0, false
	}
	return anio, true
}

// limitParam reads the `limit` query parameter for the ranking endpoints.
func limitParam(c echo.Context, def int) int {
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 100 {
		return v
	}
	return def
}

func (h *EstadisticasHandler) VentasPorMes(c echo.Context) error {
	anio, ok := anioParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "anio invalido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.VentasPorMes(ctx, anio)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) ComprasPorMes(c echo.Context) error {
	anio, ok := anioParam(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "anio invalido"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.ComprasPorMes(ctx, anio)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) CostosPorEquipo(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.CostosMantenimientoEquipo(ctx, id)
	if err != nil {
		return repoError(c, err, "equipo no encontrado")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) RepuestosMasUsados(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.RepuestosMasUsados(ctx, limitParam(c, 10))
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) TopClientes(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.TopClientes(ctx, limitParam(c, 10))
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) ResumenVenta(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.ResumenVenta(ctx, id)
	if err != nil {
		return repoError(c, err, "venta no encontrada")
	}
	return c.JSON(http.StatusOK, res)
}

func (h *EstadisticasHandler) ResumenCompra(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Stats.ResumenCompra(ctx, id)
	if err != nil {
		return repoError(c, err, "compra no encontrada")
	}
	return c.JSON(http.StatusOK, res)
}
