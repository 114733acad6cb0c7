package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/queue"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
	queue_publisher "github.com/edwinroj/biomedical-inventory/internal/service"
)

// UsoRepuestoHandler implements the parts-usage workflow: registering a
// consumption against a maintenance event, revising its quantity and
// removing it. Stock bookkeeping lives in the repository; this layer adds
// the HTTP taxonomy, auditing and low-stock alerting.
type UsoRepuestoHandler struct {
	Usos  *repository.UsoRepuestoRepo
	Audit *repository.AuditoriaRepo
}

func NewUsoRepuestoHandler(usos *repository.UsoRepuestoRepo, audit *repository.AuditoriaRepo) *UsoRepuestoHandler {
	return &UsoRepuestoHandler{Usos: usos, Audit: audit}
}

type usoReq struct {
	IDMantenimiento uint64   `json:"id_mantenimiento"`
	IDRepuesto      uint64   `json:"id_repuesto"`
	CantidadUsada   int      `json:"cantidad_usada"`
	PrecioUnitario  *float64 `json:"precio_unitario"`
}

// usoUpdateReq is a partial update: an omitted cantidad_usada keeps the
// current quantity, so a price-only revision never touches stock.
type usoUpdateReq struct {
	CantidadUsada  *int     `json:"cantidad_usada"`
	PrecioUnitario *float64 `json:"precio_unitario"`
}

// alertarStockBajo publishes a stock.low event when a registration leaves
// the part at or below its reorder threshold. Runs detached: the usage is
// already committed and the response must not wait on the broker.
func alertarStockBajo(parte model.Repuesto, idMantenimiento uint64) {
	if parte.Stock > parte.StockMinimo {
		return
	}
	ev := queue.StockLowEvent{
		IDRepuesto:      parte.ID,
		NombreRepuesto:  parte.Nombre,
		Stock:           parte.Stock,
		StockMinimo:     parte.StockMinimo,
		IDMantenimiento: idMantenimiento,
		RegistradoEn:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := queue_publisher.PublishStockLow(ctx, ev); err != nil {
			log.Printf("uso-repuesto: alerta stock.low no publicada repuesto=%d: %v", parte.ID, err)
		}
	}()
}

// Registrar records a spare part consumption and decrements the part's
// stock in the same transaction.
func (h *UsoRepuestoHandler) Registrar(c echo.Context) error {
	var req usoReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if req.IDMantenimiento == 0 || req.IDRepuesto == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "id_mantenimiento e id_repuesto son requeridos"})
	}
	if req.CantidadUsada <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "cantidad_usada debe ser mayor que cero"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uso := model.UsoRepuesto{
		IDMantenimiento: req.IDMantenimiento,
		IDRepuesto:      req.IDRepuesto,
		CantidadUsada:   req.CantidadUsada,
		PrecioUnitario:  req.PrecioUnitario,
	}
	parte, err := h.Usos.Registrar(ctx, &uso)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusBadRequest, echo.Map{"detail": "ya existe un uso de ese repuesto en el mantenimiento"})
		}
		return repoError(c, err, "mantenimiento o repuesto no encontrado")
	}

	alertarStockBajo(parte, uso.IDMantenimiento)
	auditar(c, h.Audit, "uso_repuesto", uso.IDMantenimiento, "INSERT", nil, uso)
	return c.JSON(http.StatusCreated, uso)
}

func (h *UsoRepuestoHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Usos.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UsoRepuestoHandler) claves(c echo.Context) (idMantenimiento, idRepuesto uint64, err error) {
	idMantenimiento, err = parseIDParam(c, "id_mantenimiento")
	if err != nil {
		return 0, 0, err
	}
	idRepuesto, err = parseIDParam(c, "id_repuesto")
	if err != nil {
		return 0, 0, err
	}
	return idMantenimiento, idRepuesto, nil
}

func (h *UsoRepuestoHandler) Get(c echo.Context) error {
	idMantenimiento, idRepuesto, err := h.claves(c)
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	uso, err := h.Usos.Get(ctx, idMantenimiento, idRepuesto)
	if err != nil {
		return repoError(c, err, "uso de repuesto no encontrado")
	}
	return c.JSON(http.StatusOK, uso)
}

// Actualizar revises a usage row. Only the delta against the previous
// quantity is checked against stock; an omitted quantity keeps the current
// one and leaves stock untouched.
func (h *UsoRepuestoHandler) Actualizar(c echo.Context) error {
	idMantenimiento, idRepuesto, err := h.claves(c)
	if err != nil {
		return invalidID(c)
	}
	var req usoUpdateReq
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if req.CantidadUsada != nil && *req.CantidadUsada <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "cantidad_usada debe ser mayor que cero"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	antes, err := h.Usos.Get(ctx, idMantenimiento, idRepuesto)
	if err != nil {
		return repoError(c, err, "uso de repuesto no encontrado")
	}
	cantidad := antes.CantidadUsada
	if req.CantidadUsada != nil {
		cantidad = *req.CantidadUsada
	}
	uso, err := h.Usos.Actualizar(ctx, idMantenimiento, idRepuesto, cantidad, req.PrecioUnitario)
	if err != nil {
		return repoError(c, err, "uso de repuesto no encontrado")
	}
	auditar(c, h.Audit, "uso_repuesto", idMantenimiento, "UPDATE", antes, uso)
	return c.JSON(http.StatusOK, uso)
}

// Eliminar removes a usage row and returns its quantity to stock.
func (h *UsoRepuestoHandler) Eliminar(c echo.Context) error {
	idMantenimiento, idRepuesto, err := h.claves(c)
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	antes, err := h.Usos.Get(ctx, idMantenimiento, idRepuesto)
	if err != nil {
		return repoError(c, err, "uso de repuesto no encontrado")
	}
	if err := h.Usos.Eliminar(ctx, idMantenimiento, idRepuesto); err != nil {
		return repoError(c, err, "uso de repuesto no encontrado")
	}
	auditar(c, h.Audit, "uso_repuesto", idMantenimiento, "DELETE", antes, nil)
	return c.NoContent(http.StatusNoContent)
}
