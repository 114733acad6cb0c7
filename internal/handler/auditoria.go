package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// AuditoriaHandler exposes the read-only audit trail queries. The trail is
// written by the mutation handlers; there is no write endpoint.
type AuditoriaHandler struct {
	Audit *repository.AuditoriaRepo
}

func NewAuditoriaHandler(audit *repository.AuditoriaRepo) *AuditoriaHandler {
	return &AuditoriaHandler{Audit: audit}
}

func (h *AuditoriaHandler) List(c echo.Context) error {
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Audit.List(ctx, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuditoriaHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Audit.GetByID(ctx, id)
	if err != nil {
		return repoError(c, err, "registro de auditoria no encontrado")
	}
	return c.JSON(http.StatusOK, out)
}

// PorTabla returns the audit history of one table.
func (h *AuditoriaHandler) PorTabla(c echo.Context) error {
	tabla := c.Param("tabla")
	if tabla == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "tabla es requerida"})
	}
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Audit.ListByTabla(ctx, tabla, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

// HistorialRegistro returns every recorded change of one record.
func (h *AuditoriaHandler) HistorialRegistro(c echo.Context) error {
	tabla := c.Param("tabla")
	idRegistro, err := parseIDParam(c, "id_registro")
	if err != nil {
		return invalidID(c)
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Audit.ListByRegistro(ctx, tabla, idRegistro)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

// PorOperacion filters the trail by operation type. Only the three
// operations the trail records are accepted.
func (h *AuditoriaHandler) PorOperacion(c echo.Context) error {
	operacion := strings.ToUpper(c.Param("operacion"))
	switch operacion {
	case "INSERT", "UPDATE", "DELETE":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "tipo de operacion invalido. Use: INSERT, UPDATE o DELETE"})
	}
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Audit.ListByOperacion(ctx, operacion, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}

// PorUsuario returns the operations performed by one user.
func (h *AuditoriaHandler) PorUsuario(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return invalidID(c)
	}
	skip, limit := paging(c)
	ctx, cancel := reqCtx(c)
	defer cancel()
	out, err := h.Audit.ListByUsuario(ctx, id, skip, limit)
	if err != nil {
		return repoError(c, err, "")
	}
	return c.JSON(http.StatusOK, out)
}
