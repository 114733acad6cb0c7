// Package handler implements the HTTP endpoints. Handlers bind input,
// validate references, call repositories and translate sentinel errors into
// status codes; they never touch SQL directly.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/edwinroj/biomedical-inventory/internal/middleware"
	"github.com/edwinroj/biomedical-inventory/internal/model"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeout = 5 * time.Second

func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// parseIDParam parses a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// paging reads skip/limit query parameters with the defaults the original
// API used (skip=0, limit=100).
func paging(c echo.Context) (skip, limit int) {
	skip, limit = 0, 100
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil && v >= 0 {
		skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 1000 {
		limit = v
	}
	return skip, limit
}

// repoError maps repository sentinels to HTTP responses. Domain validation
// failures keep their taxonomy (404 missing reference, 400 conflict or
// insufficient stock); anything else is a 500 whose body names the cause for
// operator diagnosis without echoing SQL.
func repoError(c echo.Context, err error, notFoundMsg string) error {
	var stockErr *repository.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"detail": "stock insuficiente. Disponible: " + strconv.Itoa(stockErr.Disponible) +
				", Requerido: " + strconv.Itoa(stockErr.Requerido),
		})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"detail": notFoundMsg})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusBadRequest, echo.Map{"detail": "operacion en conflicto con registros existentes"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"detail": "error de base de datos: " + err.Error()})
	}
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"detail": "cuerpo de solicitud invalido"})
}

func invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"detail": "identificador invalido"})
}

// auditar records one audit row for a completed mutation. Failures are
// logged, never propagated: the business write already committed.
func auditar(c echo.Context, repo *repository.AuditoriaRepo, tabla string, idRegistro uint64, operacion string, antes, despues any) {
	if repo == nil {
		return
	}
	entry := model.Auditoria{Tabla: tabla, IDRegistro: idRegistro, Operacion: operacion}
	if u, ok := middleware.CurrentUser(c); ok {
		uid := u.ID
		entry.IDUsuario = &uid
	}
	if ip := c.RealIP(); ip != "" {
		entry.IPOrigen = &ip
	}
	if antes != nil {
		if b, err := json.Marshal(antes); err == nil {
			entry.DatosAnteriores = b
		}
	}
	if despues != nil {
		if b, err := json.Marshal(despues); err == nil {
			entry.DatosNuevos = b
		}
	}
	// Detached context: the request may already be finishing.
	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	defer cancel()
	if err := repo.Registrar(ctx, &entry); err != nil {
		log.Printf("auditoria: registro fallido tabla=%s id=%d op=%s: %v", tabla, idRegistro, operacion, err)
	}
}
