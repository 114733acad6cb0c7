// Package repository implements data access over database/sql. This file
// defines error values shared across repositories so handlers can translate
// failures into HTTP status codes without inspecting driver errors.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a referenced row does not exist. Handlers
// translate it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write collides with existing state, such as
// registering the same spare part twice against one maintenance event or
// deleting a row that other rows still reference.
var ErrConflict = errors.New("conflict")

// ErrInsufficientStock is returned when a usage registration or quantity
// increase asks for more units than the spare part currently has. Use
// errors.As with *InsufficientStockError to recover the counts.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError carries the available and required quantities of a
// rejected stock mutation. It unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	Disponible int // units currently in stock
	Requerido  int // units the operation needed
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, requerido %d", e.Disponible, e.Requerido)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// isDuplicate reports whether err is a MySQL duplicate-key violation (1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// isFKViolation reports whether err is a MySQL foreign-key violation
// (1451 on delete of a referenced row, 1452 on insert of a dangling ref).
func isFKViolation(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "1451") || strings.Contains(s, "1452")
}
