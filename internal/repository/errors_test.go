package repository

import (
	"errors"
	"fmt"
	"testing"
)

func TestInsufficientStockErrorUnwraps(t *testing.T) {
	var err error = &InsufficientStockError{Disponible: 2, Requerido: 9}
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatal("errors.Is(ErrInsufficientStock) = false")
	}
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatal("errors.As failed")
	}
	if stockErr.Disponible != 2 || stockErr.Requerido != 9 {
		t.Fatalf("counts = (%d, %d), want (2, 9)", stockErr.Disponible, stockErr.Requerido)
	}
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{Disponible: 5, Requerido: 7}
	want := "stock insuficiente: disponible 5, requerido 7"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestDriverErrorClassification(t *testing.T) {
	dup := fmt.Errorf("Error 1062 (23000): Duplicate entry 'tornillo' for key 'nombre'")
	if !isDuplicate(dup) {
		t.Fatal("1062 not classified as duplicate")
	}
	if isFKViolation(dup) {
		t.Fatal("1062 misclassified as FK violation")
	}

	fkDel := fmt.Errorf("Error 1451 (23000): Cannot delete or update a parent row")
	fkIns := fmt.Errorf("Error 1452 (23000): Cannot add or update a child row")
	if !isFKViolation(fkDel) || !isFKViolation(fkIns) {
		t.Fatal("FK violations not classified")
	}

	if isDuplicate(nil) || isFKViolation(nil) {
		t.Fatal("nil error classified")
	}
}
