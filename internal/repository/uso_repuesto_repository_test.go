package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// Integration tests for the stock bookkeeping. They need a real MySQL with
// the application schema loaded; set TEST_DATABASE_DSN to run them, e.g.
//
//	TEST_DATABASE_DSN='root:root@tcp(localhost:3306)/inventario_test?parseTime=true'

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// fixture inserts an equipment row, a maintenance event and a spare part and
// registers cleanup in reverse order.
func fixture(t *testing.T, db *sql.DB, stock, minimo int) (idMantenimiento, idRepuesto uint64) {
	t.Helper()
	ctx := context.Background()

	res, err := db.ExecContext(ctx,
		"INSERT INTO equipo_biomedico (nombre_equipo) VALUES (?)", "equipo de prueba")
	if err != nil {
		t.Fatalf("insert equipo: %v", err)
	}
	idEquipo, _ := res.LastInsertId()
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM equipo_biomedico WHERE id_equipo=?", idEquipo)
	})

	res, err = db.ExecContext(ctx,
		"INSERT INTO mantenimiento (id_equipo, tipo_mantenimiento) VALUES (?,?)", idEquipo, "preventivo")
	if err != nil {
		t.Fatalf("insert mantenimiento: %v", err)
	}
	idMant, _ := res.LastInsertId()
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM mantenimiento WHERE id_mantenimiento=?", idMant)
	})

	res, err = db.ExecContext(ctx,
		"INSERT INTO repuesto (nombre_repuesto, stock, stock_minimo) VALUES (?,?,?)",
		"filtro de prueba", stock, minimo)
	if err != nil {
		t.Fatalf("insert repuesto: %v", err)
	}
	idRep, _ := res.LastInsertId()
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM repuesto WHERE id_repuesto=?", idRep)
	})

	return uint64(idMant), uint64(idRep)
}

func currentStock(t *testing.T, db *sql.DB, idRepuesto uint64) int {
	t.Helper()
	var stock int
	if err := db.QueryRow("SELECT stock FROM repuesto WHERE id_repuesto=?", idRepuesto).Scan(&stock); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return stock
}

func TestRegistrarActualizarEliminarLifecycle(t *testing.T) {
	db := testDB(t)
	repo := NewUsoRepuestoRepo(db)
	ctx := context.Background()

	idMant, idRep := fixture(t, db, 5, 2)

	// Register a usage of 3: stock 5 -> 2.
	uso := model.UsoRepuesto{IDMantenimiento: idMant, IDRepuesto: idRep, CantidadUsada: 3}
	parte, err := repo.Registrar(ctx, &uso)
	if err != nil {
		t.Fatalf("Registrar: %v", err)
	}
	if parte.Stock != 2 {
		t.Fatalf("returned stock = %d, want 2", parte.Stock)
	}
	if got := currentStock(t, db, idRep); got != 2 {
		t.Fatalf("stored stock = %d, want 2", got)
	}

	// Duplicate pair is rejected without touching stock.
	if _, err := repo.Registrar(ctx, &uso); err != ErrConflict {
		t.Fatalf("duplicate Registrar: err = %v, want ErrConflict", err)
	}
	if got := currentStock(t, db, idRep); got != 2 {
		t.Fatalf("stock after rejected duplicate = %d, want 2", got)
	}

	// Increase beyond stock: delta 4-3=1 fits (stock 2), 3 -> 4, stock 2 -> 1.
	if _, err := repo.Actualizar(ctx, idMant, idRep, 4, nil); err != nil {
		t.Fatalf("Actualizar to 4: %v", err)
	}
	if got := currentStock(t, db, idRep); got != 1 {
		t.Fatalf("stock after increase = %d, want 1", got)
	}

	// Increase past available stock fails atomically: delta 7-4=3 > 1.
	_, err = repo.Actualizar(ctx, idMant, idRep, 7, nil)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("Actualizar to 7: err = %v, want InsufficientStockError", err)
	}
	if stockErr.Disponible != 1 || stockErr.Requerido != 3 {
		t.Fatalf("counts = (%d, %d), want (1, 3)", stockErr.Disponible, stockErr.Requerido)
	}
	if got := currentStock(t, db, idRep); got != 1 {
		t.Fatalf("stock after rejected increase = %d, want 1", got)
	}

	// Decrease releases the delta: 4 -> 1, stock 1 -> 4.
	if _, err := repo.Actualizar(ctx, idMant, idRep, 1, nil); err != nil {
		t.Fatalf("Actualizar to 1: %v", err)
	}
	if got := currentStock(t, db, idRep); got != 4 {
		t.Fatalf("stock after decrease = %d, want 4", got)
	}

	// Delete restores the remaining quantity: stock 4 -> 5.
	if err := repo.Eliminar(ctx, idMant, idRep); err != nil {
		t.Fatalf("Eliminar: %v", err)
	}
	if got := currentStock(t, db, idRep); got != 5 {
		t.Fatalf("stock after delete = %d, want 5", got)
	}
	if _, err := repo.Get(ctx, idMant, idRep); err != ErrNotFound {
		t.Fatalf("Get after delete: err = %v, want ErrNotFound", err)
	}
}

// A revision that keeps the quantity (a price correction) must leave stock
// untouched.
func TestActualizarPrecioSinCambiarCantidad(t *testing.T) {
	db := testDB(t)
	repo := NewUsoRepuestoRepo(db)
	ctx := context.Background()

	idMant, idRep := fixture(t, db, 5, 2)

	uso := model.UsoRepuesto{IDMantenimiento: idMant, IDRepuesto: idRep, CantidadUsada: 3}
	if _, err := repo.Registrar(ctx, &uso); err != nil {
		t.Fatalf("Registrar: %v", err)
	}

	precio := 42.5
	got, err := repo.Actualizar(ctx, idMant, idRep, 3, &precio)
	if err != nil {
		t.Fatalf("Actualizar: %v", err)
	}
	if got.CantidadUsada != 3 {
		t.Fatalf("cantidad = %d, want 3", got.CantidadUsada)
	}
	if got.PrecioUnitario == nil || *got.PrecioUnitario != 42.5 {
		t.Fatalf("precio = %v, want 42.5", got.PrecioUnitario)
	}
	if stock := currentStock(t, db, idRep); stock != 2 {
		t.Fatalf("stock after price-only revision = %d, want 2", stock)
	}
}

func TestRegistrarInsufficientStock(t *testing.T) {
	db := testDB(t)
	repo := NewUsoRepuestoRepo(db)
	ctx := context.Background()

	idMant, idRep := fixture(t, db, 2, 1)

	uso := model.UsoRepuesto{IDMantenimiento: idMant, IDRepuesto: idRep, CantidadUsada: 3}
	_, err := repo.Registrar(ctx, &uso)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if stockErr.Disponible != 2 || stockErr.Requerido != 3 {
		t.Fatalf("counts = (%d, %d), want (2, 3)", stockErr.Disponible, stockErr.Requerido)
	}
	if got := currentStock(t, db, idRep); got != 2 {
		t.Fatalf("stock touched by rejected registration: %d", got)
	}
}

func TestRegistrarMissingReferences(t *testing.T) {
	db := testDB(t)
	repo := NewUsoRepuestoRepo(db)
	ctx := context.Background()

	idMant, idRep := fixture(t, db, 5, 2)

	uso := model.UsoRepuesto{IDMantenimiento: 999999999, IDRepuesto: idRep, CantidadUsada: 1}
	if _, err := repo.Registrar(ctx, &uso); err != ErrNotFound {
		t.Fatalf("unknown maintenance: err = %v, want ErrNotFound", err)
	}
	uso = model.UsoRepuesto{IDMantenimiento: idMant, IDRepuesto: 999999999, CantidadUsada: 1}
	if _, err := repo.Registrar(ctx, &uso); err != ErrNotFound {
		t.Fatalf("unknown part: err = %v, want ErrNotFound", err)
	}
}

// TestRegistrarConcurrent drives two registrations of 3 units each against a
// part with 5 in stock. The row lock must serialize them so exactly one
// succeeds; stock never goes negative.
func TestRegistrarConcurrent(t *testing.T) {
	db := testDB(t)
	repo := NewUsoRepuestoRepo(db)

	idMant1, idRep := fixture(t, db, 5, 2)

	// Second maintenance event against the same equipment so the two usages
	// have distinct composite keys.
	var idEquipo uint64
	if err := db.QueryRow("SELECT id_equipo FROM mantenimiento WHERE id_mantenimiento=?", idMant1).Scan(&idEquipo); err != nil {
		t.Fatalf("read equipo: %v", err)
	}
	res, err := db.Exec("INSERT INTO mantenimiento (id_equipo, tipo_mantenimiento) VALUES (?,?)", idEquipo, "correctivo")
	if err != nil {
		t.Fatalf("insert mantenimiento: %v", err)
	}
	idMant2u, _ := res.LastInsertId()
	idMant2 := uint64(idMant2u)
	t.Cleanup(func() {
		_, _ = db.Exec("DELETE FROM mantenimiento WHERE id_mantenimiento=?", idMant2)
	})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, idMant := range []uint64{idMant1, idMant2} {
		wg.Add(1)
		go func(i int, idMant uint64) {
			defer wg.Done()
			uso := model.UsoRepuesto{IDMantenimiento: idMant, IDRepuesto: idRep, CantidadUsada: 3}
			_, errs[i] = repo.Registrar(context.Background(), &uso)
		}(i, idMant)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
			continue
		}
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if okCount != 1 {
		t.Fatalf("successful registrations = %d, want exactly 1", okCount)
	}
	if got := currentStock(t, db, idRep); got != 2 {
		t.Fatalf("final stock = %d, want 2", got)
	}
}
