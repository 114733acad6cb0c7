package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// UsoRepuestoRepo manages the `uso_repuesto` line items and the stock
// adjustments they imply. Every mutation runs in a single transaction that
// locks the affected repuesto row with SELECT ... FOR UPDATE before the
// read-check-write sequence, so two concurrent registrations against the
// same part cannot both pass the sufficiency check on a stale read.
//
// Invariant maintained here: a part's stock always equals its initial stock
// minus the sum of cantidad_usada over its currently existing usage rows.
type UsoRepuestoRepo struct{ db *sql.DB }

func NewUsoRepuestoRepo(db *sql.DB) *UsoRepuestoRepo { return &UsoRepuestoRepo{db: db} }

// Registrar inserts a usage row and decrements the part's stock atomically.
// It returns the stored row and the part state after the decrement (the
// handler uses it for low-stock alerting).
//
// Failure modes: ErrNotFound when the maintenance event or the part does not
// exist, ErrConflict when a row for the (maintenance, part) pair already
// exists, *InsufficientStockError when cantidad exceeds current stock.
func (r *UsoRepuestoRepo) Registrar(ctx context.Context, uso *model.UsoRepuesto) (model.Repuesto, error) {
	var parte model.Repuesto
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return parte, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Maintenance event must exist.
	var one int
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM mantenimiento WHERE id_mantenimiento=? LIMIT 1", uso.IDMantenimiento).Scan(&one)
	if err == sql.ErrNoRows {
		return parte, ErrNotFound
	}
	if err != nil {
		return parte, err
	}

	// Lock the part row for the rest of the transaction. The sufficiency
	// check below is only sound against the locked value.
	err = scanRepuesto(tx.QueryRowContext(ctx,
		"SELECT "+repuestoCols+" FROM repuesto WHERE id_repuesto=? FOR UPDATE", uso.IDRepuesto), &parte)
	if err == sql.ErrNoRows {
		return parte, ErrNotFound
	}
	if err != nil {
		return parte, err
	}

	// At most one usage row per (maintenance, part) pair.
	err = tx.QueryRowContext(ctx,
		"SELECT 1 FROM uso_repuesto WHERE id_mantenimiento=? AND id_repuesto=? LIMIT 1",
		uso.IDMantenimiento, uso.IDRepuesto).Scan(&one)
	if err == nil {
		return parte, ErrConflict
	}
	if err != sql.ErrNoRows {
		return parte, err
	}

	if uso.CantidadUsada > parte.Stock {
		return parte, &InsufficientStockError{Disponible: parte.Stock, Requerido: uso.CantidadUsada}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO uso_repuesto (id_mantenimiento, id_repuesto, cantidad_usada, precio_unitario) VALUES (?,?,?,?)",
		uso.IDMantenimiento, uso.IDRepuesto, uso.CantidadUsada, uso.PrecioUnitario); err != nil {
		if isDuplicate(err) {
			return parte, ErrConflict
		}
		return parte, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE repuesto SET stock = stock - ? WHERE id_repuesto=?",
		uso.CantidadUsada, uso.IDRepuesto); err != nil {
		return parte, err
	}
	if err := tx.Commit(); err != nil {
		return parte, err
	}
	committed = true
	parte.Stock -= uso.CantidadUsada
	return parte, nil
}

// Actualizar revises the quantity (and optionally the unit price) of an
// existing usage row and applies the stock delta. A decrease returns units
// to stock; an increase must fit within current stock or the whole operation
// fails with *InsufficientStockError and nothing is written.
func (r *UsoRepuestoRepo) Actualizar(ctx context.Context, idMantenimiento, idRepuesto uint64, cantidad int, precio *float64) (model.UsoRepuesto, error) {
	var uso model.UsoRepuesto
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uso, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx,
		`SELECT id_mantenimiento, id_repuesto, cantidad_usada, precio_unitario
		 FROM uso_repuesto WHERE id_mantenimiento=? AND id_repuesto=? FOR UPDATE`,
		idMantenimiento, idRepuesto).
		Scan(&uso.IDMantenimiento, &uso.IDRepuesto, &uso.CantidadUsada, &uso.PrecioUnitario)
	if err == sql.ErrNoRows {
		return uso, ErrNotFound
	}
	if err != nil {
		return uso, err
	}

	var parte model.Repuesto
	err = scanRepuesto(tx.QueryRowContext(ctx,
		"SELECT "+repuestoCols+" FROM repuesto WHERE id_repuesto=? FOR UPDATE", idRepuesto), &parte)
	if err != nil {
		return uso, err
	}

	// delta > 0 consumes stock, delta < 0 releases it.
	delta := cantidad - uso.CantidadUsada
	if delta > 0 && delta > parte.Stock {
		return uso, &InsufficientStockError{Disponible: parte.Stock, Requerido: delta}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE repuesto SET stock = stock - ? WHERE id_repuesto=?", delta, idRepuesto); err != nil {
		return uso, err
	}
	uso.CantidadUsada = cantidad
	if precio != nil {
		uso.PrecioUnitario = precio
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE uso_repuesto SET cantidad_usada=?, precio_unitario=? WHERE id_mantenimiento=? AND id_repuesto=?",
		uso.CantidadUsada, uso.PrecioUnitario, idMantenimiento, idRepuesto); err != nil {
		return uso, err
	}
	if err := tx.Commit(); err != nil {
		return uso, err
	}
	committed = true
	return uso, nil
}

// Eliminar removes a usage row and returns its full quantity to stock. The
// restoration is unconditional: there is no upper bound on stock, so repeated
// create/delete cycles can push it past any nominal maximum. That matches the
// observed behaviour of the system this one replaces.
func (r *UsoRepuestoRepo) Eliminar(ctx context.Context, idMantenimiento, idRepuesto uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var cantidad int
	err = tx.QueryRowContext(ctx,
		"SELECT cantidad_usada FROM uso_repuesto WHERE id_mantenimiento=? AND id_repuesto=? FOR UPDATE",
		idMantenimiento, idRepuesto).Scan(&cantidad)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE repuesto SET stock = stock + ? WHERE id_repuesto=?", cantidad, idRepuesto); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM uso_repuesto WHERE id_mantenimiento=? AND id_repuesto=?",
		idMantenimiento, idRepuesto); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Get returns one usage row by its composite key.
func (r *UsoRepuestoRepo) Get(ctx context.Context, idMantenimiento, idRepuesto uint64) (model.UsoRepuesto, error) {
	var uso model.UsoRepuesto
	err := r.db.QueryRowContext(ctx,
		`SELECT id_mantenimiento, id_repuesto, cantidad_usada, precio_unitario
		 FROM uso_repuesto WHERE id_mantenimiento=? AND id_repuesto=? LIMIT 1`,
		idMantenimiento, idRepuesto).
		Scan(&uso.IDMantenimiento, &uso.IDRepuesto, &uso.CantidadUsada, &uso.PrecioUnitario)
	if err == sql.ErrNoRows {
		return uso, ErrNotFound
	}
	return uso, err
}

// List returns usage rows with offset/limit paging.
func (r *UsoRepuestoRepo) List(ctx context.Context, skip, limit int) ([]model.UsoRepuesto, error) {
	return r.listWhere(ctx,
		"SELECT id_mantenimiento, id_repuesto, cantidad_usada, precio_unitario FROM uso_repuesto ORDER BY id_mantenimiento, id_repuesto LIMIT ? OFFSET ?",
		limit, skip)
}

// ListByMantenimiento returns the parts consumed by one maintenance event.
func (r *UsoRepuestoRepo) ListByMantenimiento(ctx context.Context, idMantenimiento uint64) ([]model.UsoRepuesto, error) {
	return r.listWhere(ctx,
		"SELECT id_mantenimiento, id_repuesto, cantidad_usada, precio_unitario FROM uso_repuesto WHERE id_mantenimiento=? ORDER BY id_repuesto",
		idMantenimiento)
}

// ListByRepuesto returns the maintenance events that consumed one part.
func (r *UsoRepuestoRepo) ListByRepuesto(ctx context.Context, idRepuesto uint64) ([]model.UsoRepuesto, error) {
	return r.listWhere(ctx,
		"SELECT id_mantenimiento, id_repuesto, cantidad_usada, precio_unitario FROM uso_repuesto WHERE id_repuesto=? ORDER BY id_mantenimiento",
		idRepuesto)
}

func (r *UsoRepuestoRepo) listWhere(ctx context.Context, query string, args ...any) ([]model.UsoRepuesto, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.UsoRepuesto{}
	for rows.Next() {
		var uso model.UsoRepuesto
		if err := rows.Scan(&uso.IDMantenimiento, &uso.IDRepuesto, &uso.CantidadUsada, &uso.PrecioUnitario); err != nil {
			return nil, err
		}
		out = append(out, uso)
	}
	return out, rows.Err()
}
