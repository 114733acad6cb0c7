package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// UbicacionRepo provides CRUD access to the `ubicacion` table.
type UbicacionRepo struct{ db *sql.DB }

func NewUbicacionRepo(db *sql.DB) *UbicacionRepo { return &UbicacionRepo{db: db} }

func (r *UbicacionRepo) Create(ctx context.Context, nombre string, idCliente *uint64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO ubicacion (nombre_ubicacion, id_cliente) VALUES (?,?)", nombre, idCliente)
	if err != nil {
		if isFKViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UbicacionRepo) GetByID(ctx context.Context, id uint64) (model.Ubicacion, error) {
	var u model.Ubicacion
	err := r.db.QueryRowContext(ctx,
		"SELECT id_ubicacion, nombre_ubicacion, id_cliente FROM ubicacion WHERE id_ubicacion=? LIMIT 1", id).
		Scan(&u.ID, &u.Nombre, &u.IDCliente)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

func (r *UbicacionRepo) List(ctx context.Context, skip, limit int) ([]model.Ubicacion, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id_ubicacion, nombre_ubicacion, id_cliente FROM ubicacion ORDER BY id_ubicacion LIMIT ? OFFSET ?",
		limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Ubicacion{}
	for rows.Next() {
		var u model.Ubicacion
		if err := rows.Scan(&u.ID, &u.Nombre, &u.IDCliente); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// ListByCliente returns the locations registered under one client.
func (r *UbicacionRepo) ListByCliente(ctx context.Context, idCliente uint64) ([]model.Ubicacion, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id_ubicacion, nombre_ubicacion, id_cliente FROM ubicacion WHERE id_cliente=? ORDER BY id_ubicacion",
		idCliente)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Ubicacion{}
	for rows.Next() {
		var u model.Ubicacion
		if err := rows.Scan(&u.ID, &u.Nombre, &u.IDCliente); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UbicacionRepo) Update(ctx context.Context, id uint64, nombre string, idCliente *uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE ubicacion SET nombre_ubicacion=?, id_cliente=? WHERE id_ubicacion=?", nombre, idCliente, id)
	return checkAffected(res, err)
}

func (r *UbicacionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM ubicacion WHERE id_ubicacion=?", id)
	if isFKViolation(err) {
		return ErrConflict
	}
	return checkAffected(res, err)
}

func (r *UbicacionRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM ubicacion WHERE id_ubicacion=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
