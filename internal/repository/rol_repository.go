package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// RolRepo provides CRUD access to the `rol` table.
type RolRepo struct{ db *sql.DB }

func NewRolRepo(db *sql.DB) *RolRepo { return &RolRepo{db: db} }

func (r *RolRepo) Create(ctx context.Context, nombre string) (uint64, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO rol (nombre_rol) VALUES (?)", nombre)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *RolRepo) GetByID(ctx context.Context, id uint64) (model.Rol, error) {
	var rol model.Rol
	err := r.db.QueryRowContext(ctx,
		"SELECT id_rol, nombre_rol FROM rol WHERE id_rol=? LIMIT 1", id).
		Scan(&rol.ID, &rol.Nombre)
	if err == sql.ErrNoRows {
		return rol, ErrNotFound
	}
	return rol, err
}

func (r *RolRepo) List(ctx context.Context, skip, limit int) ([]model.Rol, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id_rol, nombre_rol FROM rol ORDER BY id_rol LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Rol{}
	for rows.Next() {
		var rol model.Rol
		if err := rows.Scan(&rol.ID, &rol.Nombre); err != nil {
			return nil, err
		}
		out = append(out, rol)
	}
	return out, rows.Err()
}

func (r *RolRepo) Update(ctx context.Context, id uint64, nombre string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE rol SET nombre_rol=? WHERE id_rol=?", nombre, id)
	return checkAffected(res, err)
}

// Delete removes a role. The schema does not cascade to users; a role still
// referenced by users cannot be removed and surfaces as ErrConflict.
func (r *RolRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM rol WHERE id_rol=?", id)
	if isFKViolation(err) {
		return ErrConflict
	}
	return checkAffected(res, err)
}
