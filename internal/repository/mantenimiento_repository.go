package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// MantenimientoRepo provides CRUD access to the `mantenimiento` table.
// Deleting a maintenance event cascade-deletes its uso_repuesto rows at the
// schema level; stock is NOT restored by that path, which matches the
// original system's behaviour (only explicit usage deletion restores stock).
type MantenimientoRepo struct{ db *sql.DB }

func NewMantenimientoRepo(db *sql.DB) *MantenimientoRepo { return &MantenimientoRepo{db: db} }

const mantCols = `id_mantenimiento, id_equipo, tipo_mantenimiento, fecha_mantenimiento, descripcion, costo,
	tecnico_responsable, observaciones, id_usuario_registro`

func scanMant(row interface{ Scan(...any) error }, m *model.Mantenimiento) error {
	return row.Scan(&m.ID, &m.IDEquipo, &m.TipoMantenimiento, &m.FechaMantenimiento, &m.Descripcion,
		&m.Costo, &m.TecnicoResponsable, &m.Observaciones, &m.IDUsuarioRegistro)
}

func (r *MantenimientoRepo) Create(ctx context.Context, m *model.Mantenimiento) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO mantenimiento
		 (id_equipo, tipo_mantenimiento, fecha_mantenimiento, descripcion, costo, tecnico_responsable, observaciones, id_usuario_registro)
		 VALUES (?,?,?,?,?,?,?,?)`,
		m.IDEquipo, m.TipoMantenimiento, m.FechaMantenimiento, m.Descripcion, m.Costo,
		m.TecnicoResponsable, m.Observaciones, m.IDUsuarioRegistro)
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

func (r *MantenimientoRepo) GetByID(ctx context.Context, id uint64) (model.Mantenimiento, error) {
	var m model.Mantenimiento
	err := scanMant(r.db.QueryRowContext(ctx,
		"SELECT "+mantCols+" FROM mantenimiento WHERE id_mantenimiento=? LIMIT 1", id), &m)
	if err == sql.ErrNoRows {
		return m, ErrNotFound
	}
	return m, err
}

func (r *MantenimientoRepo) List(ctx context.Context, skip, limit int) ([]model.Mantenimiento, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+mantCols+" FROM mantenimiento ORDER BY id_mantenimiento LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Mantenimiento{}
	for rows.Next() {
		var m model.Mantenimiento
		if err := scanMant(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// ListByEquipo returns the maintenance history of one piece of equipment,
// most recent first.
func (r *MantenimientoRepo) ListByEquipo(ctx context.Context, idEquipo uint64) ([]model.Mantenimiento, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+mantCols+" FROM mantenimiento WHERE id_equipo=? ORDER BY fecha_mantenimiento DESC, id_mantenimiento DESC",
		idEquipo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Mantenimiento{}
	for rows.Next() {
		var m model.Mantenimiento
		if err := scanMant(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MantenimientoRepo) Update(ctx context.Context, m *model.Mantenimiento) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE mantenimiento SET id_equipo=?, tipo_mantenimiento=?, fecha_mantenimiento=?, descripcion=?,
		 costo=?, tecnico_responsable=?, observaciones=? WHERE id_mantenimiento=?`,
		m.IDEquipo, m.TipoMantenimiento, m.FechaMantenimiento, m.Descripcion, m.Costo,
		m.TecnicoResponsable, m.Observaciones, m.ID)
	return checkAffected(res, err)
}

func (r *MantenimientoRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM mantenimiento WHERE id_mantenimiento=?", id)
	return checkAffected(res, err)
}

func (r *MantenimientoRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM mantenimiento WHERE id_mantenimiento=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
