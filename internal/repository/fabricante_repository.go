package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// FabricanteRepo provides CRUD access to the `fabricante` table.
type FabricanteRepo struct{ db *sql.DB }

func NewFabricanteRepo(db *sql.DB) *FabricanteRepo { return &FabricanteRepo{db: db} }

func (r *FabricanteRepo) Create(ctx context.Context, f *model.Fabricante) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO fabricante (nombre_fabricante, pais_origen, contacto, telefono, correo, sitio_web)
		 VALUES (?,?,?,?,?,?)`,
		f.Nombre, f.PaisOrigen, f.Contacto, f.Telefono, f.Correo, f.SitioWeb)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *FabricanteRepo) GetByID(ctx context.Context, id uint64) (model.Fabricante, error) {
	var f model.Fabricante
	err := r.db.QueryRowContext(ctx,
		`SELECT id_fabricante, nombre_fabricante, pais_origen, contacto, telefono, correo, sitio_web
		 FROM fabricante WHERE id_fabricante=? LIMIT 1`, id).
		Scan(&f.ID, &f.Nombre, &f.PaisOrigen, &f.Contacto, &f.Telefono, &f.Correo, &f.SitioWeb)
	if err == sql.ErrNoRows {
		return f, ErrNotFound
	}
	return f, err
}

func (r *FabricanteRepo) List(ctx context.Context, skip, limit int) ([]model.Fabricante, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_fabricante, nombre_fabricante, pais_origen, contacto, telefono, correo, sitio_web
		 FROM fabricante ORDER BY id_fabricante LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Fabricante{}
	for rows.Next() {
		var f model.Fabricante
		if err := rows.Scan(&f.ID, &f.Nombre, &f.PaisOrigen, &f.Contacto, &f.Telefono, &f.Correo, &f.SitioWeb); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FabricanteRepo) Update(ctx context.Context, f *model.Fabricante) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fabricante SET nombre_fabricante=?, pais_origen=?, contacto=?, telefono=?, correo=?, sitio_web=?
		 WHERE id_fabricante=?`,
		f.Nombre, f.PaisOrigen, f.Contacto, f.Telefono, f.Correo, f.SitioWeb, f.ID)
	return checkAffected(res, err)
}

func (r *FabricanteRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM fabricante WHERE id_fabricante=?", id)
	if isFKViolation(err) {
		return ErrConflict
	}
	return checkAffected(res, err)
}

func (r *FabricanteRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM fabricante WHERE id_fabricante=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
