package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// CatalogoRepo serves the three simple lookup tables that share the same
// id/name/description shape. The table and column names are fixed by the
// constructors below, never by request input.
type CatalogoRepo struct {
	db      *sql.DB
	table   string
	idCol   string
	nameCol string
}

// NewCategoriaRepo accesses `categoria_equipo`.
func NewCategoriaRepo(db *sql.DB) *CatalogoRepo {
	return &CatalogoRepo{db: db, table: "categoria_equipo", idCol: "id_categoria", nameCol: "nombre_categoria"}
}

// NewNivelRiesgoRepo accesses `nivel_riesgo`.
func NewNivelRiesgoRepo(db *sql.DB) *CatalogoRepo {
	return &CatalogoRepo{db: db, table: "nivel_riesgo", idCol: "id_riesgo", nameCol: "nombre_riesgo"}
}

// NewTipoTecnologiaRepo accesses `tipo_tecnologia`.
func NewTipoTecnologiaRepo(db *sql.DB) *CatalogoRepo {
	return &CatalogoRepo{db: db, table: "tipo_tecnologia", idCol: "id_tecnologia", nameCol: "nombre_tecnologia"}
}

func (r *CatalogoRepo) Create(ctx context.Context, nombre string, descripcion *string) (uint64, error) {
	q := fmt.Sprintf("INSERT INTO %s (%s, descripcion) VALUES (?,?)", r.table, r.nameCol)
	res, err := r.db.ExecContext(ctx, q, nombre, descripcion)
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

func (r *CatalogoRepo) GetByID(ctx context.Context, id uint64) (model.CatalogoItem, error) {
	q := fmt.Sprintf("SELECT %s, %s, descripcion FROM %s WHERE %s=? LIMIT 1", r.idCol, r.nameCol, r.table, r.idCol)
	var it model.CatalogoItem
	err := r.db.QueryRowContext(ctx, q, id).Scan(&it.ID, &it.Nombre, &it.Descripcion)
	if err == sql.ErrNoRows {
		return it, ErrNotFound
	}
	return it, err
}

func (r *CatalogoRepo) List(ctx context.Context, skip, limit int) ([]model.CatalogoItem, error) {
	q := fmt.Sprintf("SELECT %s, %s, descripcion FROM %s ORDER BY %s LIMIT ? OFFSET ?", r.idCol, r.nameCol, r.table, r.idCol)
	rows, err := r.db.QueryContext(ctx, q, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CatalogoItem{}
	for rows.Next() {
		var it model.CatalogoItem
		if err := rows.Scan(&it.ID, &it.Nombre, &it.Descripcion); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *CatalogoRepo) Update(ctx context.Context, id uint64, nombre string, descripcion *string) error {
	q := fmt.Sprintf("UPDATE %s SET %s=?, descripcion=? WHERE %s=?", r.table, r.nameCol, r.idCol)
	res, err := r.db.ExecContext(ctx, q, nombre, descripcion, id)
	return checkAffected(res, err)
}

func (r *CatalogoRepo) Delete(ctx context.Context, id uint64) error {
	q := fmt.Sprintf("DELETE FROM %s WHERE %s=?", r.table, r.idCol)
	res, err := r.db.ExecContext(ctx, q, id)
	if isFKViolation(err) {
		return ErrConflict
	}
	return checkAffected(res, err)
}

// Exists reports whether a catalog row with the given id exists. Used by the
// equipment repository to validate optional classification references.
func (r *CatalogoRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	q := fmt.Sprintf("SELECT 1 FROM %s WHERE %s=? LIMIT 1", r.table, r.idCol)
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
