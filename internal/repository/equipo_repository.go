package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// EquipoRepo provides CRUD access to the `equipo_biomedico` table.
type EquipoRepo struct{ db *sql.DB }

func NewEquipoRepo(db *sql.DB) *EquipoRepo { return &EquipoRepo{db: db} }

const equipoCols = `id_equipo, nombre_equipo, modelo, numero_serie, fecha_adquisicion, garantia, proveedor, estado,
	id_ubicacion, id_fabricante, id_categoria, id_riesgo, id_tecnologia, id_usuario_registro`

func scanEquipo(row interface{ Scan(...any) error }, e *model.EquipoBiomedico) error {
	return row.Scan(&e.ID, &e.Nombre, &e.Modelo, &e.NumeroSerie, &e.FechaAdquisicion, &e.Garantia,
		&e.Proveedor, &e.Estado, &e.IDUbicacion, &e.IDFabricante, &e.IDCategoria, &e.IDRiesgo,
		&e.IDTecnologia, &e.IDUsuarioRegistro)
}

func (r *EquipoRepo) Create(ctx context.Context, e *model.EquipoBiomedico) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO equipo_biomedico
		 (nombre_equipo, modelo, numero_serie, fecha_adquisicion, garantia, proveedor, estado,
		  id_ubicacion, id_fabricante, id_categoria, id_riesgo, id_tecnologia, id_usuario_registro)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.Nombre, e.Modelo, e.NumeroSerie, e.FechaAdquisicion, e.Garantia, e.Proveedor, e.Estado,
		e.IDUbicacion, e.IDFabricante, e.IDCategoria, e.IDRiesgo, e.IDTecnologia, e.IDUsuarioRegistro)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict // numero_serie is unique
		}
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

func (r *EquipoRepo) GetByID(ctx context.Context, id uint64) (model.EquipoBiomedico, error) {
	var e model.EquipoBiomedico
	err := scanEquipo(r.db.QueryRowContext(ctx,
		"SELECT "+equipoCols+" FROM equipo_biomedico WHERE id_equipo=? LIMIT 1", id), &e)
	if err == sql.ErrNoRows {
		return e, ErrNotFound
	}
	return e, err
}

func (r *EquipoRepo) List(ctx context.Context, skip, limit int) ([]model.EquipoBiomedico, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+equipoCols+" FROM equipo_biomedico ORDER BY id_equipo LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.EquipoBiomedico{}
	for rows.Next() {
		var e model.EquipoBiomedico
		if err := scanEquipo(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListByUbicacion returns the equipment installed at one location.
func (r *EquipoRepo) ListByUbicacion(ctx context.Context, idUbicacion uint64) ([]model.EquipoBiomedico, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+equipoCols+" FROM equipo_biomedico WHERE id_ubicacion=? ORDER BY id_equipo", idUbicacion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.EquipoBiomedico{}
	for rows.Next() {
		var e model.EquipoBiomedico
		if err := scanEquipo(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EquipoRepo) Update(ctx context.Context, e *model.EquipoBiomedico) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE equipo_biomedico SET nombre_equipo=?, modelo=?, numero_serie=?, fecha_adquisicion=?, garantia=?,
		 proveedor=?, estado=?, id_ubicacion=?, id_fabricante=?, id_categoria=?, id_riesgo=?, id_tecnologia=?
		 WHERE id_equipo=?`,
		e.Nombre, e.Modelo, e.NumeroSerie, e.FechaAdquisicion, e.Garantia, e.Proveedor, e.Estado,
		e.IDUbicacion, e.IDFabricante, e.IDCategoria, e.IDRiesgo, e.IDTecnologia, e.ID)
	return checkAffected(res, err)
}

// Delete removes a piece of equipment; its technical sheet is cascade
// deleted by the schema. Maintenance history blocks deletion.
func (r *EquipoRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM equipo_biomedico WHERE id_equipo=?", id)
	if isFKViolation(err) {
		return ErrConflict
	}
	return checkAffected(res, err)
}

func (r *EquipoRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM equipo_biomedico WHERE id_equipo=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
