package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// DatosTecnicosRepo provides CRUD access to the one-to-one `datos_tecnicos`
// sheet attached to equipment.
type DatosTecnicosRepo struct{ db *sql.DB }

func NewDatosTecnicosRepo(db *sql.DB) *DatosTecnicosRepo { return &DatosTecnicosRepo{db: db} }

const datosCols = `id_dato_tecnico, id_equipo, voltaje_operacion, potencia, frecuencia, peso, dimensiones,
	vida_util, manual_operacion, observaciones`

func scanDatos(row interface{ Scan(...any) error }, d *model.DatosTecnicos) error {
	return row.Scan(&d.ID, &d.IDEquipo, &d.VoltajeOperacion, &d.Potencia, &d.Frecuencia, &d.Peso,
		&d.Dimensiones, &d.VidaUtil, &d.ManualOperacion, &d.Observaciones)
}

func (r *DatosTecnicosRepo) Create(ctx context.Context, d *model.DatosTecnicos) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO datos_tecnicos
		 (id_equipo, voltaje_operacion, potencia, frecuencia, peso, dimensiones, vida_util, manual_operacion, observaciones)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		d.IDEquipo, d.VoltajeOperacion, d.Potencia, d.Frecuencia, d.Peso, d.Dimensiones,
		d.VidaUtil, d.ManualOperacion, d.Observaciones)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrConflict // one sheet per equipment
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

func (r *DatosTecnicosRepo) GetByID(ctx context.Context, id uint64) (model.DatosTecnicos, error) {
	var d model.DatosTecnicos
	err := scanDatos(r.db.QueryRowContext(ctx,
		"SELECT "+datosCols+" FROM datos_tecnicos WHERE id_dato_tecnico=? LIMIT 1", id), &d)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// GetByEquipo fetches the sheet attached to a piece of equipment.
func (r *DatosTecnicosRepo) GetByEquipo(ctx context.Context, idEquipo uint64) (model.DatosTecnicos, error) {
	var d model.DatosTecnicos
	err := scanDatos(r.db.QueryRowContext(ctx,
		"SELECT "+datosCols+" FROM datos_tecnicos WHERE id_equipo=? LIMIT 1", idEquipo), &d)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

func (r *DatosTecnicosRepo) List(ctx context.Context, skip, limit int) ([]model.DatosTecnicos, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+datosCols+" FROM datos_tecnicos ORDER BY id_dato_tecnico LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DatosTecnicos{}
	for rows.Next() {
		var d model.DatosTecnicos
		if err := scanDatos(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DatosTecnicosRepo) Update(ctx context.Context, d *model.DatosTecnicos) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE datos_tecnicos SET voltaje_operacion=?, potencia=?, frecuencia=?, peso=?, dimensiones=?,
		 vida_util=?, manual_operacion=?, observaciones=? WHERE id_dato_tecnico=?`,
		d.VoltajeOperacion, d.Potencia, d.Frecuencia, d.Peso, d.Dimensiones, d.VidaUtil,
		d.ManualOperacion, d.Observaciones, d.ID)
	return checkAffected(res, err)
}

func (r *DatosTecnicosRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM datos_tecnicos WHERE id_dato_tecnico=?", id)
	return checkAffected(res, err)
}
