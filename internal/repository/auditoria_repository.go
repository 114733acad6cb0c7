package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// AuditoriaRepo records and queries the audit trail. Writes are best-effort
// from the handlers' point of view: a failed audit insert is logged but does
// not fail the business operation it describes.
type AuditoriaRepo struct{ db *sql.DB }

func NewAuditoriaRepo(db *sql.DB) *AuditoriaRepo { return &AuditoriaRepo{db: db} }

const auditCols = "id_auditoria, tabla, id_registro, operacion, id_usuario, fecha_operacion, datos_anteriores, datos_nuevos, ip_origen"

// Registrar inserts one audit row. fecha_operacion defaults to the database
// clock.
func (r *AuditoriaRepo) Registrar(ctx context.Context, a *model.Auditoria) error {
	var antes, despues any
	if len(a.DatosAnteriores) > 0 {
		antes = []byte(a.DatosAnteriores)
	}
	if len(a.DatosNuevos) > 0 {
		despues = []byte(a.DatosNuevos)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auditoria (tabla, id_registro, operacion, id_usuario, datos_anteriores, datos_nuevos, ip_origen)
		 VALUES (?,?,?,?,?,?,?)`,
		a.Tabla, a.IDRegistro, a.Operacion, a.IDUsuario, antes, despues, a.IPOrigen)
	return err
}

func scanAudit(row interface{ Scan(...any) error }, a *model.Auditoria) error {
	var antes, despues []byte
	err := row.Scan(&a.ID, &a.Tabla, &a.IDRegistro, &a.Operacion, &a.IDUsuario, &a.FechaOperacion, &antes, &despues, &a.IPOrigen)
	if err != nil {
		return err
	}
	a.DatosAnteriores = antes
	a.DatosNuevos = despues
	return nil
}

func (r *AuditoriaRepo) GetByID(ctx context.Context, id uint64) (model.Auditoria, error) {
	var a model.Auditoria
	err := scanAudit(r.db.QueryRowContext(ctx,
		"SELECT "+auditCols+" FROM auditoria WHERE id_auditoria=? LIMIT 1", id), &a)
	if err == sql.ErrNoRows {
		return a, ErrNotFound
	}
	return a, err
}

// List returns audit rows, most recent first.
func (r *AuditoriaRepo) List(ctx context.Context, skip, limit int) ([]model.Auditoria, error) {
	return r.listWhere(ctx,
		"SELECT "+auditCols+" FROM auditoria ORDER BY fecha_operacion DESC, id_auditoria DESC LIMIT ? OFFSET ?",
		limit, skip)
}

// ListByTabla returns the audit history of one table.
func (r *AuditoriaRepo) ListByTabla(ctx context.Context, tabla string, skip, limit int) ([]model.Auditoria, error) {
	return r.listWhere(ctx,
		"SELECT "+auditCols+" FROM auditoria WHERE tabla=? ORDER BY fecha_operacion DESC, id_auditoria DESC LIMIT ? OFFSET ?",
		tabla, limit, skip)
}

// ListByRegistro returns the full change history of one record, identified
// by table name and record id. No paging: a single record's history is
// expected to stay small.
func (r *AuditoriaRepo) ListByRegistro(ctx context.Context, tabla string, idRegistro uint64) ([]model.Auditoria, error) {
	return r.listWhere(ctx,
		"SELECT "+auditCols+" FROM auditoria WHERE tabla=? AND id_registro=? ORDER BY fecha_operacion DESC, id_auditoria DESC",
		tabla, idRegistro)
}

// ListByOperacion returns audit rows for one operation type (INSERT, UPDATE
// or DELETE). The caller validates the operation name.
func (r *AuditoriaRepo) ListByOperacion(ctx context.Context, operacion string, skip, limit int) ([]model.Auditoria, error) {
	return r.listWhere(ctx,
		"SELECT "+auditCols+" FROM auditoria WHERE operacion=? ORDER BY fecha_operacion DESC, id_auditoria DESC LIMIT ? OFFSET ?",
		operacion, limit, skip)
}

// ListByUsuario returns the operations performed by one user.
func (r *AuditoriaRepo) ListByUsuario(ctx context.Context, idUsuario uint64, skip, limit int) ([]model.Auditoria, error) {
	return r.listWhere(ctx,
		"SELECT "+auditCols+" FROM auditoria WHERE id_usuario=? ORDER BY fecha_operacion DESC, id_auditoria DESC LIMIT ? OFFSET ?",
		idUsuario, limit, skip)
}

func (r *AuditoriaRepo) listWhere(ctx context.Context, query string, args ...any) ([]model.Auditoria, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Auditoria{}
	for rows.Next() {
		var a model.Auditoria
		if err := scanAudit(rows, &a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
