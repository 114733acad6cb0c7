package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// RepuestoRepo provides CRUD access to the `repuesto` table. Direct stock
// writes through Update are an administrative correction path; the usage
// workflow in UsoRepuestoRepo is the only path that adjusts stock relative
// to consumption, and it does so under a row lock.
type RepuestoRepo struct{ db *sql.DB }

func NewRepuestoRepo(db *sql.DB) *RepuestoRepo { return &RepuestoRepo{db: db} }

const repuestoCols = "id_repuesto, nombre_repuesto, descripcion, precio_unitario, stock, stock_minimo, proveedor"

func scanRepuesto(row interface{ Scan(...any) error }, p *model.Repuesto) error {
	return row.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.PrecioUnitario, &p.Stock, &p.StockMinimo, &p.Proveedor)
}

func (r *RepuestoRepo) Create(ctx context.Context, p *model.Repuesto) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO repuesto (nombre_repuesto, descripcion, precio_unitario, stock, stock_minimo, proveedor)
		 VALUES (?,?,?,?,?,?)`,
		p.Nombre, p.Descripcion, p.PrecioUnitario, p.Stock, p.StockMinimo, p.Proveedor)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *RepuestoRepo) GetByID(ctx context.Context, id uint64) (model.Repuesto, error) {
	var p model.Repuesto
	err := scanRepuesto(r.db.QueryRowContext(ctx,
		"SELECT "+repuestoCols+" FROM repuesto WHERE id_repuesto=? LIMIT 1", id), &p)
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

func (r *RepuestoRepo) List(ctx context.Context, skip, limit int) ([]model.Repuesto, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+repuestoCols+" FROM repuesto ORDER BY id_repuesto LIMIT ? OFFSET ?", limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Repuesto{}
	for rows.Next() {
		var p model.Repuesto
		if err := scanRepuesto(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListBajoStock returns parts whose stock is at or below their reorder
// threshold, most depleted first.
func (r *RepuestoRepo) ListBajoStock(ctx context.Context) ([]model.Repuesto, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+repuestoCols+" FROM repuesto WHERE stock <= stock_minimo ORDER BY stock - stock_minimo, id_repuesto")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Repuesto{}
	for rows.Next() {
		var p model.Repuesto
		if err := scanRepuesto(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *RepuestoRepo) Update(ctx context.Context, p *model.Repuesto) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE repuesto SET nombre_repuesto=?, descripcion=?, precio_unitario=?, stock=?, stock_minimo=?, proveedor=?
		 WHERE id_repuesto=?`,
		p.Nombre, p.Descripcion, p.PrecioUnitario, p.Stock, p.StockMinimo, p.Proveedor, p.ID)
	return checkAffected(res, err)
}

// Delete removes a spare part; its usage rows cascade at the schema level.
// Purchase lines referencing the part block deletion.
func (r *RepuestoRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM repuesto WHERE id_repuesto=?", id)
	if isFKViolation(err) {
		return ErrConflict
	}
	return checkAffected(res, err)
}
