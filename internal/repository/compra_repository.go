package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// CompraRepo provides CRUD access to `compra_adquisicion` and its
// `detalle_compra` line items. Lines cascade-delete with their purchase.
type CompraRepo struct{ db *sql.DB }

func NewCompraRepo(db *sql.DB) *CompraRepo { return &CompraRepo{db: db} }

func (r *CompraRepo) Create(ctx context.Context, c *model.CompraAdquisicion) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO compra_adquisicion (fecha_solicitud, fecha_aprobacion, estado_compra, monto_total, id_usuario_admin)
		 VALUES (?,?,?,?,?)`,
		c.FechaSolicitud, c.FechaAprobacion, c.EstadoCompra, c.MontoTotal, c.IDUsuarioAdmin)
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

func (r *CompraRepo) GetByID(ctx context.Context, id uint64) (model.CompraAdquisicion, error) {
	var c model.CompraAdquisicion
	err := r.db.QueryRowContext(ctx,
		`SELECT id_compra, fecha_solicitud, fecha_aprobacion, estado_compra, monto_total, id_usuario_admin
		 FROM compra_adquisicion WHERE id_compra=? LIMIT 1`, id).
		Scan(&c.ID, &c.FechaSolicitud, &c.FechaAprobacion, &c.EstadoCompra, &c.MontoTotal, &c.IDUsuarioAdmin)
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

func (r *CompraRepo) List(ctx context.Context, skip, limit int) ([]model.CompraAdquisicion, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_compra, fecha_solicitud, fecha_aprobacion, estado_compra, monto_total, id_usuario_admin
		 FROM compra_adquisicion ORDER BY id_compra LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CompraAdquisicion{}
	for rows.Next() {
		var c model.CompraAdquisicion
		if err := rows.Scan(&c.ID, &c.FechaSolicitud, &c.FechaAprobacion, &c.EstadoCompra, &c.MontoTotal, &c.IDUsuarioAdmin); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CompraRepo) Update(ctx context.Context, c *model.CompraAdquisicion) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE compra_adquisicion SET fecha_solicitud=?, fecha_aprobacion=?, estado_compra=?, monto_total=?
		 WHERE id_compra=?`,
		c.FechaSolicitud, c.FechaAprobacion, c.EstadoCompra, c.MontoTotal, c.ID)
	return checkAffected(res, err)
}

func (r *CompraRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM compra_adquisicion WHERE id_compra=?", id)
	return checkAffected(res, err)
}

func (r *CompraRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM compra_adquisicion WHERE id_compra=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// --- detalle_compra ---

const detalleCompraCols = "id_detalle, id_compra, id_repuesto, id_equipo, cantidad, precio_unitario"

func (r *CompraRepo) CreateDetalle(ctx context.Context, d *model.DetalleCompra) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO detalle_compra (id_compra, id_repuesto, id_equipo, cantidad, precio_unitario)
		 VALUES (?,?,?,?,?)`,
		d.IDCompra, d.IDRepuesto, d.IDEquipo, d.Cantidad, d.PrecioUnitario)
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

func (r *CompraRepo) GetDetalle(ctx context.Context, id uint64) (model.DetalleCompra, error) {
	var d model.DetalleCompra
	err := r.db.QueryRowContext(ctx,
		"SELECT "+detalleCompraCols+" FROM detalle_compra WHERE id_detalle=? LIMIT 1", id).
		Scan(&d.ID, &d.IDCompra, &d.IDRepuesto, &d.IDEquipo, &d.Cantidad, &d.PrecioUnitario)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

func (r *CompraRepo) ListDetalles(ctx context.Context, skip, limit int) ([]model.DetalleCompra, error) {
	return r.listDetallesWhere(ctx,
		"SELECT "+detalleCompraCols+" FROM detalle_compra ORDER BY id_detalle LIMIT ? OFFSET ?", limit, skip)
}

// ListDetallesByCompra returns the line items of one purchase.
func (r *CompraRepo) ListDetallesByCompra(ctx context.Context, idCompra uint64) ([]model.DetalleCompra, error) {
	return r.listDetallesWhere(ctx,
		"SELECT "+detalleCompraCols+" FROM detalle_compra WHERE id_compra=? ORDER BY id_detalle", idCompra)
}

func (r *CompraRepo) listDetallesWhere(ctx context.Context, query string, args ...any) ([]model.DetalleCompra, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DetalleCompra{}
	for rows.Next() {
		var d model.DetalleCompra
		if err := rows.Scan(&d.ID, &d.IDCompra, &d.IDRepuesto, &d.IDEquipo, &d.Cantidad, &d.PrecioUnitario); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *CompraRepo) UpdateDetalle(ctx context.Context, d *model.DetalleCompra) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE detalle_compra SET id_repuesto=?, id_equipo=?, cantidad=?, precio_unitario=?
		 WHERE id_detalle=?`,
		d.IDRepuesto, d.IDEquipo, d.Cantidad, d.PrecioUnitario, d.ID)
	return checkAffected(res, err)
}

func (r *CompraRepo) DeleteDetalle(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM detalle_compra WHERE id_detalle=?", id)
	return checkAffected(res, err)
}
