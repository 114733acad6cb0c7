package repository

import (
	"context"
	"database/sql"

	"github.com/edwinroj/biomedical-inventory/internal/model"
)

// VentaRepo provides CRUD access to `venta` and its `detalle_venta` line
// items. Lines cascade-delete with their sale.
type VentaRepo struct{ db *sql.DB }

func NewVentaRepo(db *sql.DB) *VentaRepo { return &VentaRepo{db: db} }

func (r *VentaRepo) Create(ctx context.Context, v *model.Venta) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO venta (id_cliente, id_usuario_vendedor, fecha_venta, monto_total, estado_venta)
		 VALUES (?,?,?,?,?)`,
		v.IDCliente, v.IDUsuarioVendedor, v.FechaVenta, v.MontoTotal, v.EstadoVenta)
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

func (r *VentaRepo) GetByID(ctx context.Context, id uint64) (model.Venta, error) {
	var v model.Venta
	err := r.db.QueryRowContext(ctx,
		`SELECT id_venta, id_cliente, id_usuario_vendedor, fecha_venta, monto_total, estado_venta
		 FROM venta WHERE id_venta=? LIMIT 1`, id).
		Scan(&v.ID, &v.IDCliente, &v.IDUsuarioVendedor, &v.FechaVenta, &v.MontoTotal, &v.EstadoVenta)
	if err == sql.ErrNoRows {
		return v, ErrNotFound
	}
	return v, err
}

func (r *VentaRepo) List(ctx context.Context, skip, limit int) ([]model.Venta, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id_venta, id_cliente, id_usuario_vendedor, fecha_venta, monto_total, estado_venta
		 FROM venta ORDER BY id_venta LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Venta{}
	for rows.Next() {
		var v model.Venta
		if err := rows.Scan(&v.ID, &v.IDCliente, &v.IDUsuarioVendedor, &v.FechaVenta, &v.MontoTotal, &v.EstadoVenta); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VentaRepo) Update(ctx context.Context, v *model.Venta) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE venta SET id_cliente=?, fecha_venta=?, monto_total=?, estado_venta=? WHERE id_venta=?`,
		v.IDCliente, v.FechaVenta, v.MontoTotal, v.EstadoVenta, v.ID)
	return checkAffected(res, err)
}

func (r *VentaRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM venta WHERE id_venta=?", id)
	return checkAffected(res, err)
}

func (r *VentaRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM venta WHERE id_venta=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// --- detalle_venta ---

const detalleVentaCols = "id_detalle_venta, id_venta, id_equipo, cantidad, precio_unitario, subtotal, descripcion"

func (r *VentaRepo) CreateDetalle(ctx context.Context, d *model.DetalleVenta) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO detalle_venta (id_venta, id_equipo, cantidad, precio_unitario, subtotal, descripcion)
		 VALUES (?,?,?,?,?,?)`,
		d.IDVenta, d.IDEquipo, d.Cantidad, d.PrecioUnitario, d.Subtotal, d.Descripcion)
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

func (r *VentaRepo) GetDetalle(ctx context.Context, id uint64) (model.DetalleVenta, error) {
	var d model.DetalleVenta
	err := r.db.QueryRowContext(ctx,
		"SELECT "+detalleVentaCols+" FROM detalle_venta WHERE id_detalle_venta=? LIMIT 1", id).
		Scan(&d.ID, &d.IDVenta, &d.IDEquipo, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal, &d.Descripcion)
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

func (r *VentaRepo) ListDetalles(ctx context.Context, skip, limit int) ([]model.DetalleVenta, error) {
	return r.listDetallesWhere(ctx,
		"SELECT "+detalleVentaCols+" FROM detalle_venta ORDER BY id_detalle_venta LIMIT ? OFFSET ?", limit, skip)
}

// ListDetallesByVenta returns the line items of one sale.
func (r *VentaRepo) ListDetallesByVenta(ctx context.Context, idVenta uint64) ([]model.DetalleVenta, error) {
	return r.listDetallesWhere(ctx,
		"SELECT "+detalleVentaCols+" FROM detalle_venta WHERE id_venta=? ORDER BY id_detalle_venta", idVenta)
}

func (r *VentaRepo) listDetallesWhere(ctx context.Context, query string, args ...any) ([]model.DetalleVenta, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.DetalleVenta{}
	for rows.Next() {
		var d model.DetalleVenta
		if err := rows.Scan(&d.ID, &d.IDVenta, &d.IDEquipo, &d.Cantidad, &d.PrecioUnitario, &d.Subtotal, &d.Descripcion); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *VentaRepo) UpdateDetalle(ctx context.Context, d *model.DetalleVenta) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE detalle_venta SET id_equipo=?, cantidad=?, precio_unitario=?, subtotal=?, descripcion=?
		 WHERE id_detalle_venta=?`,
		d.IDEquipo, d.Cantidad, d.PrecioUnitario, d.Subtotal, d.Descripcion, d.ID)
	return checkAffected(res, err)
}

func (r *VentaRepo) DeleteDetalle(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM detalle_venta WHERE id_detalle_venta=?", id)
	return checkAffected(res, err)
}
