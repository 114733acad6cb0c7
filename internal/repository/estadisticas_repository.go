package repository

import (
	"context"
	"database/sql"
)

// Resumen aggregates headline counts for the dashboard endpoint.
type Resumen struct {
	TotalEquipos        int `json:"total_equipos"`
	TotalClientes       int `json:"total_clientes"`
	TotalRepuestos      int `json:"total_repuestos"`
	RepuestosBajoStock  int `json:"repuestos_bajo_stock"`
	MantenimientosTotal int `json:"total_mantenimientos"`
	VentasTotal         int `json:"total_ventas"`
	ComprasTotal        int `json:"total_compras"`
}

// EstadoEquipos is one bucket of the equipment-by-state breakdown. The state
// column is nullable, so unclassified equipment shows up as its own bucket.
type EstadoEquipos struct {
	Estado *string `json:"estado"`
	Total  int     `json:"total"`
}

// Dashboard carries the current-month activity figures alongside the
// equipment breakdown.
type Dashboard struct {
	TotalEquipos       int             `json:"total_equipos"`
	EquiposPorEstado   []EstadoEquipos `json:"equipos_por_estado"`
	RepuestosStockBajo int             `json:"repuestos_stock_bajo"`
	MantenimientosMes  int             `json:"mantenimientos_mes_actual"`
	VentasMes          int             `json:"ventas_mes_actual"`
	IngresosMes        float64         `json:"ingresos_mes"`
	EgresosMes         float64         `json:"egresos_mes"`
	BalanceMes         float64         `json:"balance_mes"`
}

// CategoriaEquipos counts equipment per classification category. Categories
// without equipment appear with a zero total.
type CategoriaEquipos struct {
	Categoria string `json:"categoria"`
	Total     int    `json:"total"`
}

// VentasMes is one month's sales volume within a year.
type VentasMes struct {
	Mes            int     `json:"mes"`
	CantidadVentas int     `json:"cantidad_ventas"`
	TotalVentas    float64 `json:"total_ventas"`
}

// ComprasMes is one month's procurement volume within a year.
type ComprasMes struct {
	Mes             int     `json:"mes"`
	CantidadCompras int     `json:"cantidad_compras"`
	TotalCompras    float64 `json:"total_compras"`
}

// CostoPorTipo breaks maintenance spending down by intervention type.
type CostoPorTipo struct {
	Tipo       *string `json:"tipo"`
	Cantidad   int     `json:"cantidad"`
	CostoTotal float64 `json:"costo_total"`
}

// CostosEquipo is the maintenance cost report for one piece of equipment.
type CostosEquipo struct {
	IDEquipo            uint64         `json:"id_equipo"`
	NombreEquipo        string         `json:"nombre_equipo"`
	TotalMantenimientos int            `json:"total_mantenimientos"`
	CostoTotal          float64        `json:"costo_total"`
	PorTipo             []CostoPorTipo `json:"por_tipo"`
}

// RepuestoUsado ranks a spare part by consumption across maintenance events.
type RepuestoUsado struct {
	IDRepuesto uint64 `json:"id_repuesto"`
	Nombre     string `json:"nombre_repuesto"`
	TotalUsado int    `json:"total_usado"`
	VecesUsado int    `json:"veces_usado"`
}

// ClienteComprador ranks a client institution by purchase volume.
type ClienteComprador struct {
	IDCliente   uint64  `json:"id_cliente"`
	Nombre      string  `json:"nombre_cliente"`
	TotalVentas int     `json:"total_ventas"`
	MontoTotal  float64 `json:"monto_total"`
}

// ResumenVenta recomputes a sale's totals from its line items so drift
// against the stored monto_total is visible.
type ResumenVenta struct {
	IDVenta     uint64  `json:"id_venta"`
	FechaVenta  *string `json:"fecha_venta"`
	MontoTotal  float64 `json:"monto_total"`
	EstadoVenta *string `json:"estado_venta"`
	TotalItems  int     `json:"total_items"`
	Subtotal    float64 `json:"subtotal"`
}

// ResumenCompra recomputes a purchase's totals from its line items.
type ResumenCompra struct {
	IDCompra        uint64  `json:"id_compra"`
	FechaSolicitud  *string `json:"fecha_solicitud"`
	FechaAprobacion *string `json:"fecha_aprobacion"`
	EstadoCompra    *string `json:"estado_compra"`
	MontoTotal      float64 `json:"monto_total"`
	TotalItems      int     `json:"total_items"`
	TotalCantidad   int     `json:"total_cantidad"`
	Subtotal        float64 `json:"subtotal"`
}

// EstadisticasRepo runs the read-only aggregation queries behind the
// /estadisticas endpoints.
type EstadisticasRepo struct{ db *sql.DB }

func NewEstadisticasRepo(db *sql.DB) *EstadisticasRepo { return &EstadisticasRepo{db: db} }

func (r *EstadisticasRepo) Resumen(ctx context.Context) (Resumen, error) {
	var res Resumen
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM equipo_biomedico),
			(SELECT COUNT(*) FROM cliente),
			(SELECT COUNT(*) FROM repuesto),
			(SELECT COUNT(*) FROM repuesto WHERE stock <= stock_minimo),
			(SELECT COUNT(*) FROM mantenimiento),
			(SELECT COUNT(*) FROM venta),
			(SELECT COUNT(*) FROM compra_adquisicion)`).
		Scan(&res.TotalEquipos, &res.TotalClientes, &res.TotalRepuestos, &res.RepuestosBajoStock,
			&res.MantenimientosTotal, &res.VentasTotal, &res.ComprasTotal)
	return res, err
}

// Dashboard aggregates the current-month activity figures. Month boundaries
// follow the database clock, not the application's.
func (r *EstadisticasRepo) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM equipo_biomedico),
			(SELECT COUNT(*) FROM repuesto WHERE stock < stock_minimo),
			(SELECT COUNT(*) FROM mantenimiento
			  WHERE fecha_mantenimiento IS NOT NULL
			    AND MONTH(fecha_mantenimiento) = MONTH(CURDATE())
			    AND YEAR(fecha_mantenimiento) = YEAR(CURDATE())),
			(SELECT COUNT(*) FROM venta
			  WHERE MONTH(fecha_venta) = MONTH(CURDATE())
			    AND YEAR(fecha_venta) = YEAR(CURDATE())),
			(SELECT COALESCE(SUM(monto_total), 0) FROM venta
			  WHERE MONTH(fecha_venta) = MONTH(CURDATE())
			    AND YEAR(fecha_venta) = YEAR(CURDATE())),
			(SELECT COALESCE(SUM(monto_total), 0) FROM compra_adquisicion
			  WHERE MONTH(fecha_solicitud) = MONTH(CURDATE())
			    AND YEAR(fecha_solicitud) = YEAR(CURDATE()))`).
		Scan(&d.TotalEquipos, &d.RepuestosStockBajo, &d.MantenimientosMes,
			&d.VentasMes, &d.IngresosMes, &d.EgresosMes)
	if err != nil {
		return d, err
	}
	d.BalanceMes = d.IngresosMes - d.EgresosMes

	rows, err := r.db.QueryContext(ctx,
		"SELECT estado, COUNT(*) FROM equipo_biomedico GROUP BY estado")
	if err != nil {
		return d, err
	}
	defer rows.Close()
	d.EquiposPorEstado = []EstadoEquipos{}
	for rows.Next() {
		var e EstadoEquipos
		if err := rows.Scan(&e.Estado, &e.Total); err != nil {
			return d, err
		}
		d.EquiposPorEstado = append(d.EquiposPorEstado, e)
	}
	return d, rows.Err()
}

// EquiposPorCategoria counts equipment per category, including empty ones.
func (r *EstadisticasRepo) EquiposPorCategoria(ctx context.Context) ([]CategoriaEquipos, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.nombre_categoria, COUNT(e.id_equipo)
		FROM categoria_equipo c
		LEFT JOIN equipo_biomedico e ON e.id_categoria = c.id_categoria
		GROUP BY c.id_categoria, c.nombre_categoria
		ORDER BY c.nombre_categoria`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []CategoriaEquipos{}
	for rows.Next() {
		var c CategoriaEquipos
		if err := rows.Scan(&c.Categoria, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// VentasPorMes groups sales count and amount by month for one year. Months
// without sales are absent from the result.
func (r *EstadisticasRepo) VentasPorMes(ctx context.Context, anio int) ([]VentasMes, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT MONTH(fecha_venta), COUNT(*), COALESCE(SUM(monto_total), 0)
		FROM venta
		WHERE YEAR(fecha_venta) = ?
		GROUP BY MONTH(fecha_venta)
		ORDER BY MONTH(fecha_venta)`, anio)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []VentasMes{}
	for rows.Next() {
		var v VentasMes
		if err := rows.Scan(&v.Mes, &v.CantidadVentas, &v.TotalVentas); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ComprasPorMes groups purchase count and amount by request month for one
// year.
func (r *EstadisticasRepo) ComprasPorMes(ctx context.Context, anio int) ([]ComprasMes, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT MONTH(fecha_solicitud), COUNT(*), COALESCE(SUM(monto_total), 0)
		FROM compra_adquisicion
		WHERE YEAR(fecha_solicitud) = ?
		GROUP BY MONTH(fecha_solicitud)
		ORDER BY MONTH(fecha_solicitud)`, anio)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ComprasMes{}
	for rows.Next() {
		var c ComprasMes
		if err := rows.Scan(&c.Mes, &c.CantidadCompras, &c.TotalCompras); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CostosMantenimientoEquipo totals maintenance spending on one piece of
// equipment with a per-type breakdown. ErrNotFound when the equipment does
// not exist.
func (r *EstadisticasRepo) CostosMantenimientoEquipo(ctx context.Context, idEquipo uint64) (CostosEquipo, error) {
	var rep CostosEquipo
	err := r.db.QueryRowContext(ctx,
		"SELECT id_equipo, nombre_equipo FROM equipo_biomedico WHERE id_equipo=? LIMIT 1", idEquipo).
		Scan(&rep.IDEquipo, &rep.NombreEquipo)
	if err == sql.ErrNoRows {
		return rep, ErrNotFound
	}
	if err != nil {
		return rep, err
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(costo), 0) FROM mantenimiento WHERE id_equipo=?", idEquipo).
		Scan(&rep.TotalMantenimientos, &rep.CostoTotal)
	if err != nil {
		return rep, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT tipo_mantenimiento, COUNT(*), COALESCE(SUM(costo), 0)
		FROM mantenimiento
		WHERE id_equipo=?
		GROUP BY tipo_mantenimiento`, idEquipo)
	if err != nil {
		return rep, err
	}
	defer rows.Close()
	rep.PorTipo = []CostoPorTipo{}
	for rows.Next() {
		var t CostoPorTipo
		if err := rows.Scan(&t.Tipo, &t.Cantidad, &t.CostoTotal); err != nil {
			return rep, err
		}
		rep.PorTipo = append(rep.PorTipo, t)
	}
	return rep, rows.Err()
}

// RepuestosMasUsados ranks parts by total units consumed, descending.
func (r *EstadisticasRepo) RepuestosMasUsados(ctx context.Context, limit int) ([]RepuestoUsado, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rp.id_repuesto, rp.nombre_repuesto, SUM(u.cantidad_usada), COUNT(u.id_mantenimiento)
		FROM repuesto rp
		JOIN uso_repuesto u ON u.id_repuesto = rp.id_repuesto
		GROUP BY rp.id_repuesto, rp.nombre_repuesto
		ORDER BY SUM(u.cantidad_usada) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RepuestoUsado{}
	for rows.Next() {
		var u RepuestoUsado
		if err := rows.Scan(&u.IDRepuesto, &u.Nombre, &u.TotalUsado, &u.VecesUsado); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// TopClientes ranks client institutions by total sales amount, descending.
func (r *EstadisticasRepo) TopClientes(ctx context.Context, limit int) ([]ClienteComprador, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id_cliente, c.nombre_institucion, COUNT(v.id_venta), COALESCE(SUM(v.monto_total), 0)
		FROM cliente c
		JOIN venta v ON v.id_cliente = c.id_cliente
		GROUP BY c.id_cliente, c.nombre_institucion
		ORDER BY SUM(v.monto_total) DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ClienteComprador{}
	for rows.Next() {
		var c ClienteComprador
		if err := rows.Scan(&c.IDCliente, &c.Nombre, &c.TotalVentas, &c.MontoTotal); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ResumenVenta returns one sale with totals recomputed from its lines.
// Subtotals prefer the stored line subtotal, falling back to
// cantidad * precio_unitario for lines that never had one.
func (r *EstadisticasRepo) ResumenVenta(ctx context.Context, idVenta uint64) (ResumenVenta, error) {
	var res ResumenVenta
	err := r.db.QueryRowContext(ctx,
		"SELECT id_venta, DATE_FORMAT(fecha_venta, '%Y-%m-%d'), COALESCE(monto_total, 0), estado_venta FROM venta WHERE id_venta=? LIMIT 1",
		idVenta).
		Scan(&res.IDVenta, &res.FechaVenta, &res.MontoTotal, &res.EstadoVenta)
	if err == sql.ErrNoRows {
		return res, ErrNotFound
	}
	if err != nil {
		return res, err
	}
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(COALESCE(subtotal, cantidad * COALESCE(precio_unitario, 0))), 0)
		FROM detalle_venta WHERE id_venta=?`, idVenta).
		Scan(&res.TotalItems, &res.Subtotal)
	return res, err
}

// ResumenCompra returns one purchase with totals recomputed from its lines.
func (r *EstadisticasRepo) ResumenCompra(ctx context.Context, idCompra uint64) (ResumenCompra, error) {
	var res ResumenCompra
	err := r.db.QueryRowContext(ctx, `
		SELECT id_compra, DATE_FORMAT(fecha_solicitud, '%Y-%m-%d'), DATE_FORMAT(fecha_aprobacion, '%Y-%m-%d'),
		       estado_compra, COALESCE(monto_total, 0)
		FROM compra_adquisicion WHERE id_compra=? LIMIT 1`, idCompra).
		Scan(&res.IDCompra, &res.FechaSolicitud, &res.FechaAprobacion, &res.EstadoCompra, &res.MontoTotal)
	if err == sql.ErrNoRows {
		return res, ErrNotFound
	}
	if err != nil {
		return res, err
	}
	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(cantidad), 0),
		       COALESCE(SUM(COALESCE(cantidad, 0) * COALESCE(precio_unitario, 0)), 0)
		FROM detalle_compra WHERE id_compra=?`, idCompra).
		Scan(&res.TotalItems, &res.TotalCantidad, &res.Subtotal)
	return res, err
}
