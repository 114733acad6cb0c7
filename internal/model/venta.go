package model

import "time"

// Venta mirrors the `venta` table (equipment sales to client institutions).
type Venta struct {
	ID                uint64     `json:"id_venta"`
	IDCliente         uint64     `json:"id_cliente"`
	IDUsuarioVendedor *uint64    `json:"id_usuario_vendedor"`
	FechaVenta        *time.Time `json:"fecha_venta"`
	MontoTotal        *float64   `json:"monto_total"`
	EstadoVenta       *string    `json:"estado_venta"`
}

// DetalleVenta mirrors the `detalle_venta` table. Cascade-deleted with its
// sale.
type DetalleVenta struct {
	ID             uint64   `json:"id_detalle_venta"`
	IDVenta        uint64   `json:"id_venta"`
	IDEquipo       *uint64  `json:"id_equipo"`
	Cantidad       int      `json:"cantidad"`
	PrecioUnitario *float64 `json:"precio_unitario"`
	Subtotal       *float64 `json:"subtotal"`
	Descripcion    *string  `json:"descripcion"`
}
