package model

import "time"

// CompraAdquisicion mirrors the `compra_adquisicion` table (procurement
// orders).
type CompraAdquisicion struct {
	ID              uint64     `json:"id_compra"`
	FechaSolicitud  *time.Time `json:"fecha_solicitud"`
	FechaAprobacion *time.Time `json:"fecha_aprobacion"`
	EstadoCompra    *string    `json:"estado_compra"`
	MontoTotal      *float64   `json:"monto_total"`
	IDUsuarioAdmin  *uint64    `json:"id_usuario_admin"`
}

// DetalleCompra mirrors the `detalle_compra` table. A line either references
// a spare part or a piece of equipment; both references are optional and
// validated when present. Cascade-deleted with its purchase.
type DetalleCompra struct {
	ID             uint64   `json:"id_detalle"`
	IDCompra       uint64   `json:"id_compra"`
	IDRepuesto     *uint64  `json:"id_repuesto"`
	IDEquipo       *uint64  `json:"id_equipo"`
	Cantidad       *int     `json:"cantidad"`
	PrecioUnitario *float64 `json:"precio_unitario"`
}
