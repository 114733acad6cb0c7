package model

import "time"

// Mantenimiento mirrors the `mantenimiento` table: one maintenance event
// performed on a piece of equipment.
type Mantenimiento struct {
	ID                 uint64     `json:"id_mantenimiento"`
	IDEquipo           uint64     `json:"id_equipo"`
	TipoMantenimiento  *string    `json:"tipo_mantenimiento"` // preventivo | correctivo | calibracion
	FechaMantenimiento *time.Time `json:"fecha_mantenimiento"`
	Descripcion        *string    `json:"descripcion"`
	Costo              *float64   `json:"costo"`
	TecnicoResponsable *string    `json:"tecnico_responsable"`
	Observaciones      *string    `json:"observaciones"`
	IDUsuarioRegistro  *uint64    `json:"id_usuario_registro"`
}

// UsoRepuesto mirrors the `uso_repuesto` table, the many-to-many line item
// between maintenance events and spare parts. Its identity is the composite
// (id_mantenimiento, id_repuesto) pair; at most one row may exist per pair.
// Rows are cascade-deleted with their maintenance event.
//
// Lifecycle side effects on repuesto.stock:
//
//	create – stock -= cantidad_usada
//	update – stock -= (nueva - anterior)
//	delete – stock += cantidad_usada
type UsoRepuesto struct {
	IDMantenimiento uint64   `json:"id_mantenimiento"`
	IDRepuesto      uint64   `json:"id_repuesto"`
	CantidadUsada   int      `json:"cantidad_usada"`
	PrecioUnitario  *float64 `json:"precio_unitario"` // unit price at time of use
}
