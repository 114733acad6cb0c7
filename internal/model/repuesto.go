package model

// Repuesto mirrors the `repuesto` table. Stock is mutated both by direct
// CRUD and by the parts-usage workflow; the latter always adjusts it inside
// the same transaction as the usage row, with the part row locked.
//
// Stock never goes below zero through the usage workflow (insufficient
// requests are rejected before writing), but there is no upper bound: a
// delete/create cycle of usage records can push stock past any nominal
// maximum, which is accepted behaviour.
type Repuesto struct {
	ID             uint64   `json:"id_repuesto"`
	Nombre         string   `json:"nombre_repuesto"`
	Descripcion    *string  `json:"descripcion"`
	PrecioUnitario *float64 `json:"precio_unitario"`
	Stock          int      `json:"stock"`
	StockMinimo    int      `json:"stock_minimo"` // reorder threshold for low-stock alerts
	Proveedor      *string  `json:"proveedor"`
}
