// Package queue defines message payloads exchanged over the message broker.
package queue

// StockLowEvent is published when a parts-usage registration leaves a spare
// part at or below its reorder threshold. It carries enough information for
// downstream consumers (alert log, notifications, procurement tooling) to
// act without querying the primary database.
type StockLowEvent struct {
	IDRepuesto      uint64 `json:"id_repuesto"`
	NombreRepuesto  string `json:"nombre_repuesto"`
	Stock           int    `json:"stock"`
	StockMinimo     int    `json:"stock_minimo"`
	IDMantenimiento uint64 `json:"id_mantenimiento"`
	RegistradoEn    string `json:"registrado_en"`
}
