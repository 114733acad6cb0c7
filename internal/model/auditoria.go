package model

import (
	"encoding/json"
	"time"
)

// Auditoria mirrors the `auditoria` table. Mutating handlers record one row
// per write with before/after images serialized as JSON. The user reference
// is nullable so audit rows survive user deletion.
type Auditoria struct {
	ID              uint64          `json:"id_auditoria"`
	Tabla           string          `json:"tabla"`
	IDRegistro      uint64          `json:"id_registro"`
	Operacion       string          `json:"operacion"` // INSERT | UPDATE | DELETE
	IDUsuario       *uint64         `json:"id_usuario"`
	FechaOperacion  time.Time       `json:"fecha_operacion"`
	DatosAnteriores json.RawMessage `json:"datos_anteriores"`
	DatosNuevos     json.RawMessage `json:"datos_nuevos"`
	IPOrigen        *string         `json:"ip_origen"`
}
