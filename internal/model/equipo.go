package model

import "time"

// EquipoBiomedico mirrors the `equipo_biomedico` table. All classification
// references (location, manufacturer, category, risk level, technology type)
// are nullable foreign keys validated by the repository before writes.
type EquipoBiomedico struct {
	ID                uint64     `json:"id_equipo"`
	Nombre            string     `json:"nombre_equipo"`
	Modelo            *string    `json:"modelo"`
	NumeroSerie       *string    `json:"numero_serie"` // unique when present
	FechaAdquisicion  *time.Time `json:"fecha_adquisicion"`
	Garantia          *string    `json:"garantia"`
	Proveedor         *string    `json:"proveedor"`
	Estado            *string    `json:"estado"`
	IDUbicacion       *uint64    `json:"id_ubicacion"`
	IDFabricante      *uint64    `json:"id_fabricante"`
	IDCategoria       *uint64    `json:"id_categoria"`
	IDRiesgo          *uint64    `json:"id_riesgo"`
	IDTecnologia      *uint64    `json:"id_tecnologia"`
	IDUsuarioRegistro *uint64    `json:"id_usuario_registro"`
}

// DatosTecnicos holds the one-to-one technical sheet of a piece of equipment.
// Cascade-deleted with its equipment row.
type DatosTecnicos struct {
	ID               uint64  `json:"id_dato_tecnico"`
	IDEquipo         uint64  `json:"id_equipo"` // unique
	VoltajeOperacion *string `json:"voltaje_operacion"`
	Potencia         *string `json:"potencia"`
	Frecuencia       *string `json:"frecuencia"`
	Peso             *string `json:"peso"`
	Dimensiones      *string `json:"dimensiones"`
	VidaUtil         *string `json:"vida_util"`
	ManualOperacion  *string `json:"manual_operacion"`
	Observaciones    *string `json:"observaciones"`
}
