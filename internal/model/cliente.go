package model

// Cliente represents an institution that owns or operates equipment
// (hospital, clinic, laboratory). Mirrors the `cliente` table.
type Cliente struct {
	ID                uint64  `json:"id_cliente"`
	NombreInstitucion string  `json:"nombre_institucion"`
	NitRuc            *string `json:"nit_ruc"` // unique tax identifier, nullable
	Direccion         *string `json:"direccion"`
	TelefonoContacto  *string `json:"telefono_contacto"`
	EmailContacto     *string `json:"email_contacto"`
	PersonaContacto   *string `json:"persona_contacto"`
}

// Ubicacion is a physical location inside a client institution where
// equipment is installed. The client reference is optional for internal
// warehouse locations.
type Ubicacion struct {
	ID        uint64  `json:"id_ubicacion"`
	Nombre    string  `json:"nombre_ubicacion"`
	IDCliente *uint64 `json:"id_cliente"`
}
