package model

// Rol represents a row in the `rol` table. Role names are free-form in the
// historical data (mixed casing and accents), so comparisons against them
// must go through the canonicalization in utils.NormalizeRole rather than
// string equality.
//
// Fields:
//
//	ID     – rol.id_rol
//	Nombre – rol.nombre_rol (e.g. "Administrador", "Tecnico De Mantenimiento")
type Rol struct {
	ID     uint64 `json:"id_rol"`
	Nombre string `json:"nombre_rol"`
}

// Usuario represents an application user as stored in the `usuario` table.
// Every user carries exactly one role via IDRol. The password hash is never
// serialized.
type Usuario struct {
	ID             uint64 `json:"id_usuario"`      // usuario.id_usuario
	NombreCompleto string `json:"nombre_completo"` // usuario.nombre_completo
	NombreUsuario  string `json:"nombre_usuario"`  // usuario.nombre_usuario (unique)
	ContrasenaHash string `json:"-"`               // usuario.contrasena_hash (bcrypt)
	IDRol          uint64 `json:"id_rol"`          // usuario.id_rol -> rol.id_rol
}
