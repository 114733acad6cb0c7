package model

// Fabricante mirrors the `fabricante` table.
type Fabricante struct {
	ID         uint64  `json:"id_fabricante"`
	Nombre     string  `json:"nombre_fabricante"`
	PaisOrigen *string `json:"pais_origen"`
	Contacto   *string `json:"contacto"`
	Telefono   *string `json:"telefono"`
	Correo     *string `json:"correo"`
	SitioWeb   *string `json:"sitio_web"`
}

// CatalogoItem is the shared shape of the three simple lookup tables
// (`categoria_equipo`, `nivel_riesgo`, `tipo_tecnologia`): an ID, a name and
// an optional description. The repository layer maps each onto its own table.
type CatalogoItem struct {
	ID          uint64  `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}
