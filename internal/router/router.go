// Package router wires handlers to routes and applies the authentication
// and authorization middleware per endpoint family.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/edwinroj/biomedical-inventory/internal/config"
	"github.com/edwinroj/biomedical-inventory/internal/handler"
	"github.com/edwinroj/biomedical-inventory/internal/middleware"
)

// Deps carries everything route registration needs.
type Deps struct {
	Cfg   config.Config
	Users middleware.UserSource
	Redis *redis.Client // nil disables caching and rate limiting

	Auth           *handler.AuthHandler
	Usuarios       *handler.UsuarioHandler
	Roles          *handler.RolHandler
	Clientes       *handler.ClienteHandler
	Ubicaciones    *handler.UbicacionHandler
	Categorias     *handler.CatalogoHandler
	NivelesRiesgo  *handler.CatalogoHandler
	Tecnologias    *handler.CatalogoHandler
	Fabricantes    *handler.FabricanteHandler
	Equipos        *handler.EquipoHandler
	DatosTecnicos  *handler.DatosTecnicosHandler
	Mantenimientos *handler.MantenimientoHandler
	Repuestos      *handler.RepuestoHandler
	Usos           *handler.UsoRepuestoHandler
	Compras        *handler.CompraHandler
	Ventas         *handler.VentaHandler
	Auditoria      *handler.AuditoriaHandler
	Estadisticas   *handler.EstadisticasHandler
}

// Register mounts every route. Reads are open to any authenticated role;
// writes are gated per entity family. The role sets mirror how the
// departments actually split the work: technicians own maintenance and part
// usage, procurement owns purchases, the biomedical manager owns clients,
// locations and classification catalogs, and administrators can do
// everything.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	e.POST("/auth/login", d.Auth.Login, middleware.LoginRateLimit(d.Redis))

	auth := middleware.JWTAuth(d.Cfg.JWTSecret, d.Users)
	api := e.Group("", auth)

	lectura := middleware.RequireRole(middleware.CualquierAutenticado)
	cache := middleware.CacheGET(d.Redis)

	api.GET("/auth/me", d.Auth.Me, lectura)

	// usuarios, roles: administration only, including reads (they expose
	// account data).
	admin := middleware.RequireRole(middleware.SoloAdmin)
	api.POST("/usuarios", d.Usuarios.Create, admin)
	api.GET("/usuarios", d.Usuarios.List, admin)
	api.GET("/usuarios/username/:nombre_usuario", d.Usuarios.GetByUsername, admin)
	api.GET("/usuarios/:id", d.Usuarios.Get, admin)
	api.PUT("/usuarios/:id", d.Usuarios.Update, admin)
	api.DELETE("/usuarios/:id", d.Usuarios.Delete, admin)

	api.POST("/roles", d.Roles.Create, admin)
	api.GET("/roles", d.Roles.List, admin)
	api.GET("/roles/:id", d.Roles.Get, admin)
	api.PUT("/roles/:id", d.Roles.Update, admin)
	api.DELETE("/roles/:id", d.Roles.Delete, admin)

	// clientes, ubicaciones: managed by the biomedical manager.
	gestor := middleware.RequireRole(middleware.AdminOGestor)
	api.POST("/clientes", d.Clientes.Create, gestor)
	api.GET("/clientes", d.Clientes.List, lectura)
	api.GET("/clientes/:id", d.Clientes.Get, lectura)
	api.GET("/clientes/:id/ubicaciones", d.Clientes.UbicacionesDeCliente, lectura)
	api.PUT("/clientes/:id", d.Clientes.Update, gestor)
	api.DELETE("/clientes/:id", d.Clientes.Delete, gestor)

	api.POST("/ubicaciones", d.Ubicaciones.Create, gestor)
	api.GET("/ubicaciones", d.Ubicaciones.List, lectura)
	api.GET("/ubicaciones/:id", d.Ubicaciones.Get, lectura)
	api.PUT("/ubicaciones/:id", d.Ubicaciones.Update, gestor)
	api.DELETE("/ubicaciones/:id", d.Ubicaciones.Delete, gestor)

	// Classification catalogs: manager-maintained, cached reads.
	registerCatalogo(api, "/categorias-equipo", d.Categorias, gestor, lectura, cache)
	registerCatalogo(api, "/niveles-riesgo", d.NivelesRiesgo, gestor, lectura, cache)
	registerCatalogo(api, "/tipos-tecnologia", d.Tecnologias, gestor, lectura, cache)

	// fabricantes: administration only for writes, cached reads.
	api.POST("/fabricantes", d.Fabricantes.Create, admin)
	api.GET("/fabricantes", d.Fabricantes.List, lectura, cache)
	api.GET("/fabricantes/:id", d.Fabricantes.Get, lectura, cache)
	api.PUT("/fabricantes/:id", d.Fabricantes.Update, admin)
	api.DELETE("/fabricantes/:id", d.Fabricantes.Delete, admin)

	// equipos-biomedicos: manager and procurement register equipment.
	equipoGate := middleware.RequireRole(middleware.AdminGestorOCompras)
	api.POST("/equipos-biomedicos", d.Equipos.Create, equipoGate)
	api.GET("/equipos-biomedicos", d.Equipos.List, lectura)
	api.GET("/equipos-biomedicos/:id", d.Equipos.Get, lectura)
	api.GET("/equipos-biomedicos/:id/datos-tecnicos", d.Equipos.DatosTecnicosDeEquipo, lectura)
	api.GET("/equipos-biomedicos/:id/mantenimientos", d.Mantenimientos.PorEquipo, lectura)
	api.PUT("/equipos-biomedicos/:id", d.Equipos.Update, equipoGate)
	api.DELETE("/equipos-biomedicos/:id", d.Equipos.Delete, equipoGate)

	// datos-tecnicos: administration maintains the sheets.
	api.POST("/datos-tecnicos", d.DatosTecnicos.Create, admin)
	api.GET("/datos-tecnicos", d.DatosTecnicos.List, lectura)
	api.GET("/datos-tecnicos/:id", d.DatosTecnicos.Get, lectura)
	api.PUT("/datos-tecnicos/:id", d.DatosTecnicos.Update, admin)
	api.DELETE("/datos-tecnicos/:id", d.DatosTecnicos.Delete, admin)

	// mantenimientos: technicians record interventions.
	tecnico := middleware.RequireRole(middleware.AdminOTecnico)
	api.POST("/mantenimientos", d.Mantenimientos.Create, tecnico)
	api.GET("/mantenimientos", d.Mantenimientos.List, lectura)
	api.GET("/mantenimientos/:id", d.Mantenimientos.Get, lectura)
	api.GET("/mantenimientos/:id/uso-repuestos", d.Mantenimientos.UsosDeMantenimiento, lectura)
	api.PUT("/mantenimientos/:id", d.Mantenimientos.Update, tecnico)
	api.DELETE("/mantenimientos/:id", d.Mantenimientos.Delete, tecnico)

	// repuestos: stock is shared between technicians and procurement.
	repuestoGate := middleware.RequireRole(middleware.AdminTecnicoOCompras)
	api.POST("/repuestos", d.Repuestos.Create, repuestoGate)
	api.GET("/repuestos", d.Repuestos.List, lectura)
	api.GET("/repuestos/bajo-stock", d.Repuestos.BajoStock, lectura)
	api.GET("/repuestos/:id", d.Repuestos.Get, lectura)
	api.GET("/repuestos/:id/uso-repuestos", d.Repuestos.UsosDeRepuesto, lectura)
	api.PUT("/repuestos/:id", d.Repuestos.Update, repuestoGate)
	api.DELETE("/repuestos/:id", d.Repuestos.Delete, repuestoGate)

	// uso-repuestos: the consumption workflow, technicians only.
	api.POST("/uso-repuestos", d.Usos.Registrar, tecnico)
	api.GET("/uso-repuestos", d.Usos.List, lectura)
	api.GET("/uso-repuestos/:id_mantenimiento/:id_repuesto", d.Usos.Get, lectura)
	api.PUT("/uso-repuestos/:id_mantenimiento/:id_repuesto", d.Usos.Actualizar, tecnico)
	api.DELETE("/uso-repuestos/:id_mantenimiento/:id_repuesto", d.Usos.Eliminar, tecnico)

	// compras: headers are administrative, lines belong to procurement.
	compras := middleware.RequireRole(middleware.AdminOCompras)
	api.POST("/compras", d.Compras.Create, admin)
	api.GET("/compras", d.Compras.List, lectura)
	api.GET("/compras/:id", d.Compras.Get, lectura)
	api.GET("/compras/:id/detalles", d.Compras.DetallesDeCompra, lectura)
	api.PUT("/compras/:id", d.Compras.Update, admin)
	api.DELETE("/compras/:id", d.Compras.Delete, admin)

	api.POST("/detalles-compra", d.Compras.CreateDetalle, compras)
	api.GET("/detalles-compra", d.Compras.ListDetalles, lectura)
	api.GET("/detalles-compra/:id", d.Compras.GetDetalle, lectura)
	api.PUT("/detalles-compra/:id", d.Compras.UpdateDetalle, compras)
	api.DELETE("/detalles-compra/:id", d.Compras.DeleteDetalle, compras)

	// ventas: headers are administrative, lines belong to the manager.
	api.POST("/ventas", d.Ventas.Create, admin)
	api.GET("/ventas", d.Ventas.List, lectura)
	api.GET("/ventas/:id", d.Ventas.Get, lectura)
	api.GET("/ventas/:id/detalles", d.Ventas.DetallesDeVenta, lectura)
	api.PUT("/ventas/:id", d.Ventas.Update, admin)
	api.DELETE("/ventas/:id", d.Ventas.Delete, admin)

	api.POST("/detalles-venta", d.Ventas.CreateDetalle, gestor)
	api.GET("/detalles-venta", d.Ventas.ListDetalles, lectura)
	api.GET("/detalles-venta/:id", d.Ventas.GetDetalle, lectura)
	api.PUT("/detalles-venta/:id", d.Ventas.UpdateDetalle, gestor)
	api.DELETE("/detalles-venta/:id", d.Ventas.DeleteDetalle, gestor)

	// auditoria: administrators only, reads included.
	api.GET("/auditoria", d.Auditoria.List, admin)
	api.GET("/auditoria/:id", d.Auditoria.Get, admin)
	api.GET("/auditoria/tabla/:tabla", d.Auditoria.PorTabla, admin)
	api.GET("/auditoria/usuario/:id", d.Auditoria.PorUsuario, admin)
	api.GET("/auditoria/registro/:tabla/:id_registro", d.Auditoria.HistorialRegistro, admin)
	api.GET("/auditoria/operacion/:operacion", d.Auditoria.PorOperacion, admin)

	// estadisticas: reporting queries for administrators and the manager.
	api.GET("/estadisticas/resumen", d.Estadisticas.Resumen, gestor)
	api.GET("/estadisticas/dashboard", d.Estadisticas.Dashboard, gestor)
	api.GET("/estadisticas/repuestos-bajo-stock", d.Repuestos.BajoStock, gestor)
	api.GET("/estadisticas/equipos/por-categoria", d.Estadisticas.EquiposPorCategoria, gestor)
	api.GET("/estadisticas/ventas/por-mes", d.Estadisticas.VentasPorMes, gestor)
	api.GET("/estadisticas/compras/por-mes", d.Estadisticas.ComprasPorMes, gestor)
	api.GET("/estadisticas/mantenimientos/costos-por-equipo/:id", d.Estadisticas.CostosPorEquipo, gestor)
	api.GET("/estadisticas/repuestos/mas-usados", d.Estadisticas.RepuestosMasUsados, gestor)
	api.GET("/estadisticas/clientes/top-compradores", d.Estadisticas.TopClientes, gestor)
	api.GET("/estadisticas/ventas/resumen/:id", d.Estadisticas.ResumenVenta, gestor)
	api.GET("/estadisticas/compras/resumen/:id", d.Estadisticas.ResumenCompra, gestor)
}

func registerCatalogo(g *echo.Group, prefix string, h *handler.CatalogoHandler, escritura, lectura, cache echo.MiddlewareFunc) {
	g.POST(prefix, h.Create, escritura)
	g.GET(prefix, h.List, lectura, cache)
	g.GET(prefix+"/:id", h.Get, lectura, cache)
	g.PUT(prefix+"/:id", h.Update, escritura)
	g.DELETE(prefix+"/:id", h.Delete, escritura)
}
