package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/edwinroj/biomedical-inventory/internal/config"
	"github.com/edwinroj/biomedical-inventory/internal/database"
	"github.com/edwinroj/biomedical-inventory/internal/handler"
	"github.com/edwinroj/biomedical-inventory/internal/queue"
	"github.com/edwinroj/biomedical-inventory/internal/repository"
	"github.com/edwinroj/biomedical-inventory/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: catalog cache and login rate limit disabled")
	}

	// Repositories.
	usuarios := repository.NewUsuarioRepo(db)
	roles := repository.NewRolRepo(db)
	clientes := repository.NewClienteRepo(db)
	ubicaciones := repository.NewUbicacionRepo(db)
	categorias := repository.NewCategoriaRepo(db)
	riesgos := repository.NewNivelRiesgoRepo(db)
	tecnologias := repository.NewTipoTecnologiaRepo(db)
	fabricantes := repository.NewFabricanteRepo(db)
	equipos := repository.NewEquipoRepo(db)
	datos := repository.NewDatosTecnicosRepo(db)
	mantenimientos := repository.NewMantenimientoRepo(db)
	repuestos := repository.NewRepuestoRepo(db)
	usos := repository.NewUsoRepuestoRepo(db)
	compras := repository.NewCompraRepo(db)
	ventas := repository.NewVentaRepo(db)
	auditoria := repository.NewAuditoriaRepo(db)
	estadisticas := repository.NewEstadisticasRepo(db)

	// Low stock alert consumer runs alongside the API.
	go queue.StartStockAlertConsumer()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e, router.Deps{
		Cfg:   cfg,
		Users: usuarios,
		Redis: rdb,

		Auth:           handler.NewAuthHandler(cfg, usuarios),
		Usuarios:       handler.NewUsuarioHandler(cfg, usuarios, roles, auditoria),
		Roles:          handler.NewRolHandler(roles, auditoria),
		Clientes:       handler.NewClienteHandler(clientes, ubicaciones, auditoria),
		Ubicaciones:    handler.NewUbicacionHandler(ubicaciones, clientes, auditoria),
		Categorias:     handler.NewCategoriaHandler(categorias, auditoria),
		NivelesRiesgo:  handler.NewNivelRiesgoHandler(riesgos, auditoria),
		Tecnologias:    handler.NewTipoTecnologiaHandler(tecnologias, auditoria),
		Fabricantes:    handler.NewFabricanteHandler(fabricantes, auditoria),
		Equipos:        handler.NewEquipoHandler(equipos, ubicaciones, fabricantes, categorias, riesgos, tecnologias, datos, auditoria),
		DatosTecnicos:  handler.NewDatosTecnicosHandler(datos, equipos, auditoria),
		Mantenimientos: handler.NewMantenimientoHandler(mantenimientos, equipos, usos, auditoria),
		Repuestos:      handler.NewRepuestoHandler(repuestos, usos, auditoria),
		Usos:           handler.NewUsoRepuestoHandler(usos, auditoria),
		Compras:        handler.NewCompraHandler(compras, repuestos, equipos, auditoria),
		Ventas:         handler.NewVentaHandler(ventas, clientes, equipos, auditoria),
		Auditoria:      handler.NewAuditoriaHandler(auditoria),
		Estadisticas:   handler.NewEstadisticasHandler(estadisticas),
	})

	log.Printf("listening on :%s (env=%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
