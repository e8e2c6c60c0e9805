package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/luismorales81/agrocloud-sub002/internal/application/agroquimico"
	"github.com/luismorales81/agrocloud-sub002/internal/application/auth"
	"github.com/luismorales81/agrocloud-sub002/internal/application/catalogo"
	"github.com/luismorales81/agrocloud-sub002/internal/application/inventory"
	"github.com/luismorales81/agrocloud-sub002/internal/application/labor"
	"github.com/luismorales81/agrocloud-sub002/internal/application/lote"
	"github.com/luismorales81/agrocloud-sub002/internal/domain/entity"
)

// RouterDeps agrupa las dependencias que el router inyecta en los handlers.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	InsumoUC    *catalogo.InsumoUseCase
	DosisUC     *catalogo.DosisUseCase
	Agroquimico *agroquimico.UseCase
	Ledger      *inventory.LedgerUseCase
	LaborUC     *labor.UseCase
	ReporteUC   *labor.ReporteUseCase
	LoteUC      *lote.UseCase
	JWTSecret   string
}

// Router registra todas las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas públicas.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: todo lo demás exige Bearer JWT.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// La edición de catálogos y la anulación de labores quedan reservadas a
	// jefes de campo y administradores; el resto es de cualquier usuario.
	gestion := RequireRole(entity.RolJefeCampo, entity.RolAdministrador)

	insumoHandler := NewInsumoHandler(deps.InsumoUC)
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	insumos := protected.Group("/insumos")
	insumos.Post("/", gestion, insumoHandler.Create)
	insumos.Get("/", insumoHandler.List)
	insumos.Get("/:id", insumoHandler.GetByID)
	insumos.Put("/:id", gestion, insumoHandler.Update)
	insumos.Delete("/:id", gestion, insumoHandler.Deactivate)
	insumos.Get("/:id/kardex", inventoryHandler.Kardex)

	inventario := protected.Group("/inventario")
	inventario.Post("/movimientos", inventoryHandler.RegisterMovement)

	dosisHandler := NewDosisHandler(deps.DosisUC, deps.Agroquimico)
	dosis := protected.Group("/dosis")
	dosis.Post("/", gestion, dosisHandler.Create)
	dosis.Get("/", dosisHandler.ListByInsumo)
	dosis.Delete("/:id", gestion, dosisHandler.Deactivate)
	dosis.Post("/calcular", dosisHandler.Calcular)
	dosis.Get("/estadisticas/:insumo_id", dosisHandler.Estadisticas)

	laborHandler := NewLaborHandler(deps.LaborUC, deps.ReporteUC)
	labores := protected.Group("/labores")
	labores.Post("/", laborHandler.Plan)
	labores.Get("/:id", laborHandler.GetByID)
	labores.Post("/:id/iniciar", laborHandler.Start)
	labores.Post("/:id/completar", laborHandler.Complete)
	labores.Post("/:id/cancelar", laborHandler.Cancel)
	labores.Post("/:id/anular", gestion, laborHandler.Annul)
	labores.Get("/:id/reporte", laborHandler.Report)

	loteHandler := NewLoteHandler(deps.LoteUC)
	lotes := protected.Group("/lotes")
	lotes.Post("/", gestion, loteHandler.Create)
	lotes.Get("/", loteHandler.List)
	lotes.Post("/estado/confirmar/:propuesta_id", gestion, loteHandler.Confirm)
	lotes.Get("/:id", loteHandler.GetByID)
	lotes.Post("/:id/estado/proponer", loteHandler.Propose)
}
