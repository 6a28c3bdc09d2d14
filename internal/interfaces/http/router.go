package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jvargas/trazalote/internal/application/bom"
	"github.com/jvargas/trazalote/internal/application/catalog"
	"github.com/jvargas/trazalote/internal/application/genealogy"
	"github.com/jvargas/trazalote/internal/application/lots"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	BOMUC       *bom.UseCase
	LotsUC      *lots.UseCase
	GenealogyUC *genealogy.UseCase
}

// Router registra las rutas de la API. Las rutas estáticas van antes que las
// de parámetro para que /api/lots/next-id no se capture como :id.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo de artículos
	items := api.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	bomHandler := NewBOMHandler(deps.BOMUC)
	lotHandler := NewLotHandler(deps.LotsUC)
	items.Post("/", itemHandler.Register)
	items.Get("/", itemHandler.List)
	items.Get("/search", itemHandler.Search)
	items.Get("/stats", itemHandler.Stats)
	items.Get("/:id", itemHandler.GetByID)
	items.Get("/:id/components", bomHandler.DirectComponents)
	items.Get("/:id/bom", bomHandler.Expand)
	items.Get("/:id/lots", lotHandler.ListByItem)

	// Grafo BOM
	bomGroup := api.Group("/bom")
	bomGroup.Post("/components", bomHandler.AddComponent)

	// Libro de lotes y genealogía
	lotsGroup := api.Group("/lots")
	genealogyHandler := NewGenealogyHandler(deps.GenealogyUC)
	lotsGroup.Post("/", lotHandler.Create)
	lotsGroup.Get("/", lotHandler.List)
	lotsGroup.Get("/next-id", lotHandler.NextID)
	lotsGroup.Get("/:id", lotHandler.GetByID)
	lotsGroup.Get("/:id/transactions", lotHandler.Transactions)
	lotsGroup.Post("/:id/adjust", lotHandler.Adjust)
	lotsGroup.Post("/:id/cancel", lotHandler.Cancel)
	lotsGroup.Post("/:id/consume", genealogyHandler.Consume)
	lotsGroup.Get("/:id/genealogy", genealogyHandler.Trace)
	lotsGroup.Get("/:id/candidates", genealogyHandler.Candidates)
	lotsGroup.Get("/:id/inputs", genealogyHandler.Inputs)
	lotsGroup.Get("/:id/outputs", genealogyHandler.Outputs)

	// Tablas de referencia
	api.Get("/processes", lotHandler.Processes)
	api.Get("/grades", lotHandler.Grades)
}
