package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/apetrovv/warehouse-api/internal/application/auth"
	"github.com/apetrovv/warehouse-api/internal/application/stock"
	"github.com/apetrovv/warehouse-api/internal/application/usecase"
	"github.com/apetrovv/warehouse-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	StorageCellUC *usecase.StorageCellUseCase
	SearchUC      *usecase.SearchUseCase
	CellContentUC *stock.CellContentUseCase
	InboundUC     *stock.InboundUseCase
	OutboundUC    *stock.OutboundUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	managerOnly := RequireRole(entity.RoleManager)

	// Users (protegido, solo MANAGER)
	users := protected.Group("/users", managerOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)

	// Products (protegido; escritura solo MANAGER)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.CellContentUC)
	products.Post("/", managerOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", managerOnly, productHandler.Update)
	products.Delete("/:id", managerOnly, productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)

	// Storage cells y su contenido (protegido; estructura solo MANAGER,
	// operaciones de stock también para WAREHOUSE_KEEPER)
	cells := protected.Group("/storage-cells")
	cellHandler := NewStorageCellHandler(deps.StorageCellUC, deps.CellContentUC)
	cells.Post("/", managerOnly, cellHandler.Create)
	cells.Get("/", cellHandler.List)
	cells.Post("/contents/:contentId/withdraw", cellHandler.Withdraw)
	cells.Patch("/contents/:contentId/quantity", cellHandler.AdjustQuantity)
	cells.Get("/:id", cellHandler.GetByID)
	cells.Put("/:id", managerOnly, cellHandler.Update)
	cells.Delete("/:id", managerOnly, cellHandler.Delete)
	cells.Get("/:id/contents", cellHandler.ListContents)
	cells.Post("/:id/contents", cellHandler.Deposit)
	cells.Get("/:id/movements", cellHandler.Movements)

	// Inbound shipments (protegido)
	inbound := protected.Group("/inbound-shipments")
	inboundHandler := NewInboundHandler(deps.InboundUC)
	inbound.Post("/", inboundHandler.Create)
	inbound.Get("/", inboundHandler.List)
	inbound.Get("/:id", inboundHandler.GetByID)
	inbound.Post("/:id/items", inboundHandler.AddItem)
	inbound.Put("/:id/items/:itemId", inboundHandler.UpdateItem)
	inbound.Delete("/:id/items/:itemId", inboundHandler.RemoveItem)
	inbound.Post("/:id/process", inboundHandler.Process)
	inbound.Post("/:id/cancel", inboundHandler.Cancel)

	// Outbound shipments (protegido)
	outbound := protected.Group("/outbound-shipments")
	outboundHandler := NewOutboundHandler(deps.OutboundUC)
	outbound.Post("/", outboundHandler.Create)
	outbound.Get("/", outboundHandler.List)
	outbound.Get("/:id", outboundHandler.GetByID)
	outbound.Post("/:id/items", outboundHandler.AddItem)
	outbound.Put("/:id/items/:itemId", outboundHandler.UpdateItem)
	outbound.Delete("/:id/items/:itemId", outboundHandler.RemoveItem)
	outbound.Patch("/:id/status", outboundHandler.UpdateStatus)
	outbound.Post("/:id/process", outboundHandler.Process)
	outbound.Post("/:id/cancel", outboundHandler.Cancel)
	outbound.Get("/:id/packing-list", outboundHandler.PackingList)

	// Búsqueda global (protegido)
	searchHandler := NewSearchHandler(deps.SearchUC)
	protected.Get("/search", searchHandler.Search)
}
