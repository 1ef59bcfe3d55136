package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lokumhouse/sweets-api/internal/application/auth"
	"github.com/lokumhouse/sweets-api/internal/application/notification"
	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/infrastructure/sitemap"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	CategoryUC      *usecase.CategoryUseCase
	ProductUC       *usecase.ProductUseCase
	FirmaUC         *usecase.FirmaUseCase
	CatalogUC       *usecase.CatalogUseCase
	SampleRequestUC *usecase.SampleRequestUseCase
	OrderUC         *usecase.OrderUseCase
	FanoutUC        *notification.FanoutUseCase
	AuthUC          *auth.AuthUseCase
	Sitemap         *sitemap.Builder
	JWTSecret       string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	// Public storefront (no auth)
	storefrontHandler := NewStorefrontHandler(deps.CategoryUC, deps.ProductUC, deps.Sitemap)
	shop := app.Group("/shop")
	shop.Get("/categories", storefrontHandler.Tree)
	shop.Get("/categories/:slug/products", storefrontHandler.CategoryProducts)
	shop.Get("/products/:slug", storefrontHandler.Product)
	app.Get("/sitemap.xml", storefrontHandler.Sitemap)

	api := app.Group("/api")

	// Auth: login is public; registration is a back-office action.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register",
		AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin),
		authHandler.Register)

	// Everything below requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	staff := RequireRole(entity.AdminCapableRoles...)

	// Categories: reads are open to any authenticated caller, writes are staff.
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/tree", categoryHandler.Tree)
	categories.Get("/:slug", categoryHandler.GetBySlug)
	categories.Post("/", staff, categoryHandler.Create)
	categories.Put("/:id", staff, categoryHandler.Update)
	categories.Delete("/:id", staff, categoryHandler.Delete)

	// Products (back office)
	products := protected.Group("/products", staff)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Firmas (back office)
	firmas := protected.Group("/firmas", staff)
	firmaHandler := NewFirmaHandler(deps.FirmaUC)
	firmas.Post("/", firmaHandler.Create)
	firmas.Get("/", firmaHandler.List)
	firmas.Get("/:id", firmaHandler.GetByID)
	firmas.Put("/:id", firmaHandler.Update)
	firmas.Delete("/:id", firmaHandler.Delete)

	// Partner catalog (personalized prices)
	catalog := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog.Get("/categories/:slug", catalogHandler.ListByCategory)
	catalog.Get("/products/:slug", catalogHandler.ProductDetail)

	// Sample requests: intake by any authenticated caller, processing by staff.
	sampleRequests := protected.Group("/sample-requests")
	sampleRequestHandler := NewSampleRequestHandler(deps.SampleRequestUC)
	sampleRequests.Post("/", sampleRequestHandler.Create)
	sampleRequests.Get("/", staff, sampleRequestHandler.List)
	sampleRequests.Get("/:id", sampleRequestHandler.GetByID)
	sampleRequests.Put("/:id/status", staff, sampleRequestHandler.Transition)

	// Orders: partners place and read their own, staff process all.
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/confirmation.pdf", orderHandler.ConfirmationPDF)
	orders.Put("/:id/status", staff, orderHandler.Transition)

	// Notifications: fanout is staff, the inbox is the caller's own.
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.FanoutUC)
	notifications.Post("/send", staff, notificationHandler.Send)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)
}
