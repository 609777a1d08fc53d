package admin

import (
	adminhttp "shipping-admin/internal/admin/adapter/http"
	"shipping-admin/internal/admin/config"
	"shipping-admin/internal/admin/domain/model"
	"shipping-admin/internal/admin/domain/repository"
	"shipping-admin/internal/admin/usecase"
	authhttp "shipping-admin/internal/auth/adapter/http"
	"shipping-admin/internal/shared/eventbus"
	"shipping-admin/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// AdminModule bundles the data layer and its HTTP surface: the five entity
// repositories, change log, dashboard aggregation, settings, export and the
// realtime push channel.
type AdminModule struct {
	Users      *usecase.Repository[*model.User]
	Products   *usecase.Repository[*model.Product]
	Orders     *usecase.Repository[*model.Order]
	Categories *usecase.Repository[*model.Category]
	Suppliers  *usecase.Repository[*model.Supplier]

	Changes   *usecase.ChangeLog
	Dashboard *usecase.Dashboard
	Settings  *usecase.SettingsService
	Exporter  *usecase.Exporter

	wsHandler *adminhttp.WebSocketHandler
	log       logger.Logger
}

// NewAdminModule wires the data layer over the given storage gateway.
func NewAdminModule(store repository.Store, bus eventbus.EventBusInterface, cfg *config.Config, log logger.Logger) *AdminModule {
	changes := usecase.NewChangeLog(store, bus, cfg.ChangeLogMax, log)
	notifier := usecase.NewLogNotifier(log)
	gate := adminhttp.ConfirmFromContext

	users := usecase.NewRepository(usecase.UserSchema(), store, changes, notifier, gate, log)
	products := usecase.NewRepository(usecase.ProductSchema(), store, changes, notifier, gate, log)
	orders := usecase.NewRepository(usecase.OrderSchema(&usecase.ProductPricer{Products: products}), store, changes, notifier, gate, log)
	categories := usecase.NewRepository(usecase.CategorySchema(), store, changes, notifier, gate, log)
	suppliers := usecase.NewRepository(usecase.SupplierSchema(), store, changes, notifier, gate, log)

	return &AdminModule{
		Users:      users,
		Products:   products,
		Orders:     orders,
		Categories: categories,
		Suppliers:  suppliers,
		Changes:    changes,
		Dashboard:  usecase.NewDashboard(users, products, orders, categories, suppliers, changes, bus, log),
		Settings:   usecase.NewSettingsService(store, changes, notifier, bus, log),
		Exporter:   usecase.NewExporter(store, log),
		wsHandler:  adminhttp.NewWebSocketHandler(bus, log),
		log:        log.WithComponent("admin-module"),
	}
}

// RegisterRoutes mounts the data API under /api/v1, protected by the session
// middleware, and the realtime endpoint under /ws.
func (m *AdminModule) RegisterRoutes(app *fiber.App, middleware *authhttp.AuthMiddleware) {
	api := app.Group("/api/v1", middleware.Protect())

	adminhttp.NewEntityHandler(m.Users, func() *model.User { return &model.User{} }, m.log).RegisterRoutes(api)
	adminhttp.NewEntityHandler(m.Products, func() *model.Product { return &model.Product{} }, m.log).RegisterRoutes(api)
	adminhttp.NewEntityHandler(m.Orders, func() *model.Order { return &model.Order{} }, m.log).RegisterRoutes(api)
	adminhttp.NewEntityHandler(m.Categories, func() *model.Category { return &model.Category{} }, m.log).RegisterRoutes(api)
	adminhttp.NewEntityHandler(m.Suppliers, func() *model.Supplier { return &model.Supplier{} }, m.log).RegisterRoutes(api)

	adminhttp.NewDashboardHandler(m.Dashboard, m.log).RegisterRoutes(api)
	adminhttp.NewSettingsHandler(m.Settings, m.log).RegisterRoutes(api)
	adminhttp.NewExportHandler(m.Exporter, m.log).RegisterRoutes(api)

	m.wsHandler.RegisterRoutes(app)
}
