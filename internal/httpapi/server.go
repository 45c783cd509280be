// Package httpapi exposes the storefront and the admin panel over REST.
package httpapi

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	backofficeapp "github.com/nordiclux/storefront/internal/backoffice/app"
	cartapp "github.com/nordiclux/storefront/internal/cart/app"
	catalogapp "github.com/nordiclux/storefront/internal/catalog/app"
	"github.com/nordiclux/storefront/internal/chat"
	checkoutapp "github.com/nordiclux/storefront/internal/checkout/app"
	"github.com/nordiclux/storefront/internal/importer"
	orderapp "github.com/nordiclux/storefront/internal/order/app"
)

// Services collects everything the HTTP surface fronts.
type Services struct {
	Catalog    *catalogapp.Service
	Cart       *cartapp.Service
	Wizard     *checkoutapp.Wizard
	Payment    *checkoutapp.Payment
	Importer   *importer.Importer
	Orders     *orderapp.Service
	Categories *backofficeapp.Categories
	Customers  *backofficeapp.Customers
	SEO        *backofficeapp.SEO
	Users      *backofficeapp.Users
	Auth       *backofficeapp.Auth
	Chat       *chat.WhatsApp
}

type Server struct {
	app  *fiber.App
	svcs Services
	log  *slog.Logger
}

func New(svcs Services, log *slog.Logger) *Server {
	s := &Server{svcs: svcs, log: log}

	s.app = fiber.New(fiber.Config{
		AppName:               "nordiclux-storefront",
		DisableStartupMessage: true,
	})
	s.app.Use(recover.New())
	s.app.Use(fiberlogger.New())
	s.app.Use(cors.New())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")

	api.Get("/products", s.listProducts)
	api.Get("/products/:id", s.getProduct)
	api.Get("/products/:id/whatsapp", s.productWhatsApp)
	api.Get("/categories", s.listCategories)
	api.Get("/seo/:page", s.seoForPage)

	cart := api.Group("/cart")
	cart.Get("/", s.getCart)
	cart.Delete("/", s.clearCart)
	cart.Post("/items", s.addCartItem)
	cart.Put("/items/:productId", s.updateCartItem)
	cart.Delete("/items/:productId", s.removeCartItem)
	cart.Get("/whatsapp", s.cartWhatsApp)

	checkout := api.Group("/checkout")
	checkout.Get("/", s.getCheckout)
	checkout.Put("/customer", s.setCustomer)
	checkout.Put("/address", s.setAddress)
	checkout.Put("/shipping-method", s.setShippingMethod)
	checkout.Put("/payment-method", s.setPaymentMethod)
	checkout.Post("/next", s.checkoutNext)
	checkout.Post("/back", s.checkoutBack)
	checkout.Post("/place-order", s.placeOrder)
	checkout.Post("/payment", s.confirmPayment)

	admin := api.Group("/admin")
	admin.Post("/login", s.login)
	admin.Post("/logout", s.logout)

	panel := admin.Group("/", s.requireAuth)
	panel.Get("/products", s.adminListProducts)
	panel.Post("/products", s.adminAddProduct)
	panel.Put("/products/:id", s.adminUpdateProduct)
	panel.Delete("/products/:id", s.adminDeleteProduct)
	panel.Post("/products/import", s.importProducts)
	panel.Get("/products/export", s.exportProducts)
	panel.Get("/products/template", s.importTemplate)

	panel.Get("/invoices", s.adminListInvoices)
	panel.Get("/invoices/:id", s.adminGetInvoice)
	panel.Put("/invoices/:id", s.adminUpdateInvoice)

	panel.Get("/categories", s.adminListCategories)
	panel.Post("/categories", s.adminAddCategory)
	panel.Put("/categories/:id", s.adminUpdateCategory)
	panel.Delete("/categories/:id", s.adminDeleteCategory)

	panel.Get("/customers", s.adminListCustomers)
	panel.Post("/customers", s.adminAddCustomer)
	panel.Put("/customers/:id", s.adminUpdateCustomer)

	panel.Get("/seo", s.adminListSEO)
	panel.Put("/seo/:page", s.adminUpsertSEO)

	panel.Get("/users", s.adminListUsers)
	panel.Post("/users", s.adminAddUser)
	panel.Put("/users/:id", s.adminUpdateUser)
	panel.Delete("/users/:id", s.adminDeleteUser)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
