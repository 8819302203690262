package api

import (
	"heshbonit/docs"
	"heshbonit/internal/api/handlers"
	"heshbonit/pkg/auth"
	"heshbonit/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	invoiceHandler *handlers.InvoiceHandler,
	expenseHandler *handlers.ExpenseHandler,
	jwtManager *auth.JWTManager,
	maxFileSize int64,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		// Multipart bodies carry the document plus form overhead.
		BodyLimit: int(maxFileSize) + 1024*1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Swagger - importing docs registers the generated definition via init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth routes (public)
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)

	protected := middleware.AuthMiddleware(jwtManager, appLogger)

	invoices := api.Group("/invoices", protected)
	invoices.Post("/parse", invoiceHandler.ParseInvoice)
	invoices.Post("/save", invoiceHandler.SaveInvoice)

	expenses := api.Group("/expenses", protected)
	expenses.Get("", expenseHandler.ListExpenses)
	expenses.Patch("/:id/category", expenseHandler.UpdateCategory)
	expenses.Delete("/:id", expenseHandler.DeleteExpense)

	return app
}
