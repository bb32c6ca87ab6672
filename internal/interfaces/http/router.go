package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Iris-api/internal/application/ledger"
	"github.com/jhoicas/Iris-api/internal/application/settings"
	"github.com/jhoicas/Iris-api/internal/application/submission"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	Settings   *settings.UseCase
	Ledger     *ledger.Service
	Submission *submission.UseCase
	// UpstreamHealth consulta la salud de IRIS; nil omite el chequeo.
	UpstreamHealth func(ctx context.Context) bool
}

// Router registra /health y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		upstream := "unchecked"
		if deps.UpstreamHealth != nil {
			upstream = "unreachable"
			if deps.UpstreamHealth(c.UserContext()) {
				upstream = "ok"
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "iris": upstream})
	})

	api := app.Group("/api")
	withSeller := RequireSeller(deps.Settings)

	settingsHandler := NewSettingsHandler(deps.Settings)
	api.Get("/settings/seller", settingsHandler.GetSeller)
	api.Put("/settings/seller", settingsHandler.SaveSeller)

	// El alta y el reenvío validan al vendedor dentro del caso de uso.
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.Submission, deps.Ledger)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Post("/drafts", invoiceHandler.CreateDraft)
	invoices.Get("/", withSeller, invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/submit", invoiceHandler.Submit)
	invoices.Post("/:id/resubmit", invoiceHandler.Resubmit)

	refno := api.Group("/refno", withSeller)
	refnoHandler := NewRefNoHandler(deps.Ledger)
	refno.Get("/check", refnoHandler.Check)
	refno.Get("/suggest", refnoHandler.Suggest)
	refno.Get("/reference", refnoHandler.Reference)

	api.Get("/attempts", withSeller, NewAttemptHandler(deps.Ledger).List)
	api.Get("/dashboard", withSeller, NewDashboardHandler(deps.Ledger).Summary)
}
