package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/setup-status", handler.SetupStatus)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.GetDays)
	days.Get("/:date", handler.GetDay)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Post("/:date", handler.StartPeriod)
	periods.Put("/:date/length", handler.ChangePeriodLength)
	periods.Put("/:date/flow", handler.ChangePeriodFlow)
	periods.Delete("/:date", handler.DeletePeriod)

	notes := api.Group("/notes", handler.AuthRequired)
	notes.Put("/:date", handler.UpsertNote)
	notes.Delete("/:date", handler.DeleteNote)

	intimacy := api.Group("/intimacy", handler.AuthRequired)
	intimacy.Put("/:date", handler.UpsertIntimacy)
	intimacy.Delete("/:date", handler.DeleteIntimacy)

	visits := api.Group("/visits", handler.AuthRequired)
	visits.Put("/:date", handler.UpsertVisit)
	visits.Delete("/:date", handler.DeleteVisit)

	moods := api.Group("/moods", handler.AuthRequired)
	moods.Put("/:date", handler.UpsertMood)
	moods.Delete("/:date", handler.DeleteMood)

	pregnancy := api.Group("/pregnancy", handler.AuthRequired)
	pregnancy.Get("", handler.GetPregnancy)
	pregnancy.Get("/reminder", handler.GetPregnancyReminder)
	pregnancy.Post("/start", handler.StartPregnancy)
	pregnancy.Post("/birth", handler.SetBirthDate)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/json", handler.ExportJSON)
	export.Get("/csv", handler.ExportCSV)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/clear-data", handler.ClearAllData)
}
