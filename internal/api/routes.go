package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	app.Post("/auth/token", handler.IssueAccessToken)
	app.Get("/feed/calendar.ics", handler.FeedAccessRequired, handler.LanguageMiddleware, handler.ExportCalendar)

	api := app.Group("/api", handler.AccessRequired, handler.LanguageMiddleware)

	entries := api.Group("/entries")
	entries.Get("", handler.ListEntries)
	entries.Post("/period", handler.LogPeriod)
	entries.Post("/ovulation", handler.LogOvulation)
	entries.Delete("/:id", handler.DeleteEntry)

	preferences := api.Group("/preferences")
	preferences.Get("", handler.GetPreferences)
	preferences.Put("", handler.UpdatePreferences)

	cycle := api.Group("/cycle")
	cycle.Get("/overview", handler.GetCycleOverview)
	cycle.Get("/marks", handler.GetCalendarMarks)
	cycle.Get("/phase", handler.GetPhase)
	cycle.Get("/month", handler.GetCalendarMonth)
	cycle.Get("/reminders", handler.GetReminders)
	cycle.Get("/calendar.ics", handler.ExportCalendar)

	logs := api.Group("/logs")
	logs.Get("", handler.ListDailyLogs)
	logs.Get("/:date", handler.GetDailyLog)
	logs.Put("/:date", handler.SaveDailyLog)
	logs.Delete("/:date", handler.DeleteDailyLog)

	symptoms := api.Group("/symptoms")
	symptoms.Get("", handler.ListSymptoms)
	symptoms.Post("", handler.CreateSymptom)
	symptoms.Delete("/:id", handler.DeleteSymptom)

	api.Get("/affirmation", handler.GetAffirmation)

	export := api.Group("/export")
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
}
