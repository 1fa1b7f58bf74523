package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

type phaseView struct {
	Date     string              `json:"date"`
	Phase    services.PhaseLabel `json:"phase"`
	PhaseKey string              `json:"phase_key"`
	Label    string              `json:"label"`
}

type overviewView struct {
	services.CycleOverview
	PhaseKey      string   `json:"phase_key"`
	PhaseLocal    string   `json:"phase_label"`
	WarningLabels []string `json:"warning_labels,omitempty"`
}

func (handler *Handler) GetCycleOverview(c *fiber.Ctx) error {
	reference, err := parseOptionalDayQuery(c.Query("date"), handler.today(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	overview, err := handler.cycleService.Overview(c.UserContext(), reference)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build cycle overview")
	}

	language := currentLanguage(c)
	view := overviewView{
		CycleOverview: overview,
		PhaseKey:      overview.Phase.PhaseKey(),
		PhaseLocal:    handler.localizedPhase(language, overview.Phase),
	}
	for _, warning := range overview.Warnings {
		view.WarningLabels = append(view.WarningLabels, handler.i18n.TranslateOr(language, "warning."+string(warning), string(warning)))
	}
	return c.JSON(view)
}

func (handler *Handler) GetCalendarMarks(c *fiber.Ctx) error {
	reference, err := parseOptionalDayQuery(c.Query("date"), handler.today(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	marks, windows, err := handler.cycleService.Marks(c.UserContext(), reference)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build calendar marks")
	}
	return c.JSON(fiber.Map{
		"reference_date": services.DayKey(reference),
		"windows":        windows,
		"marks":          marks,
	})
}

// GetPhase classifies ?date= against the prediction framed at ?reference= (default today).
func (handler *Handler) GetPhase(c *fiber.Ctx) error {
	today := handler.today()
	query, err := parseOptionalDayQuery(c.Query("date"), today, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	reference, err := parseOptionalDayQuery(c.Query("reference"), today, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid reference date")
	}

	phase, err := handler.cycleService.Phase(c.UserContext(), query, reference)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to resolve phase")
	}
	return c.JSON(phaseView{
		Date:     services.DayKey(query),
		Phase:    phase,
		PhaseKey: phase.PhaseKey(),
		Label:    handler.localizedPhase(currentLanguage(c), phase),
	})
}

func (handler *Handler) GetCalendarMonth(c *fiber.Ctx) error {
	today := handler.today()
	monthStart, err := parseMonthQuery(c.Query("month"), today, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}
	reference, err := parseOptionalDayQuery(c.Query("date"), today, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	days, err := handler.cycleService.Month(c.UserContext(), monthStart, reference, today)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build calendar")
	}
	return c.JSON(fiber.Map{
		"month": monthStart.Format("2006-01"),
		"days":  days,
	})
}

func (handler *Handler) GetReminders(c *fiber.Ctx) error {
	day, err := parseOptionalDayQuery(c.Query("date"), handler.today(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	reminders, err := handler.cycleService.Reminders(c.UserContext(), day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to plan reminders")
	}
	return c.JSON(reminders)
}

func (handler *Handler) ExportCalendar(c *fiber.Ctx) error {
	payload, err := handler.cycleService.CalendarExport(c.UserContext(), handler.today(), handler.now())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export calendar")
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="bloom-cycle.ics"`)
	return c.SendString(payload)
}

func (handler *Handler) localizedPhase(language string, phase services.PhaseLabel) string {
	return handler.i18n.TranslateOr(language, "phase."+phase.PhaseKey(), string(phase))
}
