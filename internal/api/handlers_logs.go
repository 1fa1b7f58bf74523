package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/models"
	"github.com/terraincognita07/bloom/internal/services"
)

type dailyLogView struct {
	models.DailyLog
	Day       string `json:"day"`
	MoodLabel string `json:"mood_label,omitempty"`
	Saved     bool   `json:"saved"`
}

type affirmationView struct {
	Date string `json:"date"`
	Key  string `json:"key"`
	Text string `json:"text"`
}

// ListDailyLogs returns the wellbeing history, newest first, with symptom frequencies.
func (handler *Handler) ListDailyLogs(c *fiber.Ctx) error {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return exportRangeError(c, err)
	}

	logs, err := handler.dailyLogService.ListHistory(c.UserContext(), from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load daily logs")
	}
	frequencies, err := handler.symptomService.CalculateFrequencies(c.UserContext(), logs)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load symptoms")
	}

	language := currentLanguage(c)
	views := make([]dailyLogView, 0, len(logs))
	for _, entry := range logs {
		views = append(views, handler.dailyLogView(language, entry, true))
	}
	return c.JSON(fiber.Map{
		"logs":        views,
		"frequencies": frequencies,
	})
}

func (handler *Handler) GetDailyLog(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, found, err := handler.dailyLogService.FetchLogByDate(c.UserContext(), day)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load daily log")
	}
	return c.JSON(handler.dailyLogView(currentLanguage(c), entry, found))
}

func (handler *Handler) SaveDailyLog(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	payload := dailyLogPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	entry, created, err := handler.dailyLogService.UpsertDailyLog(c.UserContext(), day, services.DailyLogInput{
		Mood:        payload.Mood,
		EnergyLevel: payload.EnergyLevel,
		SymptomIDs:  payload.SymptomIDs,
		Notes:       payload.Notes,
	}, handler.now())
	if err != nil {
		return dailyLogError(c, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(handler.dailyLogView(currentLanguage(c), entry, true))
}

func (handler *Handler) DeleteDailyLog(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	if err := handler.dailyLogService.DeleteDailyLog(c.UserContext(), day); err != nil {
		return dailyLogError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	symptoms, err := handler.symptomService.FetchSymptoms(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load symptoms")
	}
	return c.JSON(symptoms)
}

func (handler *Handler) CreateSymptom(c *fiber.Ctx) error {
	payload := symptomPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	symptom, err := handler.symptomService.CreateSymptom(c.UserContext(), payload.Name, payload.Icon, payload.Color)
	if err != nil {
		return symptomError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(symptom)
}

func (handler *Handler) DeleteSymptom(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom id")
	}
	if err := handler.symptomService.DeleteSymptom(c.UserContext(), uint(id)); err != nil {
		return symptomError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) GetAffirmation(c *fiber.Ctx) error {
	day, err := parseOptionalDayQuery(c.Query("date"), handler.today(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	affirmation := services.DailyAffirmation(day)
	return c.JSON(affirmationView{
		Date: services.DayKey(affirmation.Date),
		Key:  affirmation.Key,
		Text: handler.i18n.Translate(currentLanguage(c), affirmation.Key),
	})
}

func (handler *Handler) dailyLogView(language string, entry models.DailyLog, saved bool) dailyLogView {
	view := dailyLogView{
		DailyLog: entry,
		Day:      services.DayKey(entry.Date),
		Saved:    saved,
	}
	if entry.Mood != "" {
		view.MoodLabel = handler.i18n.TranslateOr(language, "mood."+entry.Mood, entry.Mood)
	}
	return view
}

func dailyLogError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDailyLogMoodInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid mood")
	case errors.Is(err, services.ErrDailyLogEnergyOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "energy level out of range")
	case errors.Is(err, services.ErrInvalidSymptomID):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom id")
	case errors.Is(err, services.ErrDailyLogInFuture):
		return apiError(c, fiber.StatusBadRequest, "date cannot be in the future")
	case errors.Is(err, services.ErrDailyLogNotFound):
		return apiError(c, fiber.StatusNotFound, "daily log not found")
	case errors.Is(err, services.ErrDailyLogDeleteFailed):
		return apiError(c, fiber.StatusInternalServerError, "failed to delete daily log")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save daily log")
	}
}

func symptomError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidSymptomName):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom name")
	case errors.Is(err, services.ErrInvalidSymptomColor):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom color")
	case errors.Is(err, services.ErrSymptomNameTaken):
		return apiError(c, fiber.StatusConflict, "symptom already exists")
	case errors.Is(err, services.ErrSymptomNotFound):
		return apiError(c, fiber.StatusNotFound, "symptom not found")
	case errors.Is(err, services.ErrBuiltinSymptomDeleteForbidden):
		return apiError(c, fiber.StatusForbidden, "built-in symptoms cannot be deleted")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to update symptoms")
	}
}
