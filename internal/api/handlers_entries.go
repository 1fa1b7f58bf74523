package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	entries, err := handler.entryService.ListHistory(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	return c.JSON(entries)
}

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	payload := periodPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	start, err := parseDayParam(payload.StartDate, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	}
	end := time.Time{}
	if payload.EndDate != "" {
		end, err = parseDayParam(payload.EndDate, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid end date")
		}
	}

	entry, err := handler.entryService.LogPeriod(c.UserContext(), start, end, payload.FlowIntensity, handler.now())
	if err != nil {
		return entryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) LogOvulation(c *fiber.Ctx) error {
	payload := ovulationPayload{}
	if err := handler.parsePayload(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	day, err := parseDayParam(payload.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.entryService.LogOvulation(c.UserContext(), day, handler.now())
	if err != nil {
		return entryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	if err := handler.entryService.DeleteEntry(c.UserContext(), c.Params("id")); err != nil {
		return entryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func entryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrEntryDateRangeInvalid):
		return apiError(c, fiber.StatusBadRequest, "end date before start date")
	case errors.Is(err, services.ErrEntryPeriodTooLong):
		return apiError(c, fiber.StatusBadRequest, "period too long")
	case errors.Is(err, services.ErrEntryFlowInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid flow value")
	case errors.Is(err, services.ErrEntryInFuture):
		return apiError(c, fiber.StatusBadRequest, "date cannot be in the future")
	case errors.Is(err, services.ErrEntryNotFound):
		return apiError(c, fiber.StatusNotFound, "entry not found")
	case errors.Is(err, services.ErrEntryDeleteFailed):
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to save entry")
	}
}
