package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/bloom/internal/services"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return exportRangeError(c, err)
	}

	summary, err := handler.exportService.BuildSummary(c.UserContext(), from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build export summary")
	}
	return c.JSON(summary)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return exportRangeError(c, err)
	}

	payload, err := handler.exportService.BuildCSV(c.UserContext(), from, to)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to export csv")
	}

	filename := fmt.Sprintf("bloom-entries-%s.csv", handler.now().In(handler.location).Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(payload)
}

func exportRangeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrExportFromDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	case errors.Is(err, services.ErrExportToDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	default:
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}
}

