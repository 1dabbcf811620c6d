package api

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fema/internal/services"
)

func (handler *Handler) ExportJSON(c *fiber.Ctx) error {
	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	service := handler.exportService(session)
	now := time.Now().In(handler.location)
	from, to, err := handler.resolveExportRange(c, service, now)
	if err != nil {
		return mapExportRangeError(c, err)
	}

	data := service.BuildExportData(from, to, now)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=fema-export-%s.json", now.Format("2006-01-02")))
	return c.JSON(data)
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	service := handler.exportService(session)
	now := time.Now().In(handler.location)
	from, to, err := handler.resolveExportRange(c, service, now)
	if err != nil {
		return mapExportRangeError(c, err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build csv")
	}
	for _, row := range service.BuildCSVRows(from, to, now) {
		if err := writer.Write(row); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to build csv")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to build csv")
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=fema-export-%s.csv", now.Format("2006-01-02")))
	c.Type("csv", "utf-8")
	return c.Send(output.Bytes())
}

// resolveExportRange honors explicit from/to query params and falls
// back to the service's default range when both are absent.
func (handler *Handler) resolveExportRange(c *fiber.Ctx, service *services.ExportService, now time.Time) (time.Time, time.Time, error) {
	from, to, err := services.ParseExportRange(c.Query("from"), c.Query("to"), handler.location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	defaultFrom, defaultTo := service.DefaultRange(now)
	if from == nil {
		from = &defaultFrom
	}
	if to == nil {
		to = &defaultTo
	}
	if to.Before(*from) {
		return time.Time{}, time.Time{}, services.ErrExportRangeInvalid
	}
	return *from, *to, nil
}

func mapExportRangeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrExportFromDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	case errors.Is(err, services.ErrExportToDateInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	case errors.Is(err, services.ErrExportRangeInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to export data")
	}
}
