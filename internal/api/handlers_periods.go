package api

import (
	"errors"
	"maps"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fema/internal/services"
)

type periodLengthInput struct {
	Length   int    `json:"length"`
	NewStart string `json:"new_start,omitempty"`
}

type periodFlowInput struct {
	Flow int `json:"flow"`
}

func (handler *Handler) StartPeriod(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periods := maps.Clone(session.Periods)
	services.SetPeriodStart(periods, day)
	if err := session.SavePeriods(periods); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save period data")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePeriodLength(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	input := periodLengthInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	var newStart *time.Time
	if input.NewStart != "" {
		parsedStart, err := parseDayParam(input.NewStart, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid new start date")
		}
		newStart = &parsedStart
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periods := maps.Clone(session.Periods)
	if err := services.ChangePeriodLength(periods, day, input.Length, newStart); err != nil {
		return mapPeriodError(c, err)
	}
	if err := session.SavePeriods(periods); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save period data")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ChangePeriodFlow(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	input := periodFlowInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periods := maps.Clone(session.Periods)
	if err := services.ChangeFlow(periods, day, input.Flow); err != nil {
		return mapPeriodError(c, err)
	}
	if err := session.SavePeriods(periods); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save period data")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periods := maps.Clone(session.Periods)
	if err := services.DeletePeriod(periods, day); err != nil {
		return mapPeriodError(c, err)
	}
	if err := session.SavePeriods(periods); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save period data")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func mapPeriodError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNoPeriodAtDate):
		return apiError(c, fiber.StatusNotFound, "no period recorded at this date")
	case errors.Is(err, services.ErrPeriodFlowInvalid):
		return apiError(c, fiber.StatusBadRequest, "flow must be between 1 and 5")
	case errors.Is(err, services.ErrPeriodLengthInvalid):
		return apiError(c, fiber.StatusBadRequest, "period length is out of range")
	default:
		return apiError(c, fiber.StatusInternalServerError, "failed to update period data")
	}
}
