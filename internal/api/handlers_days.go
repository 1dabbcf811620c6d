package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	from, err := parseDayParam(c.Query("from"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseDayParam(c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	if to.Before(from) {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	states := handler.dayStateBuilder(session).StatesForRange(from, to, time.Now().In(handler.location))
	return c.JSON(states)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
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

	state := handler.dayStateBuilder(session).StateFor(day, time.Now().In(handler.location))
	return c.JSON(state)
}
