package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fema/internal/services"
)

type pregnancyDateInput struct {
	Date string `json:"date"`
}

func (handler *Handler) GetPregnancy(c *fiber.Ctx) error {
	rawDate := c.Query("date")

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now().In(handler.location)
	day := now
	if rawDate != "" {
		parsed, err := parseDayParam(rawDate, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid date")
		}
		day = parsed
	}

	engine := services.NewPregnancyEngine(session.Pregnancy, handler.location)
	state := engine.StateAt(day, now)
	response := fiber.Map{
		"state":      state.State,
		"due":        state.Due,
		"start_date": session.Pregnancy.StartDate,
		"birth_date": session.Pregnancy.BirthDate,
	}
	if engine.IsPregnant(day) {
		response["month"] = engine.MonthIndex(day)
	}
	return c.JSON(response)
}

func (handler *Handler) GetPregnancyReminder(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Query("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	engine := services.NewPregnancyEngine(session.Pregnancy, handler.location)
	reminder, found := engine.ReminderForDate(day)
	return c.JSON(fiber.Map{"reminder": reminder, "found": found})
}

func (handler *Handler) StartPregnancy(c *fiber.Ctx) error {
	input := pregnancyDateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	start, err := parseDayParam(input.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	updated, err := services.StartPregnancy(session.Pregnancy, start, handler.location)
	if err != nil {
		if errors.Is(err, services.ErrPregnancyOverlap) {
			return apiError(c, fiber.StatusConflict, "a pregnancy is already tracked for this date")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to start pregnancy tracking")
	}

	if err := session.SavePregnancy(updated); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save pregnancy data")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) SetBirthDate(c *fiber.Ctx) error {
	input := pregnancyDateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	birth, err := parseDayParam(input.Date, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	updated, err := services.SetBirthDate(session.Pregnancy, birth, handler.location)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPregnancyNotStarted):
			return apiError(c, fiber.StatusConflict, "no pregnancy is being tracked")
		case errors.Is(err, services.ErrBirthDateOutOfRange):
			return apiError(c, fiber.StatusBadRequest, "birth date is outside the tracked pregnancy")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to save birth date")
		}
	}

	if err := session.SavePregnancy(updated); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save pregnancy data")
	}
	return c.JSON(fiber.Map{"ok": true})
}
