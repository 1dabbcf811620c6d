package api

import (
	"maps"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fema/internal/models"
	"github.com/terraincognita07/fema/internal/services"
	"github.com/terraincognita07/fema/internal/store"
)

// The per-date record buckets all mutate the same way: parse the date,
// validate the payload, rewrite a copy of the bucket, and let the
// session swap the copy in once the save succeeds. A failed save leaves
// the session serving the old state.

func (handler *Handler) upsertRecord(c *fiber.Ctx, mutate func(session *store.Session, key string) error) error {
	day, err := parseDayParam(c.Params("date"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}
	key := services.FormatDate(day)

	handler.mutex.Lock()
	defer handler.mutex.Unlock()
	session, ok := handler.requireSession()
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := mutate(session, key); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to save data")
	}
	return c.JSON(fiber.Map{"ok": true})
}

type noteInput struct {
	Text string `json:"text"`
}

func (handler *Handler) UpsertNote(c *fiber.Ctx) error {
	input := noteInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return apiError(c, fiber.StatusBadRequest, "note text is required")
	}

	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		notes := maps.Clone(session.Notes)
		notes[key] = models.NoteRecord{Text: text}
		return session.SaveNotes(notes)
	})
}

func (handler *Handler) DeleteNote(c *fiber.Ctx) error {
	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		notes := maps.Clone(session.Notes)
		delete(notes, key)
		return session.SaveNotes(notes)
	})
}

type intimacyInput struct {
	Note string `json:"note"`
}

func (handler *Handler) UpsertIntimacy(c *fiber.Ctx) error {
	input := intimacyInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		intimacy := maps.Clone(session.Intimacy)
		intimacy[key] = models.IntimacyRecord{Note: strings.TrimSpace(input.Note)}
		return session.SaveIntimacy(intimacy)
	})
}

func (handler *Handler) DeleteIntimacy(c *fiber.Ctx) error {
	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		intimacy := maps.Clone(session.Intimacy)
		delete(intimacy, key)
		return session.SaveIntimacy(intimacy)
	})
}

type visitInput struct {
	Type  string `json:"type"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

func (handler *Handler) UpsertVisit(c *fiber.Ctx) error {
	input := visitInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if !models.IsValidVisitType(input.Type) {
		return apiError(c, fiber.StatusBadRequest, "unknown visit type")
	}
	visitTime := strings.TrimSpace(input.Time)
	if visitTime != "" {
		if _, err := time.Parse("15:04", visitTime); err != nil {
			return apiError(c, fiber.StatusBadRequest, "visit time must be HH:MM")
		}
	}

	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		visits := maps.Clone(session.Visits)
		visits[key] = models.MedicalVisitRecord{
			Type:  input.Type,
			Time:  visitTime,
			Notes: strings.TrimSpace(input.Notes),
		}
		return session.SaveVisits(visits)
	})
}

func (handler *Handler) DeleteVisit(c *fiber.Ctx) error {
	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		visits := maps.Clone(session.Visits)
		delete(visits, key)
		return session.SaveVisits(visits)
	})
}

type moodInput struct {
	Mood     string   `json:"mood"`
	Sleep    string   `json:"sleep"`
	Weight   *float64 `json:"weight"`
	Temp     *float64 `json:"temp"`
	Symptoms []string `json:"symptoms"`
}

func (handler *Handler) UpsertMood(c *fiber.Ctx) error {
	input := moodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if input.Mood != "" && !models.IsValidMood(input.Mood) {
		return apiError(c, fiber.StatusBadRequest, "unknown mood")
	}

	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		moods := maps.Clone(session.Moods)
		moods[key] = models.MoodRecord{
			Mood:     input.Mood,
			Sleep:    strings.TrimSpace(input.Sleep),
			Weight:   input.Weight,
			Temp:     input.Temp,
			Symptoms: input.Symptoms,
		}
		return session.SaveMoods(moods)
	})
}

func (handler *Handler) DeleteMood(c *fiber.Ctx) error {
	return handler.upsertRecord(c, func(session *store.Session, key string) error {
		moods := maps.Clone(session.Moods)
		delete(moods, key)
		return session.SaveMoods(moods)
	})
}
