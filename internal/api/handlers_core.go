package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fema/internal/services"
	"github.com/terraincognita07/fema/internal/store"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// requireSession returns the open session. Callers must hold the mutex
// for as long as they touch it.
func (handler *Handler) requireSession() (*store.Session, bool) {
	if handler.session == nil {
		return nil, false
	}
	return handler.session, true
}

// dayStateBuilder wires the engines over the session's current bucket
// contents. Engines are cheap to build, so every request gets a fresh
// view instead of a cached one that could go stale after a mutation.
func (handler *Handler) dayStateBuilder(session *store.Session) *services.DayStateBuilder {
	cycle := services.NewCycleEngine(session.Periods, session.Pregnancy, handler.location)
	pregnancy := services.NewPregnancyEngine(session.Pregnancy, handler.location)
	return services.NewDayStateBuilder(cycle, pregnancy, session.Notes, session.Intimacy, session.Visits, session.Moods)
}

func (handler *Handler) exportService(session *store.Session) *services.ExportService {
	return services.NewExportService(
		handler.dayStateBuilder(session),
		session.Periods,
		session.Notes,
		session.Intimacy,
		session.Visits,
		session.Moods,
		session.Pregnancy,
		handler.location,
	)
}
