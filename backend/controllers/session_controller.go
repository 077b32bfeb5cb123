package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"revreview/backend/catalog"
	"revreview/backend/middleware"
	"revreview/backend/session"
	"revreview/backend/storage"
	"revreview/backend/streak"
	"revreview/backend/utils"
)

// SessionController drives the study timer. Starting a session counts as
// study activity for the streak; stopping folds the elapsed time into the
// stored total.
type SessionController struct {
	Store    *storage.Store
	Catalog  *catalog.Catalog
	Sessions *session.Manager
	Clock    session.Clock
}

func NewSessionController(store *storage.Store, cat *catalog.Catalog, sessions *session.Manager, clock session.Clock) *SessionController {
	return &SessionController{Store: store, Catalog: cat, Sessions: sessions, Clock: clock}
}

func (sc *SessionController) touchStreak(userID uint) error {
	updated := streak.Touch(sc.Store.Streak(userID), sc.Clock.Now())
	return sc.Store.SaveStreak(userID, updated)
}

// Start godoc
// @Summary Start a study session
// @Tags session
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /session/start [post]
func (sc *SessionController) Start(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	info, err := sc.Sessions.Start(userID)
	if err != nil {
		return utils.Conflict(c, err.Error())
	}
	if err := sc.touchStreak(userID); err != nil {
		return utils.InternalServerError(c, "Could not update streak")
	}

	// streak badges unlock at the start of the qualifying day
	newBadges, err := awardBadges(sc.Store, sc.Catalog, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not save badges")
	}

	return utils.Success(c, fiber.StatusCreated, fiber.Map{
		"session":   info,
		"streak":    sc.Store.Streak(userID),
		"newBadges": newBadges,
	})
}

// Pause godoc
// @Summary Pause the running session
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /session/pause [post]
func (sc *SessionController) Pause(c *fiber.Ctx) error {
	info, err := sc.Sessions.Pause(middleware.UserID(c))
	if err != nil {
		return utils.Conflict(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"session": info})
}

// Resume godoc
// @Summary Resume a paused session
// @Description Resuming is not new study activity; only start touches the streak
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /session/resume [post]
func (sc *SessionController) Resume(c *fiber.Ctx) error {
	info, err := sc.Sessions.Resume(middleware.UserID(c))
	if err != nil {
		return utils.Conflict(c, err.Error())
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"session": info})
}

// Stop godoc
// @Summary Stop the session and bank its study time
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /session/stop [post]
func (sc *SessionController) Stop(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	elapsed, err := sc.Sessions.Stop(userID)
	if err != nil {
		if errors.Is(err, session.ErrNotActive) {
			return utils.Conflict(c, err.Error())
		}
		return utils.InternalServerError(c, "Could not stop session")
	}

	total, err := sc.Store.AddStudyTime(userID, elapsed)
	if err != nil {
		return utils.InternalServerError(c, "Could not save study time")
	}

	newBadges, err := awardBadges(sc.Store, sc.Catalog, userID)
	if err != nil {
		return utils.InternalServerError(c, "Could not save badges")
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"elapsedMs":    elapsed,
		"totalStudyMs": total,
		"newBadges":    newBadges,
	})
}

// Status godoc
// @Summary Current session state
// @Tags session
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /session [get]
func (sc *SessionController) Status(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"session":      sc.Sessions.Status(userID),
		"totalStudyMs": sc.Store.TotalStudyTime(userID),
		"streak":       sc.Store.Streak(userID),
	})
}
