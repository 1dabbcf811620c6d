package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/fema/internal/security"
	"github.com/terraincognita07/fema/internal/services"
	"github.com/terraincognita07/fema/internal/store"
)

type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SetupStatus reports whether a credential record exists, so a client
// can show "create account" instead of "log in" on first launch.
func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	exists, err := store.HasCredentials(handler.buckets)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to read setup status")
	}
	return c.JSON(fiber.Map{"registered": exists})
}

// Login derives the bucket key from the credentials, verifies or
// creates the credential record, and opens the in-memory session. A
// login replaces whatever session was open before.
func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}

	username, password, err := services.NormalizeCredentialsInput(input.Username, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "username and password are required")
	}

	key := security.DeriveKey(username, password)

	registered, err := store.HasCredentials(handler.buckets)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to read credentials")
	}
	if registered {
		if _, err := store.VerifyCredentials(handler.buckets, key, username, password); err != nil {
			if errors.Is(err, store.ErrInvalidCredentials) {
				return apiError(c, fiber.StatusUnauthorized, "invalid username or password")
			}
			return apiError(c, fiber.StatusInternalServerError, "failed to verify credentials")
		}
	} else {
		if _, err := store.CreateCredentials(handler.buckets, key, username, password); err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to create credentials")
		}
		log.Printf("created credential record for %s", username)
	}

	session, err := store.OpenSession(handler.buckets, key, username, handler.location)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to open session")
	}

	handler.mutex.Lock()
	handler.session = session
	handler.mutex.Unlock()

	if err := handler.setAuthCookie(c, username); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to issue token")
	}
	return c.JSON(fiber.Map{"ok": true, "username": username})
}

// Logout drops the in-memory session; the encrypted buckets on disk
// are untouched.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.mutex.Lock()
	handler.session = nil
	handler.mutex.Unlock()

	if username, ok := currentUsername(c); ok {
		log.Printf("closed session for %s", username)
	}

	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

// ClearAllData erases every bucket, credentials included, and closes
// the session.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	handler.mutex.Lock()
	defer handler.mutex.Unlock()

	if handler.session == nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := handler.session.ClearAll(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to clear data")
	}
	handler.session = nil
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}
