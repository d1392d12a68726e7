package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/markbates/goth"

	"github.com/mkarlsen/carhub/internal/pkg/constants"
	"github.com/mkarlsen/carhub/internal/pkg/session"
	"github.com/mkarlsen/carhub/internal/pkg/usercontext"
)

// socialSignInRequest is the programmatic sign-in body
type socialSignInRequest struct {
	Provider string `json:"provider"`
}

// HandleSocialSignIn resolves the requested provider and hands back the URL
// that begins its flow. This endpoint is invoked programmatically, so any
// failure is a generic 401 instead of a redirect.
func HandleSocialSignIn(c *fiber.Ctx) error {
	var req socialSignInRequest
	if err := c.BodyParser(&req); err != nil || req.Provider == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication failed",
		})
	}

	if _, err := goth.GetProvider(req.Provider); err != nil {
		log.Printf("Social sign-in rejected, unknown provider %q: %v", req.Provider, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url":      "/auth/" + req.Provider,
		"redirect": true,
	})
}

// HandleAuthLogout revokes the caller's session. Logging out an anonymous
// caller is a no-op.
func HandleAuthLogout(c *fiber.Ctx) error {
	if usercontext.IsLoggedIn(c) {
		log.Printf("Logout: revoking session of user %d (%s)", usercontext.GetUserID(c), usercontext.GetUsername(c))
	}

	if err := session.DestroySession(c); err != nil {
		log.Printf("Logout: session destroy failed: %v", err)
	}

	return c.Redirect(constants.LandingRoute, fiber.StatusSeeOther)
}
