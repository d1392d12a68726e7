package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mkarlsen/carhub/internal/pkg/session"
	"github.com/mkarlsen/carhub/internal/pkg/usercontext"
)

// UserContextMiddleware validates the caller's session on every request and
// exposes the result through Locals. An invalid or expired session simply
// yields the anonymous context.
func UserContextMiddleware(c *fiber.Ctx) error {
	// Goth uses its own fiber session store on the OAuth routes; skip our
	// app session there to prevent cross-store collisions.
	if strings.HasPrefix(c.Path(), "/auth/") {
		return c.Next()
	}

	store := session.GetSessionStore()
	if store == nil {
		return anonymous(c)
	}

	sess, err := store.Get(c)
	if err != nil {
		return anonymous(c)
	}

	if auth, ok := sess.Get(usercontext.AuthKey).(bool); !ok || !auth {
		return anonymous(c)
	}

	uid, ok := sess.Get(usercontext.KeyUserID).(uint)
	if !ok {
		return anonymous(c)
	}

	username := session.GetSessionValue(c, usercontext.KeyUsername)
	c.Locals("USER_CONTEXT", usercontext.UserContext{
		UserID:     uid,
		Username:   username,
		IsLoggedIn: true,
	})

	return c.Next()
}

func anonymous(c *fiber.Ctx) error {
	c.Locals("USER_CONTEXT", usercontext.UserContext{IsLoggedIn: false})
	return c.Next()
}
