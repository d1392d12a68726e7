package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Without an initialized store the helpers must degrade instead of panic:
// issuing fails loudly, revocation and lookup are silent no-ops.
func TestSessionHelpersWithoutStore(t *testing.T) {
	require.Nil(t, GetSessionStore())

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		assert.Error(t, CreateUserSession(c, 1, "ola"))
		assert.NoError(t, DestroySession(c))
		assert.Empty(t, GetSessionValue(c, "username"))
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
