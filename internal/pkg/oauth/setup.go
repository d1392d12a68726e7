package oauth

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/middleware/session"
	redisstorage "github.com/gofiber/storage/redis"
	"github.com/markbates/goth"
	"github.com/markbates/goth/gothic"
	"github.com/markbates/goth/providers/github"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/mkarlsen/carhub/internal/pkg/cache"
	"github.com/mkarlsen/carhub/internal/pkg/env"
)

// exchangeTimeout bounds the code-for-token and profile calls against the
// provider; a timed-out exchange fails the login attempt like any other
// verification error.
const exchangeTimeout = 10 * time.Second

// Setup initializes Goth providers and the OAuth state store based on
// environment variables. It is safe to call multiple times; providers will
// just be re-registered.
func Setup() {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	if base == "" {
		base = "http://localhost:" + env.GetEnv("APP_PORT", "4000")
	}

	gh := github.New(
		env.GetEnv("GITHUB_KEY", ""),
		env.GetEnv("GITHUB_SECRET", ""),
		base+"/auth/callback/github",
		"read:user", "user:email",
	)
	gh.HTTPClient = &http.Client{Timeout: exchangeTimeout}

	goth.UseProviders(gh)

	// OAuth state via Redis, using same connection as app sessions (separate DB)
	cacheClient := cache.GetClient()
	cacheOpts := cacheClient.Options()
	host, port := "127.0.0.1", 6379
	if cacheOpts != nil && cacheOpts.Addr != "" {
		if h, p, err := net.SplitHostPort(cacheOpts.Addr); err == nil {
			host = h
			if parsed, e := strconv.Atoi(p); e == nil {
				port = parsed
			}
		} else {
			host = cacheOpts.Addr
		}
	}

	gothfiber.SessionStore = session.New(session.Config{
		Storage: redisstorage.New(redisstorage.Config{
			Host:     host,
			Port:     port,
			Username: cacheOpts.Username,
			Password: cacheOpts.Password,
			Database: 2,
			Reset:    false,
		}),
		KeyLookup:      "cookie:" + gothic.SessionName,
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !env.IsDev(),
		Expiration:     time.Hour,
	})
}
