package router

import (
	"github.com/gofiber/fiber/v2"
	gothfiber "github.com/shareed2k/goth_fiber"

	"github.com/mkarlsen/carhub/app/controllers"
	"github.com/mkarlsen/carhub/app/repository"
	"github.com/mkarlsen/carhub/internal/pkg/database"
	"github.com/mkarlsen/carhub/internal/pkg/middleware"
	"github.com/mkarlsen/carhub/internal/pkg/oauth"
	"github.com/mkarlsen/carhub/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// init oauth providers
	oauth.Setup()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Wire controllers to their repositories
	repository.InitializeFactory(database.GetDB())
	factory := repository.GetGlobalFactory()
	controllers.InitializeOAuthController(
		factory.GetUserRepository(),
		factory.GetProviderAccountRepository(),
	)

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Social OAuth. The callback route is registered first so its static
	// prefix wins over the begin route's :provider segment.
	app.Get("/auth/callback/:provider", controllers.HandleOAuthCallback)
	app.Get("/auth/:provider", gothfiber.BeginAuthHandler)
	app.Post("/auth/sign-in/social", controllers.HandleSocialSignIn)

	// Auth
	app.Post("/logout", middleware.RequireAuth, controllers.HandleAuthLogout)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
