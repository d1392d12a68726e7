package controllers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/markbates/goth"
	gothfiber "github.com/shareed2k/goth_fiber"
	"gorm.io/gorm"

	"github.com/mkarlsen/carhub/app/models"
	"github.com/mkarlsen/carhub/app/repository"
	"github.com/mkarlsen/carhub/internal/pkg/constants"
	"github.com/mkarlsen/carhub/internal/pkg/session"
)

var (
	userRepo    repository.UserRepository
	accountRepo repository.ProviderAccountRepository
)

// InitializeOAuthController wires the federation handlers to their storage backends
func InitializeOAuthController(users repository.UserRepository, accounts repository.ProviderAccountRepository) {
	userRepo = users
	accountRepo = accounts
}

// HandleOAuthCallback completes the provider flow and logs the user in.
// Every failure collapses into a redirect to the error page; the cause is
// only logged server-side.
func HandleOAuthCallback(c *fiber.Ctx) error {
	// Complete OAuth with provider and obtain unified user
	u, err := gothfiber.CompleteUserAuth(c)
	if err != nil {
		log.Printf("OAuth verification failed for provider %s: %v", c.Params("provider"), err)
		return c.Redirect(constants.AuthErrorRoute, fiber.StatusSeeOther)
	}

	appUser, err := resolveOAuthUser(userRepo, accountRepo, u)
	if err != nil {
		log.Printf("OAuth identity resolution failed for %s/%s: %v", u.Provider, u.UserID, err)
		return c.Redirect(constants.AuthErrorRoute, fiber.StatusSeeOther)
	}

	// Create app session
	if err := session.CreateUserSession(c, appUser.ID, appUser.Name); err != nil {
		log.Printf("OAuth session creation failed for user %d: %v", appUser.ID, err)
		return c.Redirect(constants.AuthErrorRoute, fiber.StatusSeeOther)
	}

	// Update last login timestamp
	_ = userRepo.TouchLastLogin(appUser.ID)

	return c.Redirect(constants.LandingRoute, fiber.StatusSeeOther)
}

// resolveOAuthUser maps a verified provider profile onto a local user,
// creating user and provider link on first login. The mapping is keyed by
// (provider, provider user id); an existing account with the same email is
// linked instead of duplicated.
func resolveOAuthUser(users repository.UserRepository, accounts repository.ProviderAccountRepository, u goth.User) (*models.User, error) {
	account, err := accounts.GetByProviderSubject(u.Provider, u.UserID)
	if err == nil {
		// Known identity: refresh stored tokens and load the linked user
		account.AccessToken = u.AccessToken
		account.RefreshToken = u.RefreshToken
		account.ExpiresAt = tokenExpiry(u)
		if err := accounts.Update(account); err != nil {
			return nil, err
		}
		return users.GetByID(account.UserID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// Optional email match if provided
	var appUser *models.User
	if u.Email != "" {
		appUser, _ = users.GetByEmail(u.Email)
	}
	if appUser == nil {
		// Create new user; password is a random placeholder since the schema
		// requires one (it is never usable for login)
		placeholder := fmt.Sprintf("oauth_%d", time.Now().UnixNano())
		hash, err := models.HashPassword(placeholder)
		if err != nil {
			return nil, err
		}
		email := u.Email
		if email == "" {
			// Ensure a unique, non-empty email to satisfy the unique index
			email = fmt.Sprintf("%s_%s@%s.oauth.local", u.Provider, u.UserID, u.Provider)
		}
		appUser = &models.User{
			Name:      firstNonEmpty(u.Name, u.NickName, u.Email, "User"),
			Email:     email,
			Password:  hash,
			AvatarURL: u.AvatarURL,
		}
		if err := appUser.Validate(); err != nil {
			return nil, err
		}
		if err := users.Create(appUser); err != nil {
			return nil, err
		}
	}

	account = &models.ProviderAccount{
		UserID:         appUser.ID,
		Provider:       u.Provider,
		ProviderUserID: u.UserID,
		AccessToken:    u.AccessToken,
		RefreshToken:   u.RefreshToken,
		ExpiresAt:      tokenExpiry(u),
	}
	if err := accounts.Create(account); err != nil {
		// A concurrent callback for the same provider subject may have won
		// the unique-index race; converge on its row instead of failing.
		if existing, lookupErr := accounts.GetByProviderSubject(u.Provider, u.UserID); lookupErr == nil {
			return users.GetByID(existing.UserID)
		}
		return nil, err
	}

	return appUser, nil
}

func tokenExpiry(u goth.User) *time.Time {
	if u.ExpiresAt.IsZero() {
		return nil
	}
	t := u.ExpiresAt
	return &t
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
