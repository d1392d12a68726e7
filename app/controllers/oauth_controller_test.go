package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/markbates/goth"
	gothfiber "github.com/shareed2k/goth_fiber"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mkarlsen/carhub/app/models"
)

type fakeUserRepo struct {
	users  map[uint]models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) TouchLastLogin(id uint) error {
	return nil
}

type fakeAccountRepo struct {
	accounts map[string]models.ProviderAccount
	nextID   uint
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]models.ProviderAccount), nextID: 1}
}

func accountKey(provider, subject string) string {
	return provider + "/" + subject
}

func (r *fakeAccountRepo) GetByProviderSubject(provider, providerUserID string) (*models.ProviderAccount, error) {
	account, ok := r.accounts[accountKey(provider, providerUserID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &account, nil
}

func (r *fakeAccountRepo) Create(account *models.ProviderAccount) error {
	key := accountKey(account.Provider, account.ProviderUserID)
	if _, ok := r.accounts[key]; ok {
		return fmt.Errorf("duplicate entry for key %s", key)
	}
	account.ID = r.nextID
	r.nextID++
	r.accounts[key] = *account
	return nil
}

func (r *fakeAccountRepo) Update(account *models.ProviderAccount) error {
	r.accounts[accountKey(account.Provider, account.ProviderUserID)] = *account
	return nil
}

func githubProfile() goth.User {
	return goth.User{
		Provider:    "github",
		UserID:      "123",
		Name:        "Ola Nordmann",
		Email:       "ola@example.com",
		AvatarURL:   "https://avatars.example.com/ola",
		AccessToken: "token-1",
	}
}

func TestResolveOAuthUserCreatesUserAndLink(t *testing.T) {
	users := newFakeUserRepo()
	accounts := newFakeAccountRepo()

	user, err := resolveOAuthUser(users, accounts, githubProfile())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "Ola Nordmann", user.Name)
	assert.Equal(t, "ola@example.com", user.Email)
	assert.Equal(t, "https://avatars.example.com/ola", user.AvatarURL)
	// Placeholder password is set but never usable for login
	assert.NotEmpty(t, user.Password)

	account, err := accounts.GetByProviderSubject("github", "123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, account.UserID)
	assert.Equal(t, "token-1", account.AccessToken)
}

func TestResolveOAuthUserStableIdentity(t *testing.T) {
	users := newFakeUserRepo()
	accounts := newFakeAccountRepo()

	first, err := resolveOAuthUser(users, accounts, githubProfile())
	require.NoError(t, err)

	relogin := githubProfile()
	relogin.AccessToken = "token-2"
	second, err := resolveOAuthUser(users, accounts, relogin)
	require.NoError(t, err)

	// Repeated logins with the same provider account resolve to the same
	// identity, never create duplicates
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, users.users, 1)
	assert.Len(t, accounts.accounts, 1)

	account, err := accounts.GetByProviderSubject("github", "123")
	require.NoError(t, err)
	assert.Equal(t, "token-2", account.AccessToken)
}

func TestResolveOAuthUserLinksByEmail(t *testing.T) {
	users := newFakeUserRepo()
	accounts := newFakeAccountRepo()

	existing := &models.User{Name: "Ola Nordmann", Email: "ola@example.com", Password: "x"}
	require.NoError(t, users.Create(existing))

	user, err := resolveOAuthUser(users, accounts, githubProfile())
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	assert.Len(t, users.users, 1)
}

func TestResolveOAuthUserWithoutEmail(t *testing.T) {
	users := newFakeUserRepo()
	accounts := newFakeAccountRepo()

	profile := githubProfile()
	profile.Email = ""
	profile.Name = ""
	profile.NickName = "olan"

	user, err := resolveOAuthUser(users, accounts, profile)
	require.NoError(t, err)

	assert.Equal(t, "olan", user.Name)
	assert.Equal(t, "github_123@github.oauth.local", user.Email)
}

func TestResolveOAuthUserRejectsInvalidProfile(t *testing.T) {
	users := newFakeUserRepo()
	accounts := newFakeAccountRepo()

	profile := githubProfile()
	profile.AvatarURL = strings.Repeat("a", 300)

	_, err := resolveOAuthUser(users, accounts, profile)
	require.Error(t, err)

	// Nothing may be persisted for a profile that fails validation
	assert.Empty(t, users.users)
	assert.Empty(t, accounts.accounts)
}

// racingAccountRepo simulates losing the unique-index race: the first lookup
// misses, the insert collides, and the re-read observes the winner's row.
type racingAccountRepo struct {
	winner  models.ProviderAccount
	lookups int
}

func (r *racingAccountRepo) GetByProviderSubject(provider, providerUserID string) (*models.ProviderAccount, error) {
	r.lookups++
	if r.lookups == 1 {
		return nil, gorm.ErrRecordNotFound
	}
	account := r.winner
	return &account, nil
}

func (r *racingAccountRepo) Create(account *models.ProviderAccount) error {
	return errors.New("Error 1062: Duplicate entry")
}

func (r *racingAccountRepo) Update(account *models.ProviderAccount) error {
	return nil
}

func TestResolveOAuthUserConvergesOnRace(t *testing.T) {
	users := newFakeUserRepo()
	winner := &models.User{Name: "Winner", Email: "winner@example.com", Password: "x"}
	require.NoError(t, users.Create(winner))

	profile := githubProfile()
	profile.Email = "other@example.com"
	accounts := &racingAccountRepo{
		winner: models.ProviderAccount{UserID: winner.ID, Provider: "github", ProviderUserID: "123"},
	}

	user, err := resolveOAuthUser(users, accounts, profile)
	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
}

func TestHandleOAuthCallbackVerificationFailureRedirects(t *testing.T) {
	// An in-memory state store with no pending flow makes CompleteUserAuth fail
	gothfiber.SessionStore = fibersession.New()
	InitializeOAuthController(newFakeUserRepo(), newFakeAccountRepo())

	app := fiber.New()
	app.Get("/auth/callback/:provider", HandleOAuthCallback)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/auth/callback/github", nil), -1)
	require.NoError(t, err)

	// The browser only ever sees a redirect, never the underlying cause
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/auth-error", resp.Header.Get("Location"))
}
