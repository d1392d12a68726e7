package usercontext

// Shared session keys used across controllers and middlewares
const (
	AuthKey     = "authenticated"
	KeyUserID   = "user_id"
	KeyUsername = "username"
)
