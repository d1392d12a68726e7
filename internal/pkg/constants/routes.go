package constants

// Static route constants
const (
	LandingRoute   = "/"
	AuthErrorRoute = "/auth-error"
)
