package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/wobblehealth/checkin-api/internal/usecase/auth"
)

// EchoAuth returns an Echo middleware that resolves a bearer token or the
// access_token cookie to a profile and sets "user" (*entities.Profile) and
// "user_id" (uuid.UUID) into the Echo context.
func EchoAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{"error": "Unauthorized"})
			}

			profile, err := authService.ValidateSession(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{"error": "Unauthorized"})
			}

			c.Set("user", profile)
			c.Set("user_id", profile.ID)

			return next(c)
		}
	}
}

// extractToken reads the Authorization header, falling back to the session cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
