package middleware

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireRole rejects requests whose role (set by JWTAuth) is not one of
// roles with 403 Forbidden.  When enabled is false it is a pass-through,
// matching JWTAuth with an empty secret.
func RequireRole(enabled bool, roles ...string) echo.MiddlewareFunc {
    if !enabled {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(ContextRole).(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
            }
            return next(c)
        }
    }
}
