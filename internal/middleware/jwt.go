package middleware // middleware provides shared request processing for handlers

import (
    "net/http"
    "strings"

    "github.com/golang-jwt/jwt/v5"
    "github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
    ContextSubject = "subject"
    ContextRole    = "role"
)

// JWTAuth returns an Echo middleware that validates an HS256 Bearer token
// and stores its sub and role claims in the request context under
// ContextSubject and ContextRole.  With an empty secret the middleware is
// a pass-through, which leaves the wrapped routes public.
func JWTAuth(secret string) echo.MiddlewareFunc {
    if secret == "" {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims := jwt.MapClaims{}
            tok, err := jwt.ParseWithClaims(strings.TrimPrefix(auth, "Bearer "), claims,
                func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
                jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
                jwt.WithExpirationRequired(),
            )
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            sub, _ := claims.GetSubject()
            role, _ := claims["role"].(string)
            c.Set(ContextSubject, sub)
            c.Set(ContextRole, role)
            return next(c)
        }
    }
}
