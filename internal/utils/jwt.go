// Package utils provides helpers for issuing operator access tokens.
package utils

import (
    "errors"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// RoleOperator is the role allowed to read the seat chart when operator
// authentication is enabled.
const RoleOperator = "OPERATOR"

// AccessToken is a signed JWT and its expiry.
type AccessToken struct {
    Token string    `json:"token"`
    Exp   time.Time `json:"expires"`
}

// NewAccessToken builds and signs an HS256 JWT for subject with the given
// role, valid for ttl.  The claims are sub, role, exp and iat.
func NewAccessToken(secret, subject, role string, ttl time.Duration) (AccessToken, error) {
    if secret == "" {
        return AccessToken{}, errors.New("empty signing secret")
    }
    if ttl <= 0 {
        return AccessToken{}, errors.New("token ttl must be positive")
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.MapClaims{
        "sub":  subject,
        "role": role,
        "exp":  exp.Unix(),
        "iat":  now.Unix(),
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}
