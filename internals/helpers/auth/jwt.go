package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// AccessClaims: isi access token.
type AccessClaims struct {
	UserID   string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	UserName string `json:"user_name"`
	jwt.RegisteredClaims
}

var ErrMissingSecret = errors.New("missing JWT secret")

// SignAccessToken membuat HS256 token untuk user.
func SignAccessToken(userID uuid.UUID, email, role, userName, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, ErrMissingSecret
	}
	exp := now.Add(ttl)
	claims := AccessClaims{
		UserID:   userID.String(),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Role:     role,
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, exp, nil
}

// ParseAccessToken memverifikasi signature + exp (leeway kecil untuk clock skew).
func ParseAccessToken(raw, secret string) (*AccessClaims, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrMissingSecret
	}
	claims := &AccessClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}
	if _, err := uuid.Parse(claims.UserID); err != nil {
		return nil, errors.New("invalid user id in token")
	}
	return claims, nil
}

// TokenExpiry: dipakai logout untuk TTL blacklist.
func TokenExpiry(raw, secret string) (time.Time, bool) {
	c, err := ParseAccessToken(raw, secret)
	if err != nil || c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}
