package auth

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long a fabricated session lives.
const TokenTTL = 7 * 24 * time.Hour

func jwtSecret() []byte {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "aifinance_dev_secret_change_me"
	}
	return []byte(secret)
}

// MintToken fabricates the opaque session token: an HS256 JWT carrying the
// user id and a 7-day expiry. Nothing downstream verifies it beyond presence;
// it exists so the cookie looks and ages like a real session credential.
func MintToken(userID string, issuedAt time.Time) (string, time.Time, error) {
	expiresAt := issuedAt.Add(TokenTTL)
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     issuedAt.Unix(),
		"exp":     expiresAt.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseToken extracts the user id from a minted token. Used by /api/me to
// cross-check the cookie against the stored session.
func ParseToken(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || strings.TrimSpace(userID) == "" {
		return "", errors.New("user_id missing")
	}
	return userID, nil
}
