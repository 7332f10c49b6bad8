package userservice

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// accessClaims is the signed payload of an access token. The subject carries the
// user id so the token resolves to a user without any server-side token state.
type accessClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func newAccessToken(secret []byte, user *User, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := accessClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// parseAccessToken verifies the signature and expiry of a token and returns the
// user id and username embedded in it. Any failure collapses to ErrInvalidToken.
func parseAccessToken(secret []byte, token string) (int, string, error) {
	var claims accessClaims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return 0, "", ErrInvalidToken
	}

	id, err := strconv.Atoi(claims.Subject)
	if err != nil || id < 1 {
		return 0, "", ErrInvalidToken
	}

	return id, claims.Username, nil
}
