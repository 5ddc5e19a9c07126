package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateJWT issues an HS256 bearer token carrying the user id. The email
// and jti claims ride along for traceability.
func GenerateJWT(userID uint, email, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    fmt.Sprintf("%d", userID),
		"userId": userID,
		"email":  email,
		"jti":    uuid.NewString(),
		"exp":    time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}
