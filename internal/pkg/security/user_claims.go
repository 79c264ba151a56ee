package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Plaza"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims carries the business identity inside the token.
type UserClaims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}
