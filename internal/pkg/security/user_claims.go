package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserClaims Token 中携带的管理员身份
type UserClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
