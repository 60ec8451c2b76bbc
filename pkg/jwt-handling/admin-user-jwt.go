package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const ADMIN_TOKEN_ISSUER = "brand-health-dashboard"

// Information a token enocodes
type AdminUserClaims struct {
	IsAdmin bool `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewAdminUserToken(expiresIn time.Duration, subject string, isAdmin bool, secretKey string) (tokenString string, err error) {
	now := time.Now()
	claims := AdminUserClaims{
		isAdmin,
		jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    ADMIN_TOKEN_ISSUER,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateAdminUserToken(tokenString string, secretKey string) (claims *AdminUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(ADMIN_TOKEN_ISSUER))
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*AdminUserClaims)
	valid = valid && token.Valid
	return
}
