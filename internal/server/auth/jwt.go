// Package auth mints and verifies the signed token carried by the admin
// session cookie.
package auth

import (
	"time"

	"github.com/dkurganov/guestgate/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims extends the registered claims with the admin marker. The portal has
// a single operator account, so the marker is all the gate needs.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool
}

// GenerateAdminToken mints an HS256 token asserting admin access for the
// given validity window.
func GenerateAdminToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Admin: true,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyAdminToken parses the token and confirms the admin claim. Expired,
// forged, and non-admin tokens all fail with common.ErrInvalidToken.
func VerifyAdminToken(tokenString string, secretKey []byte) error {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return common.ErrInvalidToken
	}

	if !token.Valid || !claims.Admin {
		return common.ErrInvalidToken
	}

	return nil
}
