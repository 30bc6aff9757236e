package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenValidity is the fixed lifetime of issued tokens, independent of the
// expiry Shopify reports on the wrapped access token.
const TokenValidity = time.Hour

// Signer wraps a Shopify customer access token in a locally signed JWT
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign issues an HS256 JWT carrying the Shopify access token and its
// upstream-reported expiry.
func (s *Signer) Sign(accessToken, expiresAt string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"accessToken": accessToken,
		"expiresAt":   expiresAt,
		"iat":         now.Unix(),
		"exp":         now.Add(TokenValidity).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token issued by Sign and returns its claims
func (s *Signer) Parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
