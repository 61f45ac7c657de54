package fees

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenSigner mints the signed tokens embedded in mock payment links, so the
// (equally mock) payment page can verify the link was issued by us and has
// not expired.
type TokenSigner struct {
	key []byte
}

func NewTokenSigner(key string) *TokenSigner {
	return &TokenSigner{key: []byte(key)}
}

type paymentClaims struct {
	PaymentID string `json:"payment_id"`
	jwt.RegisteredClaims
}

// Sign returns an HS256 token carrying the payment ID and expiry.
func (s *TokenSigner) Sign(paymentID string, issuedAt, expiresAt time.Time) (string, error) {
	claims := paymentClaims{
		PaymentID: paymentID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "campusdesk",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign payment token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the payment ID it was minted for.
func (s *TokenSigner) Verify(tokenString string) (string, error) {
	var claims paymentClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse payment token: %w", err)
	}
	return claims.PaymentID, nil
}
