package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

type TokenType string

const (
	TokenTypeUndefined TokenType = ""
	// TokenTypeOrganizer may look up registrations.
	TokenTypeOrganizer TokenType = "organizer"
	TokenTypeAdmin     TokenType = "admin"
)

const tokenIssuer = "hackathon-registration"

type TokenClaims struct {
	Type TokenType `json:"type"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 staff tokens with one shared secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		now:    time.Now,
	}
}

func ParseTokenType(s string) (TokenType, error) {
	switch t := TokenType(s); t {
	case TokenTypeOrganizer, TokenTypeAdmin:
		return t, nil
	default:
		return TokenTypeUndefined, fmt.Errorf("unknown token type %q", s)
	}
}

func (i *Issuer) Generate(tokenType TokenType, ttl time.Duration) (string, error) {
	if len(i.secret) == 0 {
		return "", ErrMissingSecret
	}

	now := i.now()
	claims := TokenClaims{
		Type: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

func (i *Issuer) Verify(tokenString string) (*TokenClaims, error) {
	if len(i.secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Wrap(ErrInvalidSigningMethod, fmt.Sprint(token.Header["alg"]))
		}
		return i.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*TokenClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Allows reports whether tokenString is valid and of one of the given types.
func (i *Issuer) Allows(tokenString string, types ...TokenType) bool {
	claims, err := i.Verify(tokenString)
	if err != nil {
		return false
	}
	for _, t := range types {
		if claims.Type == t {
			return true
		}
	}
	return false
}
