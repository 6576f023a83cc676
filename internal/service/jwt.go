package service

import (
	"errors"
	"time"

	"taskmanager/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the validity window of issued tokens. There is no server-side
// revocation; a token stays valid until it expires.
const tokenTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in issued tokens.
type Claims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed bearer tokens. The signing key,
// issuer and audience are fixed at construction; rotating the key
// invalidates all outstanding tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
}

func NewTokenService(secret, issuer, audience string) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// Issue signs a token carrying the username and role claims, valid for 24h.
func (s *TokenService) Issue(username string, role domain.Role) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate verifies the signature, issuer, audience and expiry of a token
// and returns the embedded claims. Any failure is ErrInvalidToken; callers
// never see parser internals.
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if _, err := domain.ParseRole(string(claims.Role)); err != nil {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
