package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookstore/bookstore-backend/internal/core/domain"
)

// JWTTokenService issues and validates HS256-signed bearer tokens. Tokens are
// stateless: nothing is stored server-side, so a token cannot be revoked
// before its expiry.
type JWTTokenService struct {
	secret   []byte
	tokenTTL time.Duration
}

func NewJWTTokenService(secret string, tokenTTL time.Duration) *JWTTokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &JWTTokenService{secret: []byte(secret), tokenTTL: tokenTTL}
}

type tokenClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Issue mints a token whose subject is the username and whose expiry is
// issuance time plus the configured lifetime.
func (s *JWTTokenService) Issue(username string, roles []string) (string, int64, error) {
	now := time.Now()
	claims := tokenClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.tokenTTL.Seconds()), nil
}

// Validate checks signature and expiry and recovers the principal. An expired
// but authentic token yields domain.ErrTokenExpired; anything malformed,
// tampered with, or signed differently yields domain.ErrTokenInvalid.
func (s *JWTTokenService) Validate(token string) (*domain.Principal, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.Principal{Username: claims.Subject, Roles: claims.Roles}, nil
}
