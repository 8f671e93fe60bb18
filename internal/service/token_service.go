package service

import (
	"errors"
	"fmt"
	"time"

	"wallet-service/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
)

// accessClaims is the wire format of an access token.
type accessClaims struct {
	SubjectID *int64    `json:"id"`
	Roles     *[]string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTTokenService implements ports.TokenService using HS256 JWT.
type JWTTokenService struct {
	secret []byte
	expiry time.Duration
	parser *jwt.Parser
}

// NewJWTTokenService creates a new JWT token service. expiry is only used
// by Generate.
func NewJWTTokenService(secret string, expiry time.Duration) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(secret),
		expiry: expiry,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

// Generate issues a signed token for the subject. Used by tooling and tests;
// the API itself only verifies tokens.
func (s *JWTTokenService) Generate(subjectID int64, roles ...domain.Role) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.expiry)

	raw := make([]string, 0, len(roles))
	for _, r := range roles {
		raw = append(raw, string(r))
	}

	claims := accessClaims{
		SubjectID: &subjectID,
		Roles:     &raw,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Validate parses and verifies a token, returning the caller's identity.
// Unknown roles are dropped.
func (s *JWTTokenService) Validate(tokenString string) (*domain.Identity, error) {
	var claims accessClaims
	token, err := s.parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	if claims.SubjectID == nil {
		return nil, errors.New("missing id claim")
	}
	if claims.Roles == nil {
		return nil, errors.New("missing roles claim")
	}

	return &domain.Identity{
		SubjectID: *claims.SubjectID,
		Roles:     domain.ParseRoles(*claims.Roles),
	}, nil
}
