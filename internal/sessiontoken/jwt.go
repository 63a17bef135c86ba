// Package sessiontoken issues and validates the bearer tokens that bind an
// API caller to one form session.
package sessiontoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "intake/pkg/domain-errors"
)

// Claims carries the form session identity inside the signed token.
type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Service signs and validates HS256 session tokens.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

func New(signingKey string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     "intake",
		ttl:        ttl,
	}
}

// Generate issues a token for the given form session.
func (s *Service) Generate(sessionID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// Validate parses the token and returns the session it was issued for.
func (s *Service) Validate(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, dErrors.New(dErrors.CodeInvalidState, "session token expired")
		}
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid session token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid session token")
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "malformed session id in token")
	}
	return sessionID, nil
}
