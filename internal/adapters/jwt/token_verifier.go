package token_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

const issuer = "crm-immobiliaria"

// TokenVerifier проверяет access-токены HS256.
// Владелец берется из claim user_id, а при его отсутствии из sub.
type TokenVerifier struct {
	signingKey []byte
}

func NewTokenVerifier(signingKey string) (*TokenVerifier, error) {
	if signingKey == "" {
		return nil, fmt.Errorf("JWT signing key cannot be empty")
	}
	return &TokenVerifier{signingKey: []byte(signingKey)}, nil
}

var _ port.TokenVerifierPort = (*TokenVerifier)(nil)

type jwtCustomClaims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// IssueToken выпускает токен для локальной разработки и CLI.
func (v *TokenVerifier) IssueToken(userID uuid.UUID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwtCustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (v *TokenVerifier) Verify(ctx context.Context, tokenString string) (*domain.Claims, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "TokenVerifier",
		"method":    "Verify",
	})

	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Warn("Token has expired", nil)
		} else {
			logger.Warn("Invalid token format or signature", port.Fields{"error": err.Error()})
		}
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid {
		logger.Error("Token was parsed without error, but claims type assertion failed", nil, nil)
		return nil, domain.ErrTokenInvalid
	}

	rawID := claims.UserID
	if rawID == "" {
		rawID = claims.Subject
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		logger.Warn("Token subject is not a UUID", port.Fields{"subject": rawID})
		return nil, domain.ErrTokenInvalid
	}

	logger.Debug("Token validated successfully", port.Fields{"user_id": userID.String()})
	return &domain.Claims{UserID: userID, Email: claims.Email}, nil
}
