package token_adapter

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

const secret = "test-secret-key"

func TestNewTokenVerifier_EmptyKey(t *testing.T) {
	_, err := NewTokenVerifier("")
	assert.Error(t, err)
}

func TestVerify_IssuedToken(t *testing.T) {
	v, err := NewTokenVerifier(secret)
	require.NoError(t, err)
	user := uuid.New()

	token, err := v.IssueToken(user, "agent@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user, claims.UserID)
	assert.Equal(t, "agent@example.com", claims.Email)
}

func TestVerify_UserIDClaimWins(t *testing.T) {
	v, _ := NewTokenVerifier(secret)
	user := uuid.New()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.String(),
		"sub":     "not-a-uuid",
		"exp":     time.Now().Add(time.Minute).Unix(),
	})
	token, err := raw.SignedString([]byte(secret))
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user, claims.UserID)
}

func TestVerify_Rejects(t *testing.T) {
	v, _ := NewTokenVerifier(secret)
	other, _ := NewTokenVerifier("another-secret")
	user := uuid.New()

	expired, err := v.IssueToken(user, "", -time.Minute)
	require.NoError(t, err)
	foreign, err := other.IssueToken(user, "", time.Hour)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": user.String()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "agent-42"}).
		SignedString([]byte(secret))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":     expired,
		"foreign key": foreign,
		"alg none":    noneAlg,
		"bad subject": badSubject,
		"garbage":     "abc.def.ghi",
	} {
		_, err := v.Verify(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, name)
	}
}
