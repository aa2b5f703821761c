package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "company-system/pkg/errors"
)

func newTestJWTService(accessTTL, refreshTTL time.Duration) JWTService {
	return NewJWTService("test-secret", accessTTL, refreshTTL, zap.NewNop())
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Minute, time.Hour)

	access, refresh, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.False(t, accessClaims.IsRefreshToken)

	userID, err := accessClaims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestJWTService_SubjectIsString(t *testing.T) {
	svc := newTestJWTService(time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-time.Minute, time.Hour)

	access, _, err := svc.GenerateTokens(1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_InvalidSignature(t *testing.T) {
	svc := newTestJWTService(time.Minute, time.Hour)
	other := NewJWTService("another-secret", time.Minute, time.Hour, zap.NewNop())

	access, _, err := other.GenerateTokens(1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService(time.Minute, time.Hour)

	_, err := svc.ValidateToken("definitely.not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJwtCustomClaim_UserID(t *testing.T) {
	t.Run("missing subject", func(t *testing.T) {
		claims := &JwtCustomClaim{}
		_, err := claims.UserID()
		assert.ErrorIs(t, err, apperrors.ErrTokenSubjectMissing)
	})

	t.Run("non-numeric subject", func(t *testing.T) {
		claims := &JwtCustomClaim{}
		claims.Subject = "abc"
		_, err := claims.UserID()
		assert.ErrorIs(t, err, apperrors.ErrTokenSubjectInvalid)
	})
}
