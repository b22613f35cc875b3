//go:build unit

package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	s := NewService("secret", time.Hour)
	userID, shopID := uuid.New(), uuid.New()

	token, err := s.GenerateToken(userID, shopID, RoleBarber)
	require.NoError(t, err)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, shopID, claims.ShopID)
	assert.Equal(t, RoleBarber, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	s := NewService("secret", time.Hour)
	shopID := uuid.New()

	expired, err := NewService("secret", -time.Minute).GenerateToken(uuid.New(), shopID, RoleOwner)
	require.NoError(t, err)

	foreign, err := NewService("another", time.Hour).GenerateToken(uuid.New(), shopID, RoleOwner)
	require.NoError(t, err)

	noShop, err := s.GenerateToken(uuid.New(), uuid.Nil, RoleOwner)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ShopID: shopID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"expired", expired, ErrExpiredToken},
		{"wrong secret", foreign, ErrInvalidToken},
		{"missing shop", noShop, ErrInvalidToken},
		{"alg none", unsigned, ErrInvalidToken},
		{"malformed", "abc.def", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
