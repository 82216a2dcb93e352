package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, "festflow")

	token, err := m.GenerateToken(42)
	require.NoError(t, err)

	userID, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestManager_GenerateToken_ZeroUser(t *testing.T) {
	_, err := NewManager("secret", time.Hour, "festflow").GenerateToken(0)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_VerifyToken(t *testing.T) {
	m := NewManager("secret", time.Hour, "festflow")
	valid, err := m.GenerateToken(7)
	require.NoError(t, err)

	expiredManager := NewManager("secret", time.Hour, "festflow")
	expiredManager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredManager.GenerateToken(7)
	require.NoError(t, err)

	otherKey, err := NewManager("other-secret", time.Hour, "festflow").GenerateToken(7)
	require.NoError(t, err)

	otherIssuer, err := NewManager("secret", time.Hour, "someone-else").GenerateToken(7)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "festflow"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "festflow",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid", token: valid},
		{name: "empty", token: "  ", wantErr: ErrMissingToken},
		{name: "malformed", token: "not.a.jwt", wantErr: ErrInvalidToken},
		{name: "expired", token: expired, wantErr: ErrExpiredToken},
		{name: "wrong key", token: otherKey, wantErr: ErrInvalidToken},
		{name: "wrong issuer", token: otherIssuer, wantErr: ErrInvalidToken},
		{name: "no expiry", token: noExpiry, wantErr: ErrInvalidToken},
		{name: "unexpected method", token: hs512, wantErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := m.VerifyToken(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, userID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(7), userID)
		})
	}
}

func TestTokenFromHeader(t *testing.T) {
	token, err := TokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = TokenFromHeader("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := TokenFromHeader(header)
		assert.ErrorIs(t, err, ErrMissingToken, header)
	}
}
