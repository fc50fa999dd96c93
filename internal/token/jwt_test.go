package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestJWT(secret string) *JWT {
	j := NewJWT(secret, 15*time.Minute, 24*time.Hour)
	j.now = func() time.Time { return issuedAt }
	return j
}

func TestJWT_RoundTrip(t *testing.T) {
	j := newTestJWT("secret")
	userID := uuid.New()

	access, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)
	got, err := j.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	refresh, jti, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)
	gotUser, gotJTI, err := j.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, jti, gotJTI)

	_, otherJTI, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)
	assert.NotEqual(t, jti, otherJTI)
}

func TestJWT_Rejects(t *testing.T) {
	userID := uuid.New()
	j := newTestJWT("secret")

	access, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)
	refresh, _, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)
	foreign, err := newTestJWT("other").GenerateAccessToken(userID)
	require.NoError(t, err)
	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    Issuer,
		Subject:   userID.String(),
		Audience:  jwt.ClaimStrings{audienceAccess},
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:   Issuer,
		Subject:  userID.String(),
		Audience: jwt.ClaimStrings{audienceAccess},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		parse func() error
	}{
		{"refresh used as access", func() error { _, err := j.ParseAccessToken(refresh); return err }},
		{"access used as refresh", func() error { _, _, err := j.ParseRefreshToken(access); return err }},
		{"wrong secret", func() error { _, err := j.ParseAccessToken(foreign); return err }},
		{"none algorithm", func() error { _, err := j.ParseAccessToken(noneAlg); return err }},
		{"missing expiry", func() error { _, err := j.ParseAccessToken(noExpiry); return err }},
		{"garbage", func() error { _, err := j.ParseAccessToken("not-a-token"); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.parse())
		})
	}
}

func TestJWT_Expiry(t *testing.T) {
	j := newTestJWT("secret")
	userID := uuid.New()

	access, err := j.GenerateAccessToken(userID)
	require.NoError(t, err)
	refresh, _, err := j.GenerateRefreshToken(userID)
	require.NoError(t, err)

	j.now = func() time.Time { return issuedAt.Add(time.Hour) }
	_, err = j.ParseAccessToken(access)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	_, _, err = j.ParseRefreshToken(refresh)
	assert.NoError(t, err)
}
