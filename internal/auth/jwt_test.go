package auth

import (
	"testing"
	"time"

	"github.com/fekuna/omnipos-portal/internal/apperror"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)

	raw, expiresAt, err := tm.Issue(Identity{Subject: "client-1", Role: RoleClient})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	id, err := tm.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, Identity{Subject: "client-1", Role: RoleClient}, id)
}

func TestVerifyRejects(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	valid, _, err := tm.Issue(Identity{Subject: "client-1", Role: RoleClient})
	require.NoError(t, err)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.Issue(Identity{Subject: "client-1", Role: RoleClient})
	require.NoError(t, err)

	other, _, err := NewTokenManager("other", time.Hour).Issue(Identity{Subject: "client-1", Role: RoleClient})
	require.NoError(t, err)

	noRole, _, err := tm.Issue(Identity{Subject: "client-1", Role: "root"})
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", stale},
		{"wrong secret", other},
		{"unknown role", noRole},
		{"alg none", unsigned},
		{"tampered", valid + "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tm.Verify(tt.token)
			assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		})
	}
}
