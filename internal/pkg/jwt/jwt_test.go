package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workholic/workholic-go/internal/domain/user"
)

func TestJWTService_GenerateAndParse(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(user.User{
		Email:    "priya@workholic.in",
		Name:     "Priya",
		Role:     user.RoleEmployee,
		Schedule: "srushti",
	})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "priya@workholic.in", claims.Email)
	assert.Equal(t, "Priya", claims.Name)
	assert.Equal(t, user.RoleEmployee, claims.Role)
	assert.Equal(t, "srushti", claims.Schedule)
	assert.Equal(t, expiresAt, claims.ExpiresAt)
	assert.NotEmpty(t, claims.TokenID)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("secret-a", "1h")
	verifier := NewJWTService("secret-b", "1h")

	token, _, err := issuer.GenerateAccessToken(user.User{Email: "a@workholic.in", Role: user.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("secret", "soon")
	_, _, err := svc.GenerateAccessToken(user.User{Email: "a@workholic.in"})
	assert.Error(t, err)
}

func TestJWTService_RevokePrunesExpired(t *testing.T) {
	svc := NewJWTService("secret", "1h")
	now := time.Date(2024, 6, 4, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("old", now.Add(-time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("old"))

	svc.RevokeToken("new", now.Add(time.Hour).Unix())
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("new"))
}
