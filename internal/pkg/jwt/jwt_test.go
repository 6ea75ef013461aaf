//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"roombook/internal/domain/user"
	"roombook/internal/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := jwt.NewService("test-secret", 2*time.Hour)

	token, err := svc.GenerateToken("user-demo-001", "demo@company.com", user.RoleEmployee)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-demo-001", claims.UserID)
	assert.Equal(t, "demo@company.com", claims.Email)
	assert.Equal(t, user.RoleEmployee.String(), claims.Role)
}

func TestValidateTokenErrors(t *testing.T) {
	svc := jwt.NewService("test-secret", 2*time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", 2*time.Hour)
		token, err := other.GenerateToken("user-demo-001", "demo@company.com", user.RoleEmployee)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken("user-demo-001", "demo@company.com", user.RoleEmployee)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})
}
