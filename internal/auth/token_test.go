package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectToken(t *testing.T) {
	t.Run("jwt claims are decoded", func(t *testing.T) {
		issued := time.Now().Add(-time.Minute).Truncate(time.Second)
		expires := issued.Add(15 * time.Minute)

		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "devmarket-api",
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expires),
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		info, err := InspectToken(signed)
		require.NoError(t, err)
		assert.Equal(t, "HS256", info.Algorithm)
		assert.Equal(t, "42", info.Subject)
		assert.Equal(t, "devmarket-api", info.Issuer)
		assert.True(t, info.IssuedAt.Equal(issued))
		assert.True(t, info.ExpiresAt.Equal(expires))
		assert.False(t, info.Expired(issued))
		assert.True(t, info.Expired(expires.Add(time.Second)))
	})

	t.Run("opaque token", func(t *testing.T) {
		_, err := InspectToken("tok")
		require.ErrorIs(t, err, ErrOpaqueToken)
	})
}
