package jwt

import (
	"testing"
	"time"

	"github.com/frontandrew/workshop/internal/domain"
	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()

	claims := jwtlib.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwtlib.NewNumericDate(expiresAt),
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

// TestInspect тестирует разбор токена без проверки подписи
func TestInspect(t *testing.T) {
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("успешный разбор", func(t *testing.T) {
		claims, err := Inspect(signedToken(t, "admin@workshop.ie", expiresAt))

		assert.NoError(t, err)
		assert.Equal(t, "admin@workshop.ie", claims.Subject)
		assert.True(t, claims.ExpiresAt.Equal(expiresAt))
	})

	t.Run("мусор вместо токена", func(t *testing.T) {
		claims, err := Inspect("not-a-jwt")

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("токен без exp", func(t *testing.T) {
		token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.RegisteredClaims{
			Subject: "admin@workshop.ie",
		}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		claims, err := Inspect(token)

		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}

// TestExpired тестирует проверку срока жизни токена
func TestExpired(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{
			name:  "живой токен",
			token: signedToken(t, "admin@workshop.ie", now.Add(time.Hour)),
			want:  false,
		},
		{
			name:  "истёкший токен",
			token: signedToken(t, "admin@workshop.ie", now.Add(-time.Hour)),
			want:  true,
		},
		{
			name:  "нечитаемый токен считается истёкшим",
			token: "garbage",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expired(tt.token, now))
		})
	}
}
