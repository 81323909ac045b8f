package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "future expiry", raw: "", want: true},
		{name: "past expiry", raw: "", want: false},
		{name: "empty", raw: "", want: false},
		{name: "garbage", raw: "not-a-jwt", want: false},
		{name: "two segments", raw: "abc.def", want: false},
	}
	tests[0].raw = signedToken(t, time.Now().Add(time.Hour))
	tests[1].raw = signedToken(t, time.Now().Add(-time.Hour))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.raw))
		})
	}
}

func TestValidNoExpiryClaim(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	raw, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	assert.False(t, Valid(raw))
	_, err = ExpiresAt(raw)
	assert.Error(t, err)
}

func TestExpiresAt(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	got, err := ExpiresAt(signedToken(t, exp))
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))
}
