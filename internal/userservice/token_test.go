package userservice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testTokenService(secret string, ttl time.Duration) *UserService {
	return &UserService{secret: []byte(secret), tokenTTL: ttl}
}

func TestTokenRoundTrip(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	token, err := s.NewToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := s.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, id)
}

func TestVerifyTokenExpired(t *testing.T) {
	s := testTokenService("test-secret", -time.Minute)

	token, err := s.NewToken(42)
	assert.NoError(t, err)

	_, err = s.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	token, err := s.NewToken(42)
	assert.NoError(t, err)

	other := testTokenService("another-secret", time.Hour)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	s := testTokenService("test-secret", time.Hour)

	testCases := []string{
		"",
		"not-a-token",
		"aaaa.bbbb.cccc",
	}

	for _, tc := range testCases {
		_, err := s.VerifyToken(tc)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
