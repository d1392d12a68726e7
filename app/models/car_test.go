package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestCarValidateRequiresTitle(t *testing.T) {
	car := Car{Description: "no title", Year: 2018}
	assert.Error(t, car.Validate())

	car.Title = "Civic"
	assert.NoError(t, car.Validate())
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("oauth_1234567890")
	require.NoError(t, err)
	assert.NotEqual(t, "oauth_1234567890", hash)

	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("oauth_1234567890")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}
