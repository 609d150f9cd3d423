package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfcordova/dictator-arena/pkg/token"
)

func TestGenerateAndValidate(t *testing.T) {
	jwt, err := token.GenerateJWT(42, "Dictator", "secret", 1)
	require.NoError(t, err)

	claims, err := token.ValidateJWT(jwt, "secret")
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "Dictator", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	jwt, err := token.GenerateJWT(42, "Dictator", "secret", 1)
	require.NoError(t, err)

	_, err = token.ValidateJWT(jwt, "other")
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	jwt, err := token.GenerateJWT(42, "Dictator", "secret", -1)
	require.NoError(t, err)

	_, err = token.ValidateJWT(jwt, "secret")
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := token.ValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}
