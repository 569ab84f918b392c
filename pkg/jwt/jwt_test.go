package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := Generate("secreto", "u-1", RoleEditor, "catalog-api", 5)
	require.NoError(t, err)

	userID, role, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, RoleEditor, role)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate("secreto", "u-1", RoleAdmin, "catalog-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := Generate("secreto", "u-1", RoleAdmin, "catalog-api", -1)
	require.NoError(t, err)

	_, _, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "u-1", RoleAdmin, "catalog-api", 5)
	assert.Error(t, err)
}
