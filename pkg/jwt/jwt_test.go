package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate("secreto", "user-1", "cocinero", "buen-sabor", 5)
	require.NoError(t, err)

	userID, role, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "cocinero", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("secreto", "user-1", "cliente", "buen-sabor", 5)
	require.NoError(t, err)
	_, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("secreto", "user-1", "cliente", "buen-sabor", -1)
	require.NoError(t, err)
	_, _, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_SinSecret(t *testing.T) {
	_, err := Generate("", "user-1", "cliente", "", 5)
	assert.Error(t, err)
}
