package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarEValidarToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")

	token, err := GerarToken(42, "produtor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ContaID)
	assert.Equal(t, "produtor", claims.Tipo)
	assert.Equal(t, "42", claims.Subject)
}

func TestValidarTokenAdulterado(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	token, err := GerarToken(42, "cliente")
	require.NoError(t, err)

	_, err = ValidarToken(token + "x")
	assert.Error(t, err)
}

func TestValidarTokenComOutraChave(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo-de-teste")
	token, err := GerarToken(42, "cliente")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "outro-segredo")
	_, err = ValidarToken(token)
	assert.Error(t, err)
}

func TestSemSegredoConfigurado(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := GerarToken(1, "cliente")
	assert.Error(t, err)
}
