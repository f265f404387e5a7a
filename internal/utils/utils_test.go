package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEVerificarSenha(t *testing.T) {
	hash, err := HashSenha("senha-forte")
	require.NoError(t, err)
	assert.NotEqual(t, "senha-forte", hash)

	assert.True(t, VerificarSenha(hash, "senha-forte"))
	assert.False(t, VerificarSenha(hash, "senha-errada"))
}

func TestGerarSenhaTemporaria(t *testing.T) {
	senha, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	assert.Len(t, senha, tamanhoSenhaProvisoria)
	for _, c := range senha {
		assert.True(t, strings.ContainsRune(alfabetoSenhaProvisoria, c))
	}

	outra, err := GerarSenhaTemporaria()
	require.NoError(t, err)
	assert.NotEqual(t, senha, outra)
}
