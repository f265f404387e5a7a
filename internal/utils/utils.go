package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Senhas provisórias são enviadas por e-mail e digitadas à mão no primeiro
// login, então o alfabeto evita pares confundíveis (0/O, 1/l/I).
const (
	tamanhoSenhaProvisoria  = 14
	alfabetoSenhaProvisoria = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// HashSenha gera o hash bcrypt da senha da conta.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// VerificarSenha compara a senha em texto puro com o hash armazenado.
func VerificarSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// GerarSenhaTemporaria sorteia a senha provisória de contas criadas sem senha;
// a conta fica marcada para redefinição no primeiro login.
func GerarSenhaTemporaria() (string, error) {
	senha := make([]byte, tamanhoSenhaProvisoria)
	max := big.NewInt(int64(len(alfabetoSenhaProvisoria)))
	for i := range senha {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		senha[i] = alfabetoSenhaProvisoria[n.Int64()]
	}
	return string(senha), nil
}
