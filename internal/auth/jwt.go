package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	ContaID uint   `json:"contaId"`
	Tipo    string `json:"tipo"` // "cliente" | "produtor"
	jwt.RegisteredClaims
}

func chaveJWT() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return []byte(secret), nil
}

// GerarToken gera um JWT HS256 com validade de 24h
func GerarToken(contaID uint, tipo string) (string, error) {
	chave, err := chaveJWT()
	if err != nil {
		return "", err
	}
	claims := &Claims{
		ContaID: contaID,
		Tipo:    tipo,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(contaID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(chave)
}

// ValidarToken valida o token e retorna as claims
func ValidarToken(tokenStr string) (*Claims, error) {
	chave, err := chaveJWT()
	if err != nil {
		return nil, err
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return chave, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("token inválido ou expirado: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("não foi possível extrair claims")
	}
	return claims, nil
}
