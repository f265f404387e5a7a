package conta

import "gorm.io/gorm"

// Tipos de conta: os dois lados de uma negociação.
const (
	TipoCliente  = "cliente"
	TipoProdutor = "produtor"
)

// Conta representa um cliente (licenciante) ou um produtor (detentor dos
// direitos) da plataforma.
type Conta struct {
	gorm.Model
	Nome                  string `json:"nome"`
	Email                 string `json:"email" gorm:"unique"`
	Tipo                  string `json:"tipo" gorm:"size:20;not null;index"`
	Senha                 string `json:"-"`
	PrecisaRedefinirSenha bool   `json:"-"`
}
