package historico

import "time"

// Autores possíveis de uma entrada de histórico.
const (
	AutorCliente  = "cliente"
	AutorProdutor = "produtor"
	AutorSistema  = "sistema"
)

// Registro é uma entrada imutável de auditoria: toda mudança do status geral
// de uma proposta gera uma.
type Registro struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PropostaID     uint   `gorm:"not null;index" json:"propostaId"`
	StatusAnterior string `gorm:"size:30;not null" json:"statusAnterior"`
	StatusNovo     string `gorm:"size:30;not null" json:"statusNovo"`
	Autor          string `gorm:"size:30;not null" json:"autor"`
}
