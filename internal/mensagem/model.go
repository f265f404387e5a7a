package mensagem

import (
	"strings"
	"time"

	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

// Mensagem é uma entrada do log de negociação de uma proposta. Imutável após
// criada; a ordenação é por data de criação, com desempate pelo ID.
type Mensagem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	PropostaID  uint   `gorm:"not null;index" json:"propostaId"`
	RemetenteID uint   `gorm:"not null" json:"remetenteId"`
	Parte       string `gorm:"size:10;not null" json:"parte"` // "cliente" | "produtor"

	Texto string `gorm:"type:text" json:"texto"`

	// Contraproposta (todos opcionais). Inserir a mensagem nunca mexe na
	// proposta; quem muda status é a máquina de estados, em ações explícitas
	// de aceite ou recusa.
	ValorContraproposta  *float64         `json:"valorContraproposta,omitempty"`
	PrazoContraproposta  *pagamento.Prazo `gorm:"size:20" json:"prazoContraproposta,omitempty"`
	TermosContraproposta string           `gorm:"type:text" json:"termosContraproposta,omitempty"`
}

// TemContraproposta informa se a mensagem carrega alguma revisão de termos.
func (m *Mensagem) TemContraproposta() bool {
	return m.ValorContraproposta != nil ||
		m.PrazoContraproposta != nil ||
		strings.TrimSpace(m.TermosContraproposta) != ""
}

// TextoDeTermos é o texto usado pelo resolvedor de prazo: o campo de termos
// da contraproposta quando preenchido, senão o corpo da mensagem.
func (m *Mensagem) TextoDeTermos() string {
	if strings.TrimSpace(m.TermosContraproposta) != "" {
		return m.TermosContraproposta
	}
	return m.Texto
}
