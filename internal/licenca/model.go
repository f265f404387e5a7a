package licenca

import (
	"time"

	"gorm.io/gorm"

	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

// Licenca é o registro da licença de sincronização emitido quando uma
// proposta converge. Uma por proposta, emitida uma única vez.
type Licenca struct {
	gorm.Model

	PropostaID uint `gorm:"not null;uniqueIndex" json:"propostaId"`
	FaixaID    uint `gorm:"not null;index" json:"faixaId"`
	ClienteID  uint `gorm:"not null;index" json:"clienteId"`
	ProdutorID uint `gorm:"not null;index" json:"produtorId"`

	// URL do documento gerado pelo serviço externo de PDF; preenchida depois
	// da emissão.
	URL string `json:"url"`

	Valor       float64         `gorm:"not null" json:"valor"`
	Prazo       pagamento.Prazo `gorm:"size:20;not null" json:"prazo"`
	DataEmissao time.Time       `json:"dataEmissao"`
}
