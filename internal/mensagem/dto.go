package mensagem

import (
	"errors"
	"time"

	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

// MensagemDTO expõe a mensagem junto do prazo resolvido e da sua origem, para
// que a interface nunca confunda um prazo inferido do texto com um campo
// preenchido de fato.
type MensagemDTO struct {
	ID          uint      `json:"id"`
	PropostaID  uint      `json:"propostaId"`
	RemetenteID uint      `json:"remetenteId"`
	Parte       string    `json:"parte"`
	CreatedAt   time.Time `json:"createdAt"`

	Texto                string           `json:"texto"`
	ValorContraproposta  *float64         `json:"valorContraproposta,omitempty"`
	PrazoContraproposta  *pagamento.Prazo `json:"prazoContraproposta,omitempty"`
	TermosContraproposta string           `json:"termosContraproposta,omitempty"`

	PrazoResolvido   *pagamento.Prazo `json:"prazoResolvido,omitempty"`
	OrigemPrazo      string           `json:"origemPrazo,omitempty"` // "campo" | "texto"
	PrazoConflitante bool             `json:"prazoConflitante,omitempty"`
}

func ToDTO(m Mensagem) MensagemDTO {
	out := MensagemDTO{
		ID:                   m.ID,
		PropostaID:           m.PropostaID,
		RemetenteID:          m.RemetenteID,
		Parte:                m.Parte,
		CreatedAt:            m.CreatedAt,
		Texto:                m.Texto,
		ValorContraproposta:  m.ValorContraproposta,
		PrazoContraproposta:  m.PrazoContraproposta,
		TermosContraproposta: m.TermosContraproposta,
	}

	if !m.TemContraproposta() {
		return out
	}

	prazo, origem, err := pagamento.ResolverPrazo(m.PrazoContraproposta, m.TextoDeTermos())
	if errors.Is(err, pagamento.ErrPrazoConflitante) {
		out.PrazoConflitante = true
		return out
	}
	if prazo != nil {
		out.PrazoResolvido = prazo
		out.OrigemPrazo = string(origem)
	}
	return out
}

func ToDTOs(lista []Mensagem) []MensagemDTO {
	out := make([]MensagemDTO, 0, len(lista))
	for _, m := range lista {
		out = append(out, ToDTO(m))
	}
	return out
}
