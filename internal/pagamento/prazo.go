package pagamento

import "errors"

// Prazo é a condição de pagamento negociada em uma proposta. Os valores
// seguem a nomenclatura do sistema de cobrança ("immediate", "net30"...).
type Prazo string

const (
	PrazoImediato Prazo = "immediate"
	PrazoNet30    Prazo = "net30"
	PrazoNet60    Prazo = "net60"
	PrazoNet90    Prazo = "net90"
)

// ErrPrazoInvalido indica um valor fora do conjunto aceito.
var ErrPrazoInvalido = errors.New("prazo de pagamento inválido")

// PrazoValido verifica se o valor pertence ao conjunto aceito.
func PrazoValido(p Prazo) bool {
	switch p {
	case PrazoImediato, PrazoNet30, PrazoNet60, PrazoNet90:
		return true
	}
	return false
}

// Dias retorna a quantidade de dias entre o aceite e o vencimento.
func (p Prazo) Dias() int {
	switch p {
	case PrazoNet30:
		return 30
	case PrazoNet60:
		return 60
	case PrazoNet90:
		return 90
	default:
		return 0
	}
}
