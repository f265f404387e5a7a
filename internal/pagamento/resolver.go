package pagamento

import (
	"errors"
	"strings"
)

// Origem indica de onde veio um prazo resolvido.
type Origem string

const (
	// OrigemCampo: o prazo veio do campo estruturado da contraproposta.
	OrigemCampo Origem = "campo"
	// OrigemTexto: o prazo foi inferido do texto livre. Heurístico; a camada
	// de apresentação deve sinalizar isso ao usuário, nunca tratar como se
	// fosse um campo preenchido.
	OrigemTexto Origem = "texto"
)

// ErrPrazoConflitante indica que o texto livre menciona prazos diferentes.
// Nesse caso ninguém adivinha: a parte que aceita precisa confirmar o prazo
// explicitamente.
var ErrPrazoConflitante = errors.New("texto menciona prazos de pagamento conflitantes")

// Ordem de verificação dos tokens; a primeira ocorrência vence.
var tokensPrazo = []struct {
	prazo  Prazo
	termos []string
}{
	{PrazoNet30, []string{"net30", "net 30"}},
	{PrazoNet60, []string{"net60", "net 60"}},
	{PrazoNet90, []string{"net90", "net 90"}},
	{PrazoImediato, []string{"immediate"}},
}

// ResolverPrazo determina o prazo efetivo de uma mensagem de negociação.
// Prioridade: o campo estruturado, se presente; senão, varredura
// case-insensitive do texto livre. Retorno nil sem erro significa que nenhum
// prazo foi identificado.
func ResolverPrazo(estruturado *Prazo, texto string) (*Prazo, Origem, error) {
	if estruturado != nil {
		p := *estruturado
		return &p, OrigemCampo, nil
	}

	t := strings.ToLower(texto)
	var achado *Prazo
	for _, tok := range tokensPrazo {
		for _, termo := range tok.termos {
			if !strings.Contains(t, termo) {
				continue
			}
			if achado != nil && *achado != tok.prazo {
				return nil, "", ErrPrazoConflitante
			}
			p := tok.prazo
			achado = &p
			break
		}
	}
	if achado == nil {
		return nil, "", nil
	}
	return achado, OrigemTexto, nil
}
