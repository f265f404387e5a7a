package pagamento

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func prazoPtr(p Prazo) *Prazo {
	return &p
}

func TestResolverPrazo(t *testing.T) {
	testCases := []struct {
		name        string
		estruturado *Prazo
		texto       string
		esperado    *Prazo
		origem      Origem
		erro        error
	}{
		{
			name:        "campo_estruturado_vence_o_texto",
			estruturado: prazoPtr(PrazoNet60),
			texto:       "pagamento immediate na assinatura",
			esperado:    prazoPtr(PrazoNet60),
			origem:      OrigemCampo,
		},
		{
			name:     "token_colado",
			texto:    "fechamos por 450 com net30",
			esperado: prazoPtr(PrazoNet30),
			origem:   OrigemTexto,
		},
		{
			name:     "token_com_espaco",
			texto:    "topo, mas só com net 60",
			esperado: prazoPtr(PrazoNet60),
			origem:   OrigemTexto,
		},
		{
			name:     "caixa_alta",
			texto:    "Condição: NET 90 após emissão",
			esperado: prazoPtr(PrazoNet90),
			origem:   OrigemTexto,
		},
		{
			name:     "immediate_no_texto",
			texto:    "só fecho com pagamento immediate",
			esperado: prazoPtr(PrazoImediato),
			origem:   OrigemTexto,
		},
		{
			name:     "mesmo_prazo_duas_grafias_nao_conflita",
			texto:    "net30 mesmo, confirmando net 30",
			esperado: prazoPtr(PrazoNet30),
			origem:   OrigemTexto,
		},
		{
			name:  "prazos_diferentes_conflitam",
			texto: "pode ser net30 ou immediate, você escolhe",
			erro:  ErrPrazoConflitante,
		},
		{
			name:  "net30_e_net60_conflitam",
			texto: "net 30 se for à vista o resto, senão net60",
			erro:  ErrPrazoConflitante,
		},
		{
			name:  "sem_mencao_de_prazo",
			texto: "consigo fechar por 450, me avisa",
		},
		{
			name:  "texto_vazio",
			texto: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prazo, origem, err := ResolverPrazo(tc.estruturado, tc.texto)
			if tc.erro != nil {
				assert.ErrorIs(t, err, tc.erro)
				assert.Nil(t, prazo)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.esperado, prazo)
			assert.Equal(t, tc.origem, origem)
		})
	}
}

func TestPrazoValido(t *testing.T) {
	assert.True(t, PrazoValido(PrazoImediato))
	assert.True(t, PrazoValido(PrazoNet30))
	assert.True(t, PrazoValido(PrazoNet60))
	assert.True(t, PrazoValido(PrazoNet90))
	assert.False(t, PrazoValido(Prazo("net45")))
	assert.False(t, PrazoValido(Prazo("")))
}
