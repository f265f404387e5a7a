package proposta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

func novaProposta() *Proposta {
	return &Proposta{
		ID:               1,
		ClienteID:        10,
		ProdutorID:       20,
		FaixaID:          7,
		ValorBase:        500,
		PrazoBase:        pagamento.PrazoImediato,
		StatusCliente:    ParteStatusPendente,
		StatusProdutor:   ParteStatusPendente,
		StatusNegociacao: NegociacaoNenhuma,
		StatusGeral:      StatusGeralPendente,
		StatusPagamento:  PagamentoNaoAplicavel,
		DataExpiracao:    time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestParteDa(t *testing.T) {
	p := novaProposta()

	parte, ok := p.ParteDa(10)
	assert.True(t, ok)
	assert.Equal(t, ParteCliente, parte)

	parte, ok = p.ParteDa(20)
	assert.True(t, ok)
	assert.Equal(t, ParteProdutor, parte)

	_, ok = p.ParteDa(99)
	assert.False(t, ok)
}

func TestContrapropostaPassaAVez(t *testing.T) {
	testCases := []struct {
		name      string
		remetente Parte
		esperado  string
	}{
		{"produtor_contrapropoe", ParteProdutor, NegociacaoAguardandoCliente},
		{"cliente_contrapropoe", ParteCliente, NegociacaoAguardandoProdutor},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := novaProposta()
			require.NoError(t, p.RegistrarContraproposta(tc.remetente))

			assert.Equal(t, tc.esperado, p.StatusNegociacao)
			if tc.remetente == ParteProdutor {
				assert.Equal(t, ParteStatusAceita, p.StatusProdutor)
				assert.Equal(t, ParteStatusPendente, p.StatusCliente)
				assert.Equal(t, StatusGeralAceitaPeloProdutor, p.StatusGeral)
			} else {
				assert.Equal(t, ParteStatusAceita, p.StatusCliente)
				assert.Equal(t, ParteStatusPendente, p.StatusProdutor)
				assert.Equal(t, StatusGeralPendente, p.StatusGeral)
			}
		})
	}
}

func TestContrapropostaInvalidaAceiteAnterior(t *testing.T) {
	p := novaProposta()
	require.NoError(t, p.Aceitar(ParteCliente))
	assert.Equal(t, ParteStatusAceita, p.StatusCliente)

	// o produtor contrapropõe novos termos; o aceite do cliente era sobre os
	// termos antigos e deixa de valer
	require.NoError(t, p.RegistrarContraproposta(ParteProdutor))
	assert.Equal(t, ParteStatusPendente, p.StatusCliente)
	assert.Equal(t, NegociacaoAguardandoCliente, p.StatusNegociacao)
	assert.False(t, p.Convergiu())
}

func TestAceitarForaDaVez(t *testing.T) {
	p := novaProposta()
	require.NoError(t, p.RegistrarContraproposta(ParteProdutor))

	err := p.Aceitar(ParteProdutor)
	assert.ErrorIs(t, err, ErrNaoESuaVez)

	assert.NoError(t, p.Aceitar(ParteCliente))
	assert.True(t, p.Convergiu())
}

func TestRecusarSempreDisponivel(t *testing.T) {
	testCases := []struct {
		name     string
		preparar func(p *Proposta)
		quem     Parte
	}{
		{"sem_negociacao", func(p *Proposta) {}, ParteCliente},
		{"aguardando_a_propria_resposta", func(p *Proposta) {
			require.NoError(t, p.RegistrarContraproposta(ParteProdutor))
		}, ParteCliente},
		{"apos_a_propria_contraproposta", func(p *Proposta) {
			require.NoError(t, p.RegistrarContraproposta(ParteProdutor))
		}, ParteProdutor},
		{"apos_aceite_da_outra_parte", func(p *Proposta) {
			require.NoError(t, p.Aceitar(ParteProdutor))
		}, ParteCliente},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := novaProposta()
			tc.preparar(p)

			require.NoError(t, p.Recusar(tc.quem))
			assert.Equal(t, StatusGeralRecusada, p.StatusGeral)
			assert.Equal(t, NegociacaoRecusada, p.StatusNegociacao)
			assert.True(t, p.Terminal())
		})
	}
}

func TestAcoesAposTerminal(t *testing.T) {
	p := novaProposta()
	require.NoError(t, p.Recusar(ParteProdutor))

	assert.ErrorIs(t, p.Aceitar(ParteCliente), ErrJaFinalizada)
	assert.ErrorIs(t, p.Recusar(ParteCliente), ErrJaFinalizada)
	assert.ErrorIs(t, p.RegistrarContraproposta(ParteCliente), ErrJaFinalizada)
}

func TestFinalizarImutavel(t *testing.T) {
	agora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	p := novaProposta()
	require.NoError(t, p.Aceitar(ParteProdutor))
	require.NoError(t, p.Aceitar(ParteCliente))
	require.True(t, p.Convergiu())

	require.NoError(t, p.Finalizar(450, pagamento.PrazoNet30, agora))
	assert.Equal(t, 450.0, *p.ValorFinal)
	assert.Equal(t, pagamento.PrazoNet30, *p.PrazoFinal)
	assert.Equal(t, agora, *p.AceitaPeloClienteEm)
	assert.Equal(t, StatusGeralAceita, p.StatusGeral)
	assert.Equal(t, PagamentoPendente, p.StatusPagamento)
	assert.False(t, p.Convergiu())

	err := p.Finalizar(999, pagamento.PrazoNet90, agora.Add(time.Hour))
	assert.ErrorIs(t, err, ErrJaFinalizada)
	assert.Equal(t, 450.0, *p.ValorFinal)
	assert.Equal(t, pagamento.PrazoNet30, *p.PrazoFinal)
	assert.Equal(t, agora, *p.AceitaPeloClienteEm)
}

func TestDataVencimentoDerivada(t *testing.T) {
	agora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	p := novaProposta()
	assert.Nil(t, p.DataVencimentoPagamento())

	require.NoError(t, p.Aceitar(ParteProdutor))
	require.NoError(t, p.Aceitar(ParteCliente))
	require.NoError(t, p.Finalizar(450, pagamento.PrazoNet30, agora))

	venc := p.DataVencimentoPagamento()
	require.NotNil(t, venc)
	assert.Equal(t, agora.AddDate(0, 0, 30), *venc)

	assert.False(t, p.EmAtraso(venc.Add(-time.Hour)))
	assert.True(t, p.EmAtraso(venc.Add(time.Hour)))
}

func TestVerificarExpiracao(t *testing.T) {
	p := novaProposta()

	assert.False(t, p.VerificarExpiracao(p.DataExpiracao.Add(-time.Hour)))
	assert.Equal(t, StatusGeralPendente, p.StatusGeral)

	assert.True(t, p.VerificarExpiracao(p.DataExpiracao.Add(time.Hour)))
	assert.Equal(t, StatusGeralExpirada, p.StatusGeral)
	assert.True(t, p.Terminal())

	// idempotente: já expirou, nada muda
	assert.False(t, p.VerificarExpiracao(p.DataExpiracao.Add(2*time.Hour)))
}

func TestExpiracaoNaoAtingePropostaAceita(t *testing.T) {
	agora := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	p := novaProposta()
	require.NoError(t, p.Aceitar(ParteProdutor))
	require.NoError(t, p.Aceitar(ParteCliente))
	require.NoError(t, p.Finalizar(500, pagamento.PrazoImediato, agora))

	assert.False(t, p.VerificarExpiracao(p.DataExpiracao.Add(time.Hour)))
	assert.Equal(t, StatusGeralAceita, p.StatusGeral)
}
