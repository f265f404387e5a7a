package pagamento

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDataVencimento(t *testing.T) {
	aceitaEm := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		prazo    Prazo
		esperado time.Time
	}{
		{
			name:     "immediate_vence_no_aceite",
			prazo:    PrazoImediato,
			esperado: aceitaEm,
		},
		{
			name:     "net30_vence_30_dias_depois",
			prazo:    PrazoNet30,
			esperado: aceitaEm.AddDate(0, 0, 30),
		},
		{
			name:     "net60_vence_60_dias_depois",
			prazo:    PrazoNet60,
			esperado: aceitaEm.AddDate(0, 0, 60),
		},
		{
			name:     "net90_vence_90_dias_depois",
			prazo:    PrazoNet90,
			esperado: aceitaEm.AddDate(0, 0, 90),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.esperado, DataVencimento(tc.prazo, aceitaEm))
			// função pura: chamadas repetidas dão o mesmo resultado
			assert.Equal(t, DataVencimento(tc.prazo, aceitaEm), DataVencimento(tc.prazo, aceitaEm))
		})
	}
}

func TestDataVencimentoNet30Exato(t *testing.T) {
	aceitaEm := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30*24*time.Hour, DataVencimento(PrazoNet30, aceitaEm).Sub(aceitaEm))
}

func TestEmAtraso(t *testing.T) {
	aceitaEm := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	vencimento := DataVencimento(PrazoNet30, aceitaEm)

	assert.False(t, EmAtraso(PrazoNet30, aceitaEm, vencimento))
	assert.False(t, EmAtraso(PrazoNet30, aceitaEm, vencimento.Add(-time.Minute)))
	assert.True(t, EmAtraso(PrazoNet30, aceitaEm, vencimento.Add(time.Minute)))
}
