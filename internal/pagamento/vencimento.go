package pagamento

import "time"

// DataVencimento calcula a data limite de pagamento a partir do prazo e do
// momento do aceite. Função pura, usada tanto na exibição quanto na detecção
// de atraso.
func DataVencimento(prazo Prazo, aceitaEm time.Time) time.Time {
	return aceitaEm.AddDate(0, 0, prazo.Dias())
}

// EmAtraso informa se o pagamento já passou do vencimento. O atraso é apenas
// sinalizado; nenhuma escalada automática acontece aqui.
func EmAtraso(prazo Prazo, aceitaEm, agora time.Time) bool {
	return agora.After(DataVencimento(prazo, aceitaEm))
}
