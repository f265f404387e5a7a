package proposta

import "errors"

// Erros de domínio da máquina de estados. Sempre retornados tipados para o
// chamador tratar cada desfecho; nenhum é engolido com default silencioso.
var (
	// ErrNaoESuaVez: a negociação aguarda a outra parte.
	ErrNaoESuaVez = errors.New("ação aguarda a outra parte")
	// ErrJaFinalizada: a proposta está em estado terminal.
	ErrJaFinalizada = errors.New("proposta já finalizada")
	// ErrModificacaoConcorrente: outra requisição alterou a proposta no meio
	// do caminho; o chamador deve recarregar e tentar de novo.
	ErrModificacaoConcorrente = errors.New("proposta modificada concorrentemente")
	// ErrPrazoAmbiguo: o prazo só pôde ser inferido do texto livre e de forma
	// ambígua; o aceite precisa vir com o prazo confirmado explicitamente.
	ErrPrazoAmbiguo = errors.New("prazo de pagamento ambíguo; confirme o prazo no aceite")
	// ErrParteInvalida: a conta não participa desta proposta.
	ErrParteInvalida = errors.New("conta não participa desta proposta")
	// ErrPagamentoIndevido: a proposta não tem obrigação de pagamento aberta.
	ErrPagamentoIndevido = errors.New("proposta sem obrigação de pagamento pendente")
)
