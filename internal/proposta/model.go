package proposta

import (
	"time"

	"gorm.io/gorm"

	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

// Status individuais de cada parte. Cada trilha só é mutada pela própria
// parte dona dela.
const (
	ParteStatusPendente = "Pendente"
	ParteStatusAceita   = "Aceita"
	ParteStatusRecusada = "Recusada"
)

// Status da trilha de negociação.
const (
	NegociacaoNenhuma            = "Nenhuma"
	NegociacaoAguardandoCliente  = "AguardandoCliente"
	NegociacaoAguardandoProdutor = "AguardandoProdutor"
	NegociacaoAceita             = "Aceita"
	NegociacaoRecusada           = "Recusada"
)

// Status geral: projeção derivada usada em listagem e filtragem.
const (
	StatusGeralPendente           = "Pendente"
	StatusGeralAceitaPeloProdutor = "AceitaPeloProdutor"
	StatusGeralAceita             = "Aceita"
	StatusGeralRecusada           = "Recusada"
	StatusGeralExpirada           = "Expirada"
)

// Status de pagamento.
const (
	PagamentoNaoAplicavel = "NaoAplicavel"
	PagamentoPendente     = "Pendente"
	PagamentoPago         = "Pago"
)

// Parte identifica qual dos dois lados da proposta está agindo.
type Parte string

const (
	ParteCliente  Parte = "cliente"
	ParteProdutor Parte = "produtor"
)

// Outra devolve o lado oposto.
func (p Parte) Outra() Parte {
	if p == ParteCliente {
		return ParteProdutor
	}
	return ParteCliente
}

// Proposta representa uma oferta de licença de sincronização em negociação
// entre um cliente e um produtor sobre uma faixa do catálogo.
type Proposta struct {
	ID        uint           `gorm:"primaryKey" json:"propostaId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`

	ClienteID  uint `gorm:"not null;index" json:"clienteId"`
	ProdutorID uint `gorm:"not null;index" json:"produtorId"`
	FaixaID    uint `gorm:"not null;index" json:"faixaId"`

	// Termos econômicos. ValorFinal/PrazoFinal só existem após a
	// convergência e nunca mudam depois de gravados.
	ValorBase      float64          `gorm:"not null" json:"valorBase"`
	ValorNegociado *float64         `json:"valorNegociado,omitempty"`
	ValorFinal     *float64         `json:"valorFinal,omitempty"`
	PrazoBase      pagamento.Prazo  `gorm:"size:20;not null;default:'immediate'" json:"prazoBase"`
	PrazoNegociado *pagamento.Prazo `gorm:"size:20" json:"prazoNegociado,omitempty"`
	PrazoFinal     *pagamento.Prazo `gorm:"size:20" json:"prazoFinal,omitempty"`

	StatusCliente    string `gorm:"size:20;not null;default:'Pendente'" json:"statusCliente"`
	StatusProdutor   string `gorm:"size:20;not null;default:'Pendente'" json:"statusProdutor"`
	StatusNegociacao string `gorm:"size:30;not null;default:'Nenhuma'" json:"statusNegociacao"`
	StatusGeral      string `gorm:"size:30;not null;default:'Pendente';index" json:"statusGeral"`
	StatusPagamento  string `gorm:"size:20;not null;default:'NaoAplicavel'" json:"statusPagamento"`

	// Âncora da janela de pagamento. Gravada uma única vez, no instante da
	// convergência; nunca sobrescrita.
	AceitaPeloClienteEm *time.Time `json:"aceitaPeloClienteEm,omitempty"`
	DataExpiracao       time.Time  `gorm:"not null" json:"dataExpiracao"`

	// Controle otimista de concorrência; incrementado a cada escrita.
	Versao int `gorm:"not null;default:0" json:"-"`
}

// ParteDa identifica o papel de uma conta nesta proposta.
func (p *Proposta) ParteDa(contaID uint) (Parte, bool) {
	switch contaID {
	case p.ClienteID:
		return ParteCliente, true
	case p.ProdutorID:
		return ParteProdutor, true
	}
	return "", false
}

// Terminal informa se a proposta não aceita mais ações das partes.
func (p *Proposta) Terminal() bool {
	switch p.StatusGeral {
	case StatusGeralAceita, StatusGeralRecusada, StatusGeralExpirada:
		return true
	}
	return false
}

// VerificarExpiracao aplica a expiração preguiçosa: passado o prazo limite em
// estado não terminal, o status geral vira Expirada. A trilha de negociação
// não é rejeitada retroativamente. Retorna true se o status geral mudou.
func (p *Proposta) VerificarExpiracao(agora time.Time) bool {
	if p.Terminal() {
		return false
	}
	if !agora.After(p.DataExpiracao) {
		return false
	}
	p.StatusGeral = StatusGeralExpirada
	return true
}

// AguardaParte informa se a negociação está parada esperando a parte agir.
func (p *Proposta) AguardaParte(parte Parte) bool {
	switch p.StatusNegociacao {
	case NegociacaoAguardandoCliente:
		return parte == ParteCliente
	case NegociacaoAguardandoProdutor:
		return parte == ParteProdutor
	}
	return false
}

// RegistrarContraproposta aplica o efeito de uma contraproposta na máquina de
// estados: quem envia endossa os próprios termos (aceite implícito) e a bola
// passa para a outra parte, cujo aceite anterior deixa de valer. Uma parte
// nunca deixa a proposta em estado que exija ação dela mesma.
func (p *Proposta) RegistrarContraproposta(remetente Parte) error {
	if p.Terminal() {
		return ErrJaFinalizada
	}
	p.setStatusDa(remetente, ParteStatusAceita)
	p.setStatusDa(remetente.Outra(), ParteStatusPendente)
	if remetente == ParteCliente {
		p.StatusNegociacao = NegociacaoAguardandoProdutor
	} else {
		p.StatusNegociacao = NegociacaoAguardandoCliente
	}
	p.atualizarStatusGeral()
	return nil
}

// Aceitar registra o aceite da parte. Falha com ErrNaoESuaVez quando existe
// contraproposta pendente dirigida à outra parte — ninguém aceita a própria
// contraproposta.
func (p *Proposta) Aceitar(parte Parte) error {
	if p.Terminal() {
		return ErrJaFinalizada
	}
	switch p.StatusNegociacao {
	case NegociacaoAguardandoCliente:
		if parte != ParteCliente {
			return ErrNaoESuaVez
		}
	case NegociacaoAguardandoProdutor:
		if parte != ParteProdutor {
			return ErrNaoESuaVez
		}
	}
	p.setStatusDa(parte, ParteStatusAceita)
	p.atualizarStatusGeral()
	return nil
}

// Recusar é sempre legal antes de um estado terminal: qualquer parte pode
// desistir, mesmo aguardando a resposta da outra ou após a própria
// contraproposta. Terminal — nada mais acontece depois.
func (p *Proposta) Recusar(parte Parte) error {
	if p.Terminal() {
		return ErrJaFinalizada
	}
	p.setStatusDa(parte, ParteStatusRecusada)
	p.StatusNegociacao = NegociacaoRecusada
	p.StatusGeral = StatusGeralRecusada
	return nil
}

// Convergiu informa se ambas as partes aceitaram e a proposta ainda não foi
// finalizada.
func (p *Proposta) Convergiu() bool {
	return p.StatusCliente == ParteStatusAceita &&
		p.StatusProdutor == ParteStatusAceita &&
		p.ValorFinal == nil
}

// Finalizar trava valor e prazo finais no instante da convergência. Os campos
// finais são imutáveis: uma segunda chamada devolve ErrJaFinalizada.
func (p *Proposta) Finalizar(valor float64, prazo pagamento.Prazo, agora time.Time) error {
	if p.ValorFinal != nil {
		return ErrJaFinalizada
	}
	p.ValorFinal = &valor
	pr := prazo
	p.PrazoFinal = &pr
	if p.AceitaPeloClienteEm == nil {
		t := agora
		p.AceitaPeloClienteEm = &t
	}
	p.StatusNegociacao = NegociacaoAceita
	p.StatusGeral = StatusGeralAceita
	p.StatusPagamento = PagamentoPendente
	return nil
}

// DataVencimentoPagamento deriva a data limite de pagamento dos termos
// finais. Nil antes da finalização; nunca armazenada redundantemente.
func (p *Proposta) DataVencimentoPagamento() *time.Time {
	if p.PrazoFinal == nil || p.AceitaPeloClienteEm == nil {
		return nil
	}
	v := pagamento.DataVencimento(*p.PrazoFinal, *p.AceitaPeloClienteEm)
	return &v
}

// EmAtraso informa se o pagamento da proposta finalizada está vencido.
func (p *Proposta) EmAtraso(agora time.Time) bool {
	if p.StatusPagamento != PagamentoPendente {
		return false
	}
	venc := p.DataVencimentoPagamento()
	return venc != nil && agora.After(*venc)
}

func (p *Proposta) setStatusDa(parte Parte, status string) {
	if parte == ParteCliente {
		p.StatusCliente = status
	} else {
		p.StatusProdutor = status
	}
}

func (p *Proposta) atualizarStatusGeral() {
	switch {
	case p.StatusNegociacao == NegociacaoAceita:
		p.StatusGeral = StatusGeralAceita
	case p.StatusProdutor == ParteStatusAceita && p.StatusCliente != ParteStatusAceita:
		p.StatusGeral = StatusGeralAceitaPeloProdutor
	default:
		p.StatusGeral = StatusGeralPendente
	}
}
