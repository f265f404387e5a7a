package proposta

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/SincroniaMusical/api-licencas/internal/historico"
	"github.com/SincroniaMusical/api-licencas/internal/licenca"
	"github.com/SincroniaMusical/api-licencas/internal/mensagem"
	"github.com/SincroniaMusical/api-licencas/internal/notificacao"
	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

// Service coordena a máquina de estados da proposta: valida ações das partes,
// detecta a convergência bilateral e finaliza exatamente uma vez, disparando
// cobrança, emissão da licença, histórico e notificações.
type Service struct {
	DB          *gorm.DB
	Propostas   Repository
	Mensagens   mensagem.Repository
	Historico   historico.Repository
	Licencas    licenca.Repository
	Obrigacoes  pagamento.ObrigacaoRepository
	Cobranca    pagamento.Cobrador
	Notificador notificacao.Notificador

	// Agora é injetável para os testes controlarem o relógio.
	Agora func() time.Time
}

func NewService(db *gorm.DB, cobranca pagamento.Cobrador, notificador notificacao.Notificador) *Service {
	return &Service{
		DB:          db,
		Propostas:   NewRepository(),
		Mensagens:   mensagem.NewRepository(),
		Historico:   historico.NewRepository(),
		Licencas:    licenca.NewRepository(),
		Obrigacoes:  pagamento.NewObrigacaoRepository(),
		Cobranca:    cobranca,
		Notificador: notificador,
		Agora:       time.Now,
	}
}

// Criar registra uma nova proposta em estado inicial.
func (s *Service) Criar(p *Proposta) error {
	if !pagamento.PrazoValido(p.PrazoBase) {
		return pagamento.ErrPrazoInvalido
	}
	p.StatusCliente = ParteStatusPendente
	p.StatusProdutor = ParteStatusPendente
	p.StatusNegociacao = NegociacaoNenhuma
	p.StatusGeral = StatusGeralPendente
	p.StatusPagamento = PagamentoNaoAplicavel
	if p.DataExpiracao.IsZero() {
		p.DataExpiracao = s.Agora().AddDate(0, 0, 30)
	}
	return s.Propostas.Salvar(s.DB, p)
}

// Buscar retorna a proposta aplicando a expiração preguiçosa: se o prazo
// limite passou, o status Expirada é persistido aqui mesmo. Uma corrida na
// persistência não é erro — o estado gravado pelo vencedor prevalece.
func (s *Service) Buscar(id uint) (*Proposta, error) {
	p, err := s.Propostas.BuscarPorID(s.DB, id)
	if err != nil {
		return nil, err
	}
	anterior := p.StatusGeral
	if !p.VerificarExpiracao(s.Agora()) {
		return p, nil
	}
	if err := s.Propostas.Atualizar(s.DB, p); err != nil {
		if errors.Is(err, ErrModificacaoConcorrente) {
			return s.Propostas.BuscarPorID(s.DB, id)
		}
		return nil, err
	}
	s.registrarHistorico(s.DB, p.ID, anterior, p.StatusGeral, historico.AutorSistema)
	return p, nil
}

// ListarPorConta lista as propostas em que a conta participa.
func (s *Service) ListarPorConta(contaID uint) ([]Proposta, error) {
	return s.Propostas.ListarPorConta(s.DB, contaID)
}

// ListarMensagens devolve o log completo de negociação, em ordem.
func (s *Service) ListarMensagens(propostaID uint) ([]mensagem.Mensagem, error) {
	if _, err := s.Buscar(propostaID); err != nil {
		return nil, err
	}
	return s.Mensagens.ListarPorProposta(s.DB, propostaID)
}

// ListarHistorico devolve a trilha de auditoria da proposta.
func (s *Service) ListarHistorico(propostaID uint) ([]historico.Registro, error) {
	if _, err := s.Buscar(propostaID); err != nil {
		return nil, err
	}
	return s.Historico.ListarPorProposta(s.DB, propostaID)
}

// EnviarMensagem acrescenta uma mensagem ao log da proposta. Quando ela
// carrega contraproposta, a máquina de estados passa a aguardar a outra
// parte; a inserção em si nunca finaliza nem aceita nada.
func (s *Service) EnviarMensagem(propostaID, contaID uint, texto string, valor *float64, prazo *pagamento.Prazo, termos string) (*mensagem.Mensagem, error) {
	if prazo != nil && !pagamento.PrazoValido(*prazo) {
		return nil, pagamento.ErrPrazoInvalido
	}
	if _, err := s.Buscar(propostaID); err != nil {
		return nil, err
	}

	var criada *mensagem.Mensagem
	var contraproposta bool
	err := s.Propostas.ComBloqueio(s.DB, propostaID, func(tx *gorm.DB, p *Proposta) error {
		if p.VerificarExpiracao(s.Agora()) || p.Terminal() {
			return ErrJaFinalizada
		}
		parte, ok := p.ParteDa(contaID)
		if !ok {
			return ErrParteInvalida
		}

		m := &mensagem.Mensagem{
			PropostaID:           propostaID,
			RemetenteID:          contaID,
			Parte:                string(parte),
			Texto:                texto,
			ValorContraproposta:  valor,
			PrazoContraproposta:  prazo,
			TermosContraproposta: termos,
		}
		if err := s.Mensagens.Criar(tx, m); err != nil {
			return err
		}

		if m.TemContraproposta() {
			contraproposta = true
			anterior := p.StatusGeral
			if err := p.RegistrarContraproposta(parte); err != nil {
				return err
			}
			if err := s.Propostas.Atualizar(tx, p); err != nil {
				return err
			}
			if p.StatusGeral != anterior {
				s.registrarHistorico(tx, p.ID, anterior, p.StatusGeral, string(parte))
			}
		}
		criada = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	if contraproposta {
		s.notificar(propostaID, "contraproposta_recebida")
	} else {
		s.notificar(propostaID, "mensagem_recebida")
	}
	return criada, nil
}

// Aceitar registra o aceite da parte e, havendo convergência bilateral,
// finaliza a proposta exatamente uma vez. prazoConfirmado resolve o caso em
// que o prazo da contraproposta só existe em texto livre e de forma ambígua;
// nesse cenário o aceite sem confirmação falha com ErrPrazoAmbiguo e nada é
// gravado. Uma confirmação que contradiz um prazo legível da contraproposta
// também falha com ErrPrazoAmbiguo: quem aceita não dita termos novos.
func (s *Service) Aceitar(propostaID, contaID uint, prazoConfirmado *pagamento.Prazo) (*Proposta, error) {
	if prazoConfirmado != nil && !pagamento.PrazoValido(*prazoConfirmado) {
		return nil, pagamento.ErrPrazoInvalido
	}
	if _, err := s.Buscar(propostaID); err != nil {
		return nil, err
	}

	var resultado *Proposta
	var finalizada bool
	err := s.Propostas.ComBloqueio(s.DB, propostaID, func(tx *gorm.DB, p *Proposta) error {
		agora := s.Agora()
		if p.VerificarExpiracao(agora) {
			return ErrJaFinalizada
		}
		parte, ok := p.ParteDa(contaID)
		if !ok {
			return ErrParteInvalida
		}

		respondeContraproposta := p.AguardaParte(parte)
		anterior := p.StatusGeral
		if err := p.Aceitar(parte); err != nil {
			return err
		}

		if respondeContraproposta {
			if err := s.aplicarTermosAceitos(tx, p, prazoConfirmado); err != nil {
				return err
			}
		}

		if p.Convergiu() {
			valor := p.ValorBase
			if p.ValorNegociado != nil {
				valor = *p.ValorNegociado
			}
			prazo := p.PrazoBase
			if p.PrazoNegociado != nil {
				prazo = *p.PrazoNegociado
			}
			if err := p.Finalizar(valor, prazo, agora); err != nil {
				return err
			}
			finalizada = true
		}

		if err := s.Propostas.Atualizar(tx, p); err != nil {
			return err
		}
		if p.StatusGeral != anterior {
			s.registrarHistorico(tx, p.ID, anterior, p.StatusGeral, string(parte))
		}

		if finalizada {
			venc := *p.DataVencimentoPagamento()
			obrigacao := &pagamento.ObrigacaoPagamento{
				PropostaID:     p.ID,
				Valor:          *p.ValorFinal,
				Prazo:          *p.PrazoFinal,
				DataVencimento: venc,
			}
			if err := s.Obrigacoes.CriarSeNaoExistir(tx, obrigacao); err != nil {
				return err
			}
			emitida := &licenca.Licenca{
				PropostaID:  p.ID,
				FaixaID:     p.FaixaID,
				ClienteID:   p.ClienteID,
				ProdutorID:  p.ProdutorID,
				Valor:       *p.ValorFinal,
				Prazo:       *p.PrazoFinal,
				DataEmissao: agora,
			}
			if err := s.Licencas.Emitir(tx, emitida); err != nil {
				return err
			}
		}
		resultado = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if finalizada {
		// Fronteira de cobrança fora da transação. Idempotente por proposta:
		// "já existe" é sucesso e falha aqui nunca desfaz a finalização — a
		// obrigação local permite retentativa posterior.
		if err := s.Cobranca.CriarObrigacao(resultado.ID, *resultado.ValorFinal, *resultado.DataVencimentoPagamento()); err != nil {
			log.Printf("Erro ao criar obrigação de pagamento da proposta %d: %v", resultado.ID, err)
		}
		s.notificar(propostaID, "proposta_aceita")
	} else {
		s.notificar(propostaID, "aceite_registrado")
	}
	return resultado, nil
}

// Recusar é a via de desistência: disponível a qualquer parte até o estado
// terminal e com prioridade nas corridas — o primeiro a escrever sob o
// bloqueio vence, o perdedor recebe o erro de estado terminal.
func (s *Service) Recusar(propostaID, contaID uint) (*Proposta, error) {
	if _, err := s.Buscar(propostaID); err != nil {
		return nil, err
	}

	var resultado *Proposta
	err := s.Propostas.ComBloqueio(s.DB, propostaID, func(tx *gorm.DB, p *Proposta) error {
		if p.VerificarExpiracao(s.Agora()) {
			return ErrJaFinalizada
		}
		parte, ok := p.ParteDa(contaID)
		if !ok {
			return ErrParteInvalida
		}
		anterior := p.StatusGeral
		if err := p.Recusar(parte); err != nil {
			return err
		}
		if err := s.Propostas.Atualizar(tx, p); err != nil {
			return err
		}
		s.registrarHistorico(tx, p.ID, anterior, p.StatusGeral, string(parte))
		resultado = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notificar(propostaID, "proposta_recusada")
	return resultado, nil
}

// RegistrarPagamento observa a confirmação vinda da cobrança
// (Pendente→Pago). Chamada repetida é no-op.
func (s *Service) RegistrarPagamento(propostaID uint, dataPagamento time.Time) (*Proposta, error) {
	var resultado *Proposta
	err := s.Propostas.ComBloqueio(s.DB, propostaID, func(tx *gorm.DB, p *Proposta) error {
		switch p.StatusPagamento {
		case PagamentoPago:
			// já observado; retentativa idempotente
			resultado = p
			return nil
		case PagamentoPendente:
			p.StatusPagamento = PagamentoPago
			if err := s.Propostas.Atualizar(tx, p); err != nil {
				return err
			}
			if err := s.Obrigacoes.MarcarPaga(tx, propostaID, dataPagamento); err != nil {
				return err
			}
			resultado = p
			return nil
		default:
			return ErrPagamentoIndevido
		}
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// aplicarTermosAceitos copia para a proposta os termos da contraproposta que
// a parte acabou de aceitar: o valor mais recente e o prazo, resolvido na
// ordem campo estruturado > texto livre > prazo base. prazoConfirmado só
// desempata quando os termos da contraproposta não dão para ler; ele nunca
// reescreve um prazo que a outra parte propôs de forma legível — aceite é
// concordar com os termos dela, não fixar termos novos.
func (s *Service) aplicarTermosAceitos(tx *gorm.DB, p *Proposta, prazoConfirmado *pagamento.Prazo) error {
	m, err := s.Mensagens.UltimaContraproposta(tx, p.ID)
	if err != nil {
		return err
	}
	if m == nil {
		return nil
	}

	if m.ValorContraproposta != nil {
		p.ValorNegociado = m.ValorContraproposta
	}

	if m.PrazoContraproposta != nil {
		if prazoConfirmado != nil && *prazoConfirmado != *m.PrazoContraproposta {
			return ErrPrazoAmbiguo
		}
		pr := *m.PrazoContraproposta
		p.PrazoNegociado = &pr
		return nil
	}

	resolvido, _, err := pagamento.ResolverPrazo(nil, m.TextoDeTermos())
	if errors.Is(err, pagamento.ErrPrazoConflitante) {
		if prazoConfirmado != nil {
			pr := *prazoConfirmado
			p.PrazoNegociado = &pr
			return nil
		}
		return ErrPrazoAmbiguo
	}
	if err != nil {
		return err
	}
	if resolvido != nil {
		if prazoConfirmado != nil && *prazoConfirmado != *resolvido {
			return ErrPrazoAmbiguo
		}
		pr := *resolvido
		p.PrazoNegociado = &pr
		return nil
	}
	// Sem prazo identificável: se a contraproposta trouxe termos em prosa que
	// não conseguimos ler, vale a confirmação explícita de quem aceita; sem
	// ela, ninguém assume nada. Sem termos em prosa, valem os termos originais
	// da proposta.
	if m.TermosContraproposta != "" {
		if prazoConfirmado != nil {
			pr := *prazoConfirmado
			p.PrazoNegociado = &pr
			return nil
		}
		return ErrPrazoAmbiguo
	}
	return nil
}

func (s *Service) registrarHistorico(db *gorm.DB, propostaID uint, anterior, novo, autor string) {
	reg := &historico.Registro{
		PropostaID:     propostaID,
		StatusAnterior: anterior,
		StatusNovo:     novo,
		Autor:          autor,
	}
	if err := s.Historico.Registrar(db, reg); err != nil {
		// auditoria é melhor esforço; nunca derruba a transição
		log.Printf("Erro ao registrar histórico da proposta %d: %v", propostaID, err)
	}
}

func (s *Service) notificar(propostaID uint, evento string) {
	if s.Notificador == nil {
		return
	}
	s.Notificador.NotificarParte(propostaID, evento)
}
