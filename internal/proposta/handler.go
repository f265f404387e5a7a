// internal/proposta/handler.go
package proposta

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SincroniaMusical/api-licencas/internal/auth"
	"github.com/SincroniaMusical/api-licencas/internal/mensagem"
	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

// Handler encapsula o service da proposta
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

type criarPropostaRequest struct {
	ClienteID     uint            `json:"clienteId"`
	ProdutorID    uint            `json:"produtorId"`
	FaixaID       uint            `json:"faixaId"`
	ValorBase     float64         `json:"valorBase"`
	PrazoBase     pagamento.Prazo `json:"prazoBase"`
	DataExpiracao *time.Time      `json:"dataExpiracao"`
}

type enviarMensagemRequest struct {
	Texto                string           `json:"texto"`
	ValorContraproposta  *float64         `json:"valorContraproposta"`
	PrazoContraproposta  *pagamento.Prazo `json:"prazoContraproposta"`
	TermosContraproposta string           `json:"termosContraproposta"`
}

type aceitarRequest struct {
	PrazoConfirmado *pagamento.Prazo `json:"prazoConfirmado"`
}

type registrarPagamentoRequest struct {
	Status        string     `json:"status"`
	DataPagamento *time.Time `json:"dataPagamento"`
}

// propostaDTO acrescenta os campos derivados que a interface consome.
type propostaDTO struct {
	*Proposta
	DataVencimentoPagamento *time.Time `json:"dataVencimentoPagamento,omitempty"`
	EmAtraso                bool       `json:"emAtraso,omitempty"`
}

func (h *Handler) toDTO(p *Proposta) propostaDTO {
	return propostaDTO{
		Proposta:                p,
		DataVencimentoPagamento: p.DataVencimentoPagamento(),
		EmAtraso:                p.EmAtraso(h.Service.Agora()),
	}
}

// escreverErro mapeia os erros de domínio para HTTP. Todos voltam tipados do
// service; nada é mascarado como 500 genérico.
func escreverErro(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		http.Error(w, "Proposta não encontrada", http.StatusNotFound)
	case errors.Is(err, ErrParteInvalida):
		http.Error(w, "Acesso negado", http.StatusForbidden)
	case errors.Is(err, ErrNaoESuaVez):
		http.Error(w, "A negociação aguarda a outra parte", http.StatusConflict)
	case errors.Is(err, ErrJaFinalizada):
		http.Error(w, "Proposta já finalizada", http.StatusConflict)
	case errors.Is(err, ErrModificacaoConcorrente):
		http.Error(w, "Proposta modificada concorrentemente; recarregue e tente de novo", http.StatusConflict)
	case errors.Is(err, ErrPrazoAmbiguo):
		http.Error(w, "Prazo de pagamento ambíguo; informe 'prazoConfirmado' no aceite", http.StatusUnprocessableEntity)
	case errors.Is(err, ErrPagamentoIndevido):
		http.Error(w, "Proposta sem obrigação de pagamento pendente", http.StatusConflict)
	case errors.Is(err, pagamento.ErrPrazoInvalido):
		http.Error(w, "Prazo de pagamento inválido", http.StatusBadRequest)
	default:
		http.Error(w, "Erro interno", http.StatusInternalServerError)
	}
}

func idDaRota(r *http.Request) (uint, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 0 {
		return 0, errors.New("id inválido")
	}
	return uint(id), nil
}

/* ================== POST /propostas (Criar) ================== */

func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)
	tipo, _ := r.Context().Value(auth.CtxTipoConta).(string)

	var req criarPropostaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.ValorBase <= 0 {
		http.Error(w, "O campo 'valorBase' deve ser positivo", http.StatusBadRequest)
		return
	}
	if req.PrazoBase == "" {
		req.PrazoBase = pagamento.PrazoImediato
	}

	// quem cria ocupa o próprio lado; o outro lado vem do payload
	p := Proposta{
		ClienteID:  req.ClienteID,
		ProdutorID: req.ProdutorID,
		FaixaID:    req.FaixaID,
		ValorBase:  req.ValorBase,
		PrazoBase:  req.PrazoBase,
	}
	switch tipo {
	case "cliente":
		p.ClienteID = contaID
	case "produtor":
		p.ProdutorID = contaID
	}
	if p.ClienteID == 0 || p.ProdutorID == 0 || p.FaixaID == 0 {
		http.Error(w, "Os campos 'clienteId', 'produtorId' e 'faixaId' são obrigatórios", http.StatusBadRequest)
		return
	}
	if req.DataExpiracao != nil {
		p.DataExpiracao = *req.DataExpiracao
	}

	if err := h.Service.Criar(&p); err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(h.toDTO(&p))
}

// BuscarPorID trata GET /propostas/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Buscar(id)
	if err != nil {
		escreverErro(w, err)
		return
	}

	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)
	if _, ok := p.ParteDa(contaID); !ok {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.toDTO(p))
}

// ListarPorConta trata GET /contas/{id}/propostas
func (h *Handler) ListarPorConta(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)
	if id != contaID {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	lista, err := h.Service.ListarPorConta(id)
	if err != nil {
		http.Error(w, "Erro ao listar propostas", http.StatusInternalServerError)
		return
	}
	agora := h.Service.Agora()
	dtos := make([]propostaDTO, 0, len(lista))
	for i := range lista {
		// expiração preguiçosa apenas na projeção; a persistência acontece
		// quando a proposta é carregada individualmente
		lista[i].VerificarExpiracao(agora)
		dtos = append(dtos, h.toDTO(&lista[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dtos)
}

/* ================== POST /propostas/{id}/mensagens ================== */

func (h *Handler) EnviarMensagem(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)

	var req enviarMensagemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	m, err := h.Service.EnviarMensagem(id, contaID, req.Texto, req.ValorContraproposta, req.PrazoContraproposta, req.TermosContraproposta)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(mensagem.ToDTO(*m))
}

// ListarMensagens trata GET /propostas/{id}/mensagens
func (h *Handler) ListarMensagens(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Buscar(id)
	if err != nil {
		escreverErro(w, err)
		return
	}
	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)
	if _, ok := p.ParteDa(contaID); !ok {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	mensagens, err := h.Service.ListarMensagens(id)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(mensagem.ToDTOs(mensagens))
}

/* ================== POST /propostas/{id}/aceite ================== */

func (h *Handler) Aceitar(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)

	var req aceitarRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	p, err := h.Service.Aceitar(id, contaID, req.PrazoConfirmado)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.toDTO(p))
}

// Recusar trata POST /propostas/{id}/recusa
func (h *Handler) Recusar(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)

	p, err := h.Service.Recusar(id, contaID)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.toDTO(p))
}

// ListarHistorico trata GET /propostas/{id}/historico
func (h *Handler) ListarHistorico(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Service.Buscar(id)
	if err != nil {
		escreverErro(w, err)
		return
	}
	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)
	if _, ok := p.ParteDa(contaID); !ok {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	registros, err := h.Service.ListarHistorico(id)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(registros)
}

// RegistrarPagamento trata PATCH /propostas/{id}/pagamento — chamado pelo
// sistema de cobrança quando a obrigação é quitada.
func (h *Handler) RegistrarPagamento(w http.ResponseWriter, r *http.Request) {
	id, err := idDaRota(r)
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req registrarPagamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if req.Status != PagamentoPago {
		http.Error(w, "O campo 'status' deve ser 'Pago'", http.StatusBadRequest)
		return
	}
	dataPagamento := h.Service.Agora()
	if req.DataPagamento != nil {
		dataPagamento = *req.DataPagamento
	}

	p, err := h.Service.RegistrarPagamento(id, dataPagamento)
	if err != nil {
		escreverErro(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.toDTO(p))
}
