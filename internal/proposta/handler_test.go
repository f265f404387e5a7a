package proposta

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SincroniaMusical/api-licencas/internal/auth"
	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
)

func rotasDeTeste(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/propostas", h.Criar).Methods("POST")
	r.HandleFunc("/propostas/{id}", h.BuscarPorID).Methods("GET")
	r.HandleFunc("/propostas/{id}/aceite", h.Aceitar).Methods("POST")
	r.HandleFunc("/propostas/{id}/recusa", h.Recusar).Methods("POST")
	r.HandleFunc("/propostas/{id}/mensagens", h.EnviarMensagem).Methods("POST")
	r.HandleFunc("/propostas/{id}/pagamento", h.RegistrarPagamento).Methods("PATCH")
	return r
}

// executar dispara a requisição já autenticada, como o middleware faria.
func executar(router *mux.Router, metodo, caminho string, corpo interface{}, contaID uint, tipo string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if corpo != nil {
		_ = json.NewEncoder(&body).Encode(corpo)
	}
	req := httptest.NewRequest(metodo, caminho, &body)
	ctx := context.WithValue(req.Context(), auth.CtxContaID, contaID)
	ctx = context.WithValue(ctx, auth.CtxTipoConta, tipo)
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCriarOcupaOProprioLado(t *testing.T) {
	amb := novoAmbiente()
	router := rotasDeTeste(NewHandler(amb.service))

	corpo := map[string]interface{}{
		"clienteId":  999, // ignorado: o criador ocupa o próprio lado
		"produtorId": 20,
		"faixaId":    7,
		"valorBase":  500,
	}
	rec := executar(router, "POST", "/propostas", corpo, 10, "cliente")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resposta propostaDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resposta))
	assert.Equal(t, uint(10), resposta.ClienteID)
	assert.Equal(t, uint(20), resposta.ProdutorID)
	assert.Equal(t, pagamento.PrazoImediato, resposta.PrazoBase)
}

func TestHandlerCriarValoresObrigatorios(t *testing.T) {
	amb := novoAmbiente()
	router := rotasDeTeste(NewHandler(amb.service))

	rec := executar(router, "POST", "/propostas", map[string]interface{}{
		"produtorId": 20, "faixaId": 7, "valorBase": -1,
	}, 10, "cliente")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = executar(router, "POST", "/propostas", map[string]interface{}{
		"faixaId": 7, "valorBase": 500,
	}, 10, "cliente")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerAceitar(t *testing.T) {
	amb := novoAmbiente()
	router := rotasDeTeste(NewHandler(amb.service))
	p := amb.criarPropostaBase(t)

	_, err := amb.service.EnviarMensagem(p.ID, 20, "450 com net30",
		valorPtr(450), prazoPtr(pagamento.PrazoNet30), "")
	require.NoError(t, err)

	// o produtor não aceita a própria contraproposta
	rec := executar(router, "POST", "/propostas/1/aceite", nil, 20, "produtor")
	assert.Equal(t, http.StatusConflict, rec.Code)

	// estranho não age
	rec = executar(router, "POST", "/propostas/1/aceite", nil, 99, "cliente")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = executar(router, "POST", "/propostas/1/aceite", nil, 10, "cliente")
	require.Equal(t, http.StatusOK, rec.Code)

	var resposta propostaDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resposta))
	assert.Equal(t, StatusGeralAceita, resposta.StatusGeral)
	require.NotNil(t, resposta.DataVencimentoPagamento)
	assert.Equal(t, amb.agora.AddDate(0, 0, 30), *resposta.DataVencimentoPagamento)

	// repetição depois do terminal
	rec = executar(router, "POST", "/propostas/1/aceite", nil, 10, "cliente")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandlerAceitarPrazoAmbiguo(t *testing.T) {
	amb := novoAmbiente()
	router := rotasDeTeste(NewHandler(amb.service))
	p := amb.criarPropostaBase(t)

	_, err := amb.service.EnviarMensagem(p.ID, 20, "nova proposta",
		valorPtr(450), nil, "net30 ou immediate, tanto faz")
	require.NoError(t, err)

	rec := executar(router, "POST", "/propostas/1/aceite", nil, 10, "cliente")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = executar(router, "POST", "/propostas/1/aceite",
		aceitarRequest{PrazoConfirmado: prazoPtr(pagamento.PrazoNet30)}, 10, "cliente")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerPropostaInexistente(t *testing.T) {
	amb := novoAmbiente()
	router := rotasDeTeste(NewHandler(amb.service))

	rec := executar(router, "GET", "/propostas/123", nil, 10, "cliente")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerRegistrarPagamento(t *testing.T) {
	amb := novoAmbiente()
	router := rotasDeTeste(NewHandler(amb.service))
	p := amb.criarPropostaBase(t)

	// antes da finalização não há o que pagar
	rec := executar(router, "PATCH", "/propostas/1/pagamento",
		registrarPagamentoRequest{Status: PagamentoPago}, 0, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	_, err := amb.service.Aceitar(p.ID, 20, nil)
	require.NoError(t, err)
	_, err = amb.service.Aceitar(p.ID, 10, nil)
	require.NoError(t, err)

	rec = executar(router, "PATCH", "/propostas/1/pagamento",
		registrarPagamentoRequest{Status: "Cancelado"}, 0, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = executar(router, "PATCH", "/propostas/1/pagamento",
		registrarPagamentoRequest{Status: PagamentoPago}, 0, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resposta propostaDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resposta))
	assert.Equal(t, PagamentoPago, resposta.StatusPagamento)
}
