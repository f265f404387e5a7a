package licenca

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SincroniaMusical/api-licencas/internal/auth"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type patchDocumentoRequest struct {
	URL string `json:"url"`
}

// BuscarPorProposta trata GET /propostas/{id}/licenca
func (h *Handler) BuscarPorProposta(w http.ResponseWriter, r *http.Request) {
	propostaID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	l, err := h.Repository.BuscarPorProposta(h.DB, uint(propostaID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Licença não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar licença", http.StatusInternalServerError)
		return
	}

	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)
	if l.ClienteID != contaID && l.ProdutorID != contaID {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(l)
}

// ListarPorConta trata GET /licencas (as licenças da conta autenticada)
func (h *Handler) ListarPorConta(w http.ResponseWriter, r *http.Request) {
	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)

	licencas, err := h.Repository.ListarPorConta(h.DB, contaID)
	if err != nil {
		http.Error(w, "Erro ao listar licenças", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(licencas)
}

// PatchDocumento trata PATCH /licencas/{id}/documento — o serviço de geração
// de PDF registra aqui a URL do documento pronto.
func (h *Handler) PatchDocumento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req patchDocumentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		http.Error(w, "JSON inválido ou URL vazia", http.StatusBadRequest)
		return
	}

	var l Licenca
	if err := h.DB.First(&l, id).Error; err != nil {
		http.Error(w, "Licença não encontrada", http.StatusNotFound)
		return
	}

	if err := h.Repository.AtualizarURL(h.DB, uint(id), req.URL); err != nil {
		http.Error(w, "Erro ao atualizar documento", http.StatusInternalServerError)
		return
	}
	l.URL = req.URL

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(l)
}
