package conta

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/SincroniaMusical/api-licencas/internal/auth"
	"github.com/SincroniaMusical/api-licencas/internal/utils"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type criarContaRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Tipo  string `json:"tipo"`
	Senha string `json:"senha"`
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Criar trata POST /contas. Sem senha no payload, gera uma temporária e a
// devolve uma única vez na resposta.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req criarContaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		http.Error(w, "O campo 'email' é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Tipo != TipoCliente && req.Tipo != TipoProdutor {
		http.Error(w, "O campo 'tipo' deve ser 'cliente' ou 'produtor'", http.StatusBadRequest)
		return
	}

	senha := req.Senha
	temporaria := ""
	if senha == "" {
		gerada, err := utils.GerarSenhaTemporaria()
		if err != nil {
			http.Error(w, "Erro ao gerar senha temporária", http.StatusInternalServerError)
			return
		}
		senha = gerada
		temporaria = gerada
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	c := Conta{
		Nome:                  req.Nome,
		Email:                 strings.TrimSpace(req.Email),
		Tipo:                  req.Tipo,
		Senha:                 hash,
		PrecisaRedefinirSenha: temporaria != "",
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao criar conta", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{"conta": c}
	if temporaria != "" {
		resp["senhaTemporaria"] = temporaria
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(resp)
}

// Login trata POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorEmail(h.DB, strings.TrimSpace(req.Email))
	if err != nil || !utils.VerificarSenha(c.Senha, req.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(c.ID, c.Tipo)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"conta": c,
	})
}

// BuscarPorID trata GET /contas/{id} (apenas a própria conta)
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	contaID, _ := r.Context().Value(auth.CtxContaID).(uint)
	if uint(id) != contaID {
		http.Error(w, "Acesso negado", http.StatusForbidden)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Conta não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar conta", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
