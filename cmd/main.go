package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/SincroniaMusical/api-licencas/internal/auth"
	"github.com/SincroniaMusical/api-licencas/internal/conta"
	"github.com/SincroniaMusical/api-licencas/internal/faixa"
	"github.com/SincroniaMusical/api-licencas/internal/historico"
	"github.com/SincroniaMusical/api-licencas/internal/licenca"
	"github.com/SincroniaMusical/api-licencas/internal/mensagem"
	"github.com/SincroniaMusical/api-licencas/internal/notificacao"
	"github.com/SincroniaMusical/api-licencas/internal/pagamento"
	"github.com/SincroniaMusical/api-licencas/internal/proposta"
	"github.com/SincroniaMusical/api-licencas/internal/utils/db"
)

func main() {
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&conta.Conta{},
		&faixa.Faixa{},
		&proposta.Proposta{},
		&mensagem.Mensagem{},
		&historico.Registro{},
		&licenca.Licenca{},
		&pagamento.ObrigacaoPagamento{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	cobrador := pagamento.NewCobradorHTTP(os.Getenv("COBRANCA_WEBHOOK_URL"))
	notificador := notificacao.NewWebhookNotificador(os.Getenv("NOTIFICACAO_WEBHOOK_URL"))

	// Handlers
	contaHandler := conta.NewHandler(database)
	propostaHandler := proposta.NewHandler(proposta.NewService(database, cobrador, notificador))
	licencaHandler := licenca.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", contaHandler.Login).Methods("POST")
	r.HandleFunc("/contas", contaHandler.Criar).Methods("POST")

	// Webhook do sistema de cobrança (confirma pagamento)
	r.HandleFunc("/propostas/{id}/pagamento", propostaHandler.RegistrarPagamento).Methods("PATCH")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/contas/{id}", contaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contas/{id}/propostas", propostaHandler.ListarPorConta).Methods("GET")

	// Rotas de propostas
	api.HandleFunc("/propostas", propostaHandler.Criar).Methods("POST")
	api.HandleFunc("/propostas/{id}", propostaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/propostas/{id}/aceite", propostaHandler.Aceitar).Methods("POST")
	api.HandleFunc("/propostas/{id}/recusa", propostaHandler.Recusar).Methods("POST")
	api.HandleFunc("/propostas/{id}/mensagens", propostaHandler.EnviarMensagem).Methods("POST")
	api.HandleFunc("/propostas/{id}/mensagens", propostaHandler.ListarMensagens).Methods("GET")
	api.HandleFunc("/propostas/{id}/historico", propostaHandler.ListarHistorico).Methods("GET")

	// Rotas de licenças
	api.HandleFunc("/licencas", licencaHandler.ListarPorConta).Methods("GET")
	api.HandleFunc("/propostas/{id}/licenca", licencaHandler.BuscarPorProposta).Methods("GET")
	api.HandleFunc("/licencas/{id}/documento", licencaHandler.PatchDocumento).Methods("PATCH")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	// Inicia servidor
	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
