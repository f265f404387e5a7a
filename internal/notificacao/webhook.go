package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
)

// Notificador avisa as partes sobre eventos da proposta (contraproposta,
// aceite, recusa). Melhor esforço: falha aqui é logada e nunca reverte a
// transição de estado que a originou.
type Notificador interface {
	NotificarParte(propostaID uint, evento string)
}

// WebhookNotificador publica os eventos no serviço de e-mail/notificação.
type WebhookNotificador struct {
	URL string
}

func NewWebhookNotificador(url string) *WebhookNotificador {
	return &WebhookNotificador{URL: url}
}

func (n *WebhookNotificador) NotificarParte(propostaID uint, evento string) {
	if n.URL == "" {
		return
	}
	payload := map[string]interface{}{
		"propostaId": propostaID,
		"evento":     evento,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(n.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar notificação da proposta %d: %v", propostaID, err)
		return
	}
	defer resp.Body.Close()
}
