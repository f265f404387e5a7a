package pagamento

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Cobrador é a fronteira com o sistema de cobrança: cria a obrigação de
// pagamento de uma proposta finalizada. A chave de idempotência é o ID da
// proposta; "obrigação já existente" é sucesso, nunca motivo de rollback.
type Cobrador interface {
	CriarObrigacao(propostaID uint, valor float64, vencimento time.Time) error
}

// CobradorHTTP envia a obrigação para o serviço de cobrança via webhook.
type CobradorHTTP struct {
	URL    string
	Client *http.Client
}

// NewCobradorHTTP instancia o cobrador apontando para a URL do serviço.
func NewCobradorHTTP(url string) *CobradorHTTP {
	return &CobradorHTTP{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// CriarObrigacao publica a obrigação. Um 409 do serviço de cobrança significa
// que a obrigação desta proposta já foi criada (retentativa idempotente).
func (c *CobradorHTTP) CriarObrigacao(propostaID uint, valor float64, vencimento time.Time) error {
	payload := map[string]interface{}{
		"chaveIdempotencia": fmt.Sprintf("proposta-%d", propostaID),
		"propostaId":        propostaID,
		"valor":             valor,
		"vencimento":        vencimento.Format(time.RFC3339),
	}
	body, _ := json.Marshal(payload)

	resp, err := c.Client.Post(c.URL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("cobrança retornou status %d", resp.StatusCode)
	}
	return nil
}
