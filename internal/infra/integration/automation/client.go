package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
)

// Client dispara os webhooks do motor de automação (n8n) configurados pelo usuário.
type Client struct {
	http *http.Client
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

type triggerRequest struct {
	TriggerID   string                 `json:"trigger_id"`
	UserID      string                 `json:"user_id"`
	Kind        string                 `json:"kind"`
	Params      map[string]interface{} `json:"params"`
	RequestedAt string                 `json:"requested_at"`
}

// Trigger faz o POST no webhook do trigger. Qualquer status fora de 2xx é erro.
func (c *Client) Trigger(ctx context.Context, t queue.WorkflowTrigger) error {
	if t.WebhookURL == "" {
		return fmt.Errorf("webhook não configurado para %s", t.Kind)
	}

	params := t.Params
	if params == nil {
		params = map[string]interface{}{}
	}

	body, err := json.Marshal(triggerRequest{
		TriggerID:   t.TriggerID,
		UserID:      t.UserID,
		Kind:        t.Kind,
		Params:      params,
		RequestedAt: t.RequestedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("erro ao serializar trigger: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar requisição: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Trigger-ID", t.TriggerID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao chamar webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook retornou status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// Dispatch entrega direto, sem fila. Usado quando o RabbitMQ não está configurado.
func (c *Client) Dispatch(ctx context.Context, t queue.WorkflowTrigger) error {
	return c.Trigger(ctx, t)
}
