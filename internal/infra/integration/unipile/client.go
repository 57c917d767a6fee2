package unipile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrAccountNotFound = errors.New("conta não encontrada no broker")

const hostedLinkTTL = time.Hour

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// ListAccounts: GET /accounts, seguindo o cursor até a última página.
func (c *Client) ListAccounts(ctx context.Context) ([]Account, error) {
	var (
		accounts []Account
		cursor   string
		seen     = map[string]bool{}
	)
	for {
		path := "/accounts"
		if cursor != "" {
			path += "?cursor=" + url.QueryEscape(cursor)
		}

		var out accountListResponse
		if err := c.get(ctx, path, &out); err != nil {
			return nil, err
		}
		accounts = append(accounts, out.Items...)

		if out.Cursor == nil || *out.Cursor == "" {
			return accounts, nil
		}
		if seen[*out.Cursor] {
			return nil, fmt.Errorf("cursor repetido na listagem de contas: %s", *out.Cursor)
		}
		seen[*out.Cursor] = true
		cursor = *out.Cursor
	}
}

// GetAccount: GET /accounts/{id}
func (c *Client) GetAccount(ctx context.Context, id string) (*Account, error) {
	var out Account
	if err := c.get(ctx, "/accounts/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateHostedLink gera o link de conexão. O name leva o user_id para o reconciliador achar o dono depois.
func (c *Client) CreateHostedLink(ctx context.Context, input HostedLinkInput) (string, error) {
	payload := hostedLinkRequest{
		Type:               "create",
		Providers:          []string{"LINKEDIN"},
		APIURL:             apiRoot(c.baseURL),
		ExpiresOn:          c.now().UTC().Add(hostedLinkTTL).Format("2006-01-02T15:04:05.000Z"),
		Name:               input.UserID,
		SuccessRedirectURL: input.SuccessRedirectURL,
	}
	if CallbackReachable(input.NotifyURL) {
		payload.NotifyURL = input.NotifyURL
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar json: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/hosted/accounts/link", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro na conexão com broker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("broker rejeitou link (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out hostedLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("erro ao ler resposta do broker: %w", err)
	}
	if out.URL == "" {
		return "", errors.New("broker não devolveu url")
	}
	return out.URL, nil
}

func (c *Client) get(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro na conexão com broker: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrAccountNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("broker respondeu %d em %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("erro ao ler resposta do broker: %w", err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

// apiRoot tira o sufixo /api/v1 da base.
func apiRoot(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/api/v1")
}

// CallbackReachable é falso para URL vazia, inválida ou que aponta para loopback.
func CallbackReachable(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}

	host := strings.ToLower(u.Hostname())
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return false
	}
	if ip := net.ParseIP(host); ip != nil && (ip.IsLoopback() || ip.IsUnspecified()) {
		return false
	}
	return true
}
