package unipile

// Account é uma conta conectada no broker. Name guarda o user_id local definido na criação.
type Account struct {
	Object    string          `json:"object"`
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Name      string          `json:"name"`
	CreatedAt string          `json:"created_at"`
	Status    string          `json:"status,omitempty"`
	Sources   []AccountSource `json:"sources"`
}

type AccountSource struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// CurrentStatus usa o status da primeira source; o campo status do topo é o fallback.
func (a Account) CurrentStatus() string {
	for _, s := range a.Sources {
		if s.Status != "" {
			return s.Status
		}
	}
	return a.Status
}

type HostedLinkInput struct {
	UserID             string
	NotifyURL          string
	SuccessRedirectURL string
}

type accountListResponse struct {
	Object string    `json:"object"`
	Items  []Account `json:"items"`
	Cursor *string   `json:"cursor"`
}

type hostedLinkRequest struct {
	Type               string   `json:"type"`
	Providers          []string `json:"providers"`
	APIURL             string   `json:"api_url"`
	ExpiresOn          string   `json:"expiresOn"`
	Name               string   `json:"name"`
	NotifyURL          string   `json:"notify_url,omitempty"`
	SuccessRedirectURL string   `json:"success_redirect_url,omitempty"`
}

type hostedLinkResponse struct {
	Object string `json:"object"`
	URL    string `json:"url"`
}
