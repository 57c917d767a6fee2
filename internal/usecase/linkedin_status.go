package usecase

import (
	"strings"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

// NormalizeAccountStatus é o mapeamento permissivo, usado no pull e no notify callback.
// Regras por substring, nessa ordem. Sem match vira CREATION_SUCCESS.
func NormalizeAccountStatus(raw string) entity.AccountStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case containsAny(s, "OK", "CONNECTED", "RUNNING"):
		return entity.AccountCreationSuccess
	case containsAny(s, "ERROR", "FAIL", "STOP"):
		return entity.AccountError
	case strings.Contains(s, "RECONNECT"):
		return entity.AccountReconnected
	case strings.Contains(s, "CONNECT"):
		return entity.AccountConnecting
	default:
		return entity.AccountCreationSuccess
	}
}

// NormalizeEnvelopeStatus é o mapeamento estrito do envelope AccountStatus.
// Valor sem correspondência exata passa adiante em caixa alta.
// Não unificar com NormalizeAccountStatus.
func NormalizeEnvelopeStatus(raw string) entity.AccountStatus {
	s := strings.ToUpper(strings.TrimSpace(raw))
	switch s {
	case "OK", "SYNC_SUCCESS":
		return entity.AccountCreationSuccess
	case "CREDENTIALS", "STOPPED", "ERROR":
		return entity.AccountError
	case "DELETED":
		return entity.AccountDeletion
	default:
		return entity.AccountStatus(s)
	}
}

// notifyStatus mantém o status do notify callback quando já é canônico.
func notifyStatus(raw string) entity.AccountStatus {
	s := entity.AccountStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if s.IsCanonical() {
		return s
	}
	return NormalizeAccountStatus(raw)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
