package usecase

import "strings"

// Valores que planilhas exportadas usam para "vazio".
var emptyMarkers = map[string]struct{}{
	"nan":       {},
	"null":      {},
	"undefined": {},
	"#n/a":      {},
	"n/a":       {},
}

// Sanitize aplica trim e zera os marcadores de célula vazia.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if _, ok := emptyMarkers[strings.ToLower(s)]; ok {
		return ""
	}
	return s
}
