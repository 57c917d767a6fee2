package usecase

import (
	"net/url"
	"regexp"
	"strings"
)

const googleMapsSearchURL = "https://www.google.com/maps/search/?api=1&query="

var (
	embeddedURL  = regexp.MustCompile(`(?i)https?://[^\s"'<>]+`)
	hostnameLike = regexp.MustCompile(`(?i)(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\.)+[a-z]{2,}`)
)

// ExtractDomain tira o domínio (sem www.) de um texto com URL. Devolve "" se nada parecer host.
func ExtractDomain(raw string) string {
	s := Sanitize(raw)
	if s == "" {
		return ""
	}

	candidate := embeddedURL.FindString(s)
	if candidate == "" {
		candidate = "https://" + s
	}
	if host := hostnameOf(candidate); host != "" {
		return host
	}

	if m := hostnameLike.FindString(s); m != "" {
		return strings.TrimPrefix(strings.ToLower(m), "www.")
	}
	return ""
}

func hostnameOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	if !strings.Contains(host, ".") {
		return ""
	}
	return strings.TrimPrefix(host, "www.")
}

// GoogleMapsURL monta a busca do Maps a partir do endereço. Sem componentes, devolve "".
func GoogleMapsURL(address, city, state string) string {
	var parts []string
	for _, p := range []string{address, city, state} {
		if p = Sanitize(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}

	query := strings.Join(parts, ", ")
	query = strings.ReplaceAll(query, " ", "+")
	query = strings.ReplaceAll(query, ",", "%2C")
	return googleMapsSearchURL + query
}
