package usecase

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/xavierca1/ligue-outreach/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateLeadPatch(p entity.LeadPatch) []ValidationError {
	var errors []ValidationError

	if p.Email != nil && strings.TrimSpace(*p.Email) != "" {
		if _, err := mail.ParseAddress(strings.TrimSpace(*p.Email)); err != nil {
			errors = append(errors, ValidationError{"email", "is invalid"})
		}
	}
	if p.Status != nil && !p.Status.IsValid() {
		errors = append(errors, ValidationError{"status", "must be one of researched, sent, replied, bounced, opened"})
	}
	if p.Company != nil && p.Email != nil &&
		strings.TrimSpace(*p.Company) == "" && strings.TrimSpace(*p.Email) == "" {
		errors = append(errors, ValidationError{"company", "company and email cannot both be empty"})
	}

	return errors
}

func ValidateSettings(s entity.Settings) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(s.UserID) == "" {
		errors = append(errors, ValidationError{"user_id", "is required"})
	}
	if s.WebhookURL != "" && !isValidHTTPURL(s.WebhookURL) {
		errors = append(errors, ValidationError{"webhook_url", "must be an http(s) URL"})
	}
	if s.LinkedInWebhookURL != "" && !isValidHTTPURL(s.LinkedInWebhookURL) {
		errors = append(errors, ValidationError{"linkedin_webhook_url", "must be an http(s) URL"})
	}

	return errors
}

func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}
