package mail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/gomail.v2"
)

const defaultTemplate = `Olá {{if .LeadName}}{{.LeadName}}{{else}}equipe {{.Company}}{{end}},

Gostaríamos de apresentar uma proposta para a {{.Company}}.`

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// Render executa o template do usuário; template vazio usa o padrão.
func Render(tmpl string, data CampaignEmailData) (string, error) {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = defaultTemplate
	}

	t, err := template.New("campaign").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("erro ao ler template de email: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

func (s *EmailSender) SendCampaign(to, subject, tmpl string, data CampaignEmailData) error {
	body, err := Render(tmpl, data)
	if err != nil {
		return err
	}

	if subject == "" {
		subject = fmt.Sprintf("Proposta para %s", data.Company)
	}

	if err := s.dialer.DialAndSend(s.message(to, subject, body)); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) message(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	return m
}
