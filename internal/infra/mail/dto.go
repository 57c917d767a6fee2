package mail

import "gopkg.in/gomail.v2"

// CampaignEmailData são os campos disponíveis no template de email do usuário.
type CampaignEmailData struct {
	LeadName string
	Company  string
	Industry string
	City     string
	Campaign string
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dialer dialer
}
