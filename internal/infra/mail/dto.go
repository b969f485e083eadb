package mail

import "gopkg.in/gomail.v2"

type OpportunityEmailData struct {
	OpportunityID string
	Name          string
	AccountName   string
	Email         string
	Source        string
	Score         int
	Stage         string
	ConvertedAt   string
}

// Dialer é o que o *gomail.Dialer oferece; trocado nos testes.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From     string
	NotifyTo string
	Dialer   Dialer
}
