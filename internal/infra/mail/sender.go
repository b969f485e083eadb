package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

//go:embed templates/*.html
var templatesFS embed.FS

var opportunityTmpl = template.Must(template.ParseFS(templatesFS, "templates/opportunity.html"))

var _ queue.OpportunityNotifier = (*EmailSender)(nil)

func NewEmailSender(host string, port int, user, password, from, notifyTo string) *EmailSender {
	return &EmailSender{
		From:     from,
		NotifyTo: notifyTo,
		Dialer:   gomail.NewDialer(host, port, user, password),
	}
}

// NotifyOpportunity manda o aviso de nova oportunidade pro time comercial.
func (s *EmailSender) NotifyOpportunity(_ context.Context, p queue.LeadConvertedPayload) error {
	m, err := s.BuildOpportunityMessage(p)
	if err != nil {
		return err
	}
	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) BuildOpportunityMessage(p queue.LeadConvertedPayload) (*gomail.Message, error) {
	data := OpportunityEmailData{
		OpportunityID: p.OpportunityID,
		Name:          p.Name,
		AccountName:   p.AccountName,
		Email:         p.Email,
		Source:        p.Source,
		Score:         p.Score,
		Stage:         p.Stage,
		ConvertedAt:   p.ConvertedAt.Format("02/01/2006 15:04"),
	}

	var body bytes.Buffer
	if err := opportunityTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.NotifyTo)
	m.SetHeader("Subject", fmt.Sprintf("Nova oportunidade: %s", p.Name))
	m.SetBody("text/html", body.String())
	return m, nil
}
