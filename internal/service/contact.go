package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"pydenweb/internal/mail"
)

// ContactRequest carries one contact-form submission. Project is optional.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Project string `json:"project"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactService relays visitor messages to the site mailbox.
type ContactService interface {
	Send(ctx context.Context, req ContactRequest) error
}

type contactService struct {
	mailer mail.Mailer
}

// NewContactService constructs a new ContactService.
func NewContactService(mailer mail.Mailer) ContactService {
	return &contactService{mailer: mailer}
}

func (s *contactService) Send(ctx context.Context, req ContactRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Project = strings.TrimSpace(req.Project)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Phone == "" || req.Subject == "" || req.Message == "" {
		return ErrMissingFields
	}

	msg := mail.Message{
		FromName: req.Name,
		ReplyTo:  req.Email,
		Subject:  req.Subject,
		Text:     contactText(req),
		HTML:     contactHTML(req),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("relay contact message: %w", err)
	}
	return nil
}

func contactText(req ContactRequest) string {
	return fmt.Sprintf(`Você recebeu uma nova mensagem do formulário de contato:

Nome: %s
Email: %s
Telefone: %s
Projeto: %s
Assunto: %s

Mensagem:
%s
`, req.Name, req.Email, req.Phone, req.Project, req.Subject, req.Message)
}

func contactHTML(req ContactRequest) string {
	e := html.EscapeString
	return fmt.Sprintf(`<p>Você recebeu uma nova mensagem do formulário de contato:</p>
<ul>
  <li><strong>Nome:</strong> %s</li>
  <li><strong>Email:</strong> %s</li>
  <li><strong>Telefone:</strong> %s</li>
  <li><strong>Projeto:</strong> %s</li>
  <li><strong>Assunto:</strong> %s</li>
</ul>
<p><strong>Mensagem:</strong></p>
<p>%s</p>`, e(req.Name), e(req.Email), e(req.Phone), e(req.Project), e(req.Subject), e(req.Message))
}
