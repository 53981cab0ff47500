package notifications

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/nicowave/aws-study-flashcards-app.com-sub000/domain"
)

// EmailServiceImpl implements domain.NotificationService over SMTP
type EmailServiceImpl struct {
	addr string
	auth smtp.Auth
	from string
}

// NewEmailService creates a new email notification service. With an empty
// addr the service logs instead of sending, which is the development default.
func NewEmailService(addr, username, password, from string) domain.NotificationService {
	var auth smtp.Auth
	if username != "" {
		host := addr
		if i := strings.IndexByte(addr, ':'); i > 0 {
			host = addr[:i]
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &EmailServiceImpl{addr: addr, auth: auth, from: from}
}

// SendVerificationEmail implements domain.NotificationService
func (s *EmailServiceImpl) SendVerificationEmail(to, verifyLink string) error {
	subject := "Verify your email address"
	body := fmt.Sprintf("Confirm your email to unlock cross-site sign-in:\r\n\r\n%s\r\n", verifyLink)

	if s.addr == "" {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s, Link: %s", to, subject, verifyLink)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", s.from, to, subject, body)
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}
	return nil
}
