package utils

import (
	"fmt"
	"net/smtp"
)

// Mailer sends an HTML email. The SMTP implementation below is used in
// production, tests substitute a recording fake.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(host, port, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
	}
}

func (m *SMTPMailer) Send(to, subject, htmlBody string) error {
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		m.From,
		to,
		subject,
		htmlBody,
	)

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)

	err := smtp.SendMail(m.Host+":"+m.Port, auth, m.From, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
