package notify

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Sender delivers a single password-reset message. Implementations are called
// from dispatcher workers and must be safe for concurrent use.
type Sender interface {
	SendReset(recipient, token string) error
}

// SMTPSender delivers reset mail over plain SMTP.
type SMTPSender struct {
	addr string
	from string
}

func NewSMTPSender(addr, from string) *SMTPSender {
	return &SMTPSender{addr: addr, from: from}
}

func (s *SMTPSender) SendReset(recipient, token string) error {
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Réinitialisation de votre mot de passe\r\n\r\n"+
			"Utilisez ce code pour réinitialiser votre mot de passe (valable 1 heure) : %s\r\n",
		s.from, recipient, token,
	)
	if err := smtp.SendMail(s.addr, nil, s.from, []string{recipient}, []byte(body)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// LogSender records the delivery instead of sending it. Used in development,
// where no SMTP relay is configured.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendReset(recipient, token string) error {
	s.log.Info().Str("recipient", recipient).Str("token", token).Msg("password reset mail (log sender)")
	return nil
}
