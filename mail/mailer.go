// Package mail delivers contact-form submissions over SMTP. When no host
// or sender is configured the mailer degrades to a no-op so the rest of
// the server keeps working without outbound mail.
package mail

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/zyna-b/portfolio/internal/config"
)

// ContactMessage is a visitor submission from the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Mailer sends contact messages to the site owner.
type Mailer interface {
	SendContactMessage(msg ContactMessage) error
	Enabled() bool
}

type smtpMailer struct {
	cfg config.SMTPConfig
	log *slog.Logger
}

type noopMailer struct{}

func (noopMailer) SendContactMessage(ContactMessage) error { return nil }
func (noopMailer) Enabled() bool                           { return false }

// New builds a mailer from cfg, falling back to a no-op when Host, From,
// or the destination address is missing.
func New(cfg config.SMTPConfig, log *slog.Logger) Mailer {
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Port = strings.TrimSpace(cfg.Port)
	cfg.User = strings.TrimSpace(cfg.User)
	cfg.From = strings.TrimSpace(cfg.From)
	cfg.To = strings.TrimSpace(cfg.To)
	cfg.Security = strings.ToLower(strings.TrimSpace(cfg.Security))
	if cfg.Security == "" {
		cfg.Security = "starttls"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.Host == "" || cfg.From == "" || cfg.To == "" {
		log.Info("mailer disabled, contact submissions will only be logged")
		return noopMailer{}
	}
	log.Info("mailer enabled",
		slog.String("host", cfg.Host),
		slog.String("port", cfg.Port),
		slog.String("security", cfg.Security))
	return &smtpMailer{cfg: cfg, log: log}
}

func (m *smtpMailer) Enabled() bool { return true }

func (m *smtpMailer) SendContactMessage(msg ContactMessage) error {
	body := fmt.Sprintf("New contact form submission\n\nName: %s\nEmail: %s\nSubject: %s\n\n%s\n",
		msg.Name, msg.Email, msg.Subject, msg.Message)
	raw := buildMessage(m.cfg.From, m.cfg.To, msg.Email,
		"Portfolio contact: "+msg.Subject, body)

	switch m.cfg.Security {
	case "ssl", "smtps":
		return m.sendSSL(raw)
	case "none":
		return smtp.SendMail(m.addr(), m.auth(m.cfg.Host), m.cfg.From, []string{m.cfg.To}, raw)
	default:
		return m.sendStartTLS(raw)
	}
}

func (m *smtpMailer) addr() string {
	return net.JoinHostPort(m.cfg.Host, m.cfg.Port)
}

func (m *smtpMailer) auth(host string) smtp.Auth {
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return nil
	}
	return smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, host)
}

func (m *smtpMailer) sendStartTLS(raw []byte) error {
	addr := m.addr()
	host, _, _ := net.SplitHostPort(addr)

	client, err := smtp.Dial(addr)
	if err != nil {
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if auth := m.auth(host); auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	return m.submit(client, raw)
}

func (m *smtpMailer) sendSSL(raw []byte) error {
	conn, err := tls.Dial("tcp", m.addr(), &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth := m.auth(m.cfg.Host); auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	return m.submit(client, raw)
}

func (m *smtpMailer) submit(client *smtp.Client, raw []byte) error {
	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(m.cfg.To); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

func buildMessage(from, to, replyTo, subject, body string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	if replyTo != "" {
		fmt.Fprintf(&buf, "Reply-To: %s\r\n", replyTo)
	}
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")
	return buf.Bytes()
}
