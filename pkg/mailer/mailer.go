package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
)

// Credentials are the per-user SMTP settings used for outbound mail.
type Credentials struct {
	Host     string
	Port     int
	User     string
	Password string
	UseTLS   bool
}

// Message is one outbound email.
type Message struct {
	To      string
	CC      []string
	BCC     []string
	Subject string
	Body    string
}

// Mailer sends mail over user-supplied SMTP credentials.
type Mailer interface {
	Send(creds Credentials, msg Message) error
	TestConnection(creds Credentials) error
}

type smtpMailer struct{}

func New() Mailer {
	return &smtpMailer{}
}

func (m *smtpMailer) Send(creds Credentials, msg Message) error {
	recipients := make([]string, 0, 1+len(msg.CC)+len(msg.BCC))
	recipients = append(recipients, msg.To)
	recipients = append(recipients, msg.CC...)
	recipients = append(recipients, msg.BCC...)

	raw := buildMIME(creds.User, msg)

	auth := smtp.PlainAuth("", creds.User, creds.Password, creds.Host)
	addr := fmt.Sprintf("%s:%d", creds.Host, creds.Port)

	if creds.UseTLS && creds.Port == 465 {
		return sendImplicitTLS(addr, creds, auth, recipients, raw)
	}

	// Port 587 path: smtp.SendMail negotiates STARTTLS when the server
	// advertises it.
	if err := smtp.SendMail(addr, auth, creds.User, recipients, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *smtpMailer) TestConnection(creds Credentials) error {
	addr := fmt.Sprintf("%s:%d", creds.Host, creds.Port)

	if creds.UseTLS && creds.Port == 465 {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: creds.Host})
		if err != nil {
			return fmt.Errorf("failed to connect to %s: %w", addr, err)
		}
		client, err := smtp.NewClient(conn, creds.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to open SMTP session: %w", err)
		}
		defer client.Close()
		return authenticate(client, creds)
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer client.Close()

	if creds.UseTLS {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(&tls.Config{ServerName: creds.Host}); err != nil {
				return fmt.Errorf("STARTTLS failed: %w", err)
			}
		}
	}
	return authenticate(client, creds)
}

func authenticate(client *smtp.Client, creds Credentials) error {
	auth := smtp.PlainAuth("", creds.User, creds.Password, creds.Host)
	if ok, _ := client.Extension("AUTH"); ok {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}
	return client.Quit()
}

func sendImplicitTLS(addr string, creds Credentials, auth smtp.Auth, recipients []string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: creds.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	client, err := smtp.NewClient(conn, creds.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open SMTP session: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err := client.Mail(creds.User); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("RCPT TO %s failed: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish message body: %w", err)
	}
	return client.Quit()
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	if len(msg.CC) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(msg.CC, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}
