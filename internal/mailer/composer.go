// Package mailer hands finished documents off to email. The export flow
// treats mail as best effort: a failed send never invalidates the PDF that
// was already composed.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

var ErrNoRecipients = errors.New("no recipients configured")

// Attachment is a file carried by an outgoing message.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Composer sends a message with attachments to the configured recipients.
type Composer interface {
	Compose(ctx context.Context, subject string, body string, attachments []Attachment) error
}

// Config holds SMTP settings for the default composer.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// smtpComposer is a concrete Composer backed by net/smtp.
type smtpComposer struct {
	cfg Config
}

// NewSMTP constructs a Composer that submits messages over SMTP with
// PLAIN auth when credentials are set.
func NewSMTP(cfg Config) Composer {
	return &smtpComposer{cfg: cfg}
}

func (m *smtpComposer) Compose(ctx context.Context, subject string, body string, attachments []Attachment) error {
	if len(m.cfg.To) == 0 {
		return ErrNoRecipients
	}
	msg := buildMessage(m.cfg.From, m.cfg.To, subject, body, attachments)

	// net/smtp has no context support; honor cancellation before dialing.
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, m.cfg.To, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

const mimeBoundary = "procdocs-mime-boundary"

// buildMessage assembles a multipart/mixed MIME message with a plain text
// body followed by base64-encoded attachments.
func buildMessage(from string, to []string, subject string, body string, attachments []Attachment) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&buf, "Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mimeBoundary)
	buf.WriteString("\r\n")

	fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
	buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	buf.WriteString(body)
	buf.WriteString("\r\n")

	for _, a := range attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		fmt.Fprintf(&buf, "--%s\r\n", mimeBoundary)
		fmt.Fprintf(&buf, "Content-Type: %s\r\n", ct)
		buf.WriteString("Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", a.Filename)

		enc := base64.StdEncoding.EncodeToString(a.Data)
		// RFC 2045 line length limit.
		for len(enc) > 76 {
			buf.WriteString(enc[:76])
			buf.WriteString("\r\n")
			enc = enc[76:]
		}
		buf.WriteString(enc)
		buf.WriteString("\r\n")
	}
	fmt.Fprintf(&buf, "--%s--\r\n", mimeBoundary)

	return buf.Bytes()
}

// nopComposer accepts every message without sending. Used when no SMTP
// host is configured.
type nopComposer struct{}

// NewNop constructs a Composer that silently discards messages.
func NewNop() Composer {
	return nopComposer{}
}

func (nopComposer) Compose(ctx context.Context, subject string, body string, attachments []Attachment) error {
	return nil
}
