// Package smtp implements a notification channel delivering plain-text
// transaction digests by email.
package smtp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"go.uber.org/zap"
)

// Channel sends notification mails through an SMTP relay.
type Channel struct {
	addr     string
	from     string
	to       []string
	username string
	password string
	logger   *zap.Logger
}

// NewChannel creates an SMTP channel. Username may be empty for relays that
// accept unauthenticated submission.
func NewChannel(addr, from string, to []string, username, password string, logger *zap.Logger) (*Channel, error) {
	if addr == "" || from == "" || len(to) == 0 {
		return nil, fmt.Errorf("smtp channel requires address, from and at least one recipient")
	}
	return &Channel{
		addr:     addr,
		from:     from,
		to:       to,
		username: username,
		password: password,
		logger:   logger,
	}, nil
}

// Name identifies the channel in logs.
func (c *Channel) Name() string {
	return "smtp"
}

// Notify mails a single transaction summary.
func (c *Channel) Notify(ctx context.Context, tx *core.Transaction) error {
	subject := fmt.Sprintf("Transaksi baru: %s %s", tx.Category, tx.Date)
	body := fmt.Sprintf(
		"Tanggal: %s\nJumlah: %.2f\nKategori: %s\nDeskripsi: %s\nSumber: %s\n",
		tx.Date, tx.Amount, tx.Category, tx.Description, tx.AccountID)
	return c.send(subject, body)
}

// NotifyBatch mails a batch summary.
func (c *Channel) NotifyBatch(ctx context.Context, count int, accountID string) error {
	subject := fmt.Sprintf("%d transaksi baru dari %s", count, accountID)
	body := fmt.Sprintf(
		"%d transaksi baru telah ditambahkan ke spreadsheet.\nWaktu: %s\nSumber: %s\n",
		count, time.Now().Format("2006-01-02 15:04:05"), accountID)
	return c.send(subject, body)
}

func (c *Channel) send(subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", c.from)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(c.to, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth sasl.Client
	if c.username != "" {
		auth = sasl.NewPlainClient("", c.username, c.password)
	}

	if err := gosmtp.SendMail(c.addr, auth, c.from, c.to, strings.NewReader(msg.String())); err != nil {
		return fmt.Errorf("failed to send digest mail: %w", err)
	}

	c.logger.Debug("Sent digest mail", zap.Int("recipients", len(c.to)))
	return nil
}
