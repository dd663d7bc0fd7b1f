// Package telegram implements a notification channel posting transaction
// summaries to one or more Telegram chats.
package telegram

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mikey/gmail-finance-ingest/internal/core"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Channel delivers Markdown messages through a Telegram bot.
type Channel struct {
	bot     *tgbotapi.BotAPI
	chatIDs []int64
	logger  *zap.Logger
}

// NewChannel creates a Telegram channel for the given bot token and chat ids.
func NewChannel(botToken string, chatIDs []string, logger *zap.Logger) (*Channel, error) {
	if botToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	ids := make([]int64, 0, len(chatIDs))
	for _, raw := range chatIDs {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram chat id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one telegram chat id is required")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &Channel{
		bot:     bot,
		chatIDs: ids,
		logger:  logger,
	}, nil
}

// Name identifies the channel in logs.
func (c *Channel) Name() string {
	return "telegram"
}

// Notify announces a single recorded transaction to every configured chat.
// Delivery succeeds when at least one chat accepted the message.
func (c *Channel) Notify(ctx context.Context, tx *core.Transaction) error {
	return c.broadcast(formatTransaction(tx))
}

// NotifyBatch announces a batch summary to every configured chat.
func (c *Channel) NotifyBatch(ctx context.Context, count int, accountID string) error {
	return c.broadcast(formatBatch(count, accountID, time.Now()))
}

func (c *Channel) broadcast(text string) error {
	sent := 0
	for _, chatID := range c.chatIDs {
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := c.bot.Send(msg); err != nil {
			c.logger.Warn("Failed to send telegram message",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
			continue
		}
		sent++
	}
	if sent == 0 {
		return fmt.Errorf("telegram delivery failed for all %d chats", len(c.chatIDs))
	}
	c.logger.Debug("Sent telegram notification",
		zap.Int("delivered", sent),
		zap.Int("chats", len(c.chatIDs)))
	return nil
}

// formatTransaction renders the per-transaction message.
func formatTransaction(tx *core.Transaction) string {
	kind := "➕ Pemasukan"
	if tx.Amount < 0 {
		kind = "➖ Pengeluaran"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Ada %s baru nih*\n\n", kind)
	fmt.Fprintf(&b, "📅 Tanggal: %s\n", displayDate(tx.Date))
	fmt.Fprintf(&b, "💰 Jumlah: %s\n", formatAmount(tx.Amount))
	fmt.Fprintf(&b, "🏷️ Kategori: %s\n", tx.Category)
	if tx.Description != "" {
		fmt.Fprintf(&b, "📝 Deskripsi: %s\n", tx.Description)
	}
	fmt.Fprintf(&b, "\n📧 Sumber: Email dari %s", tx.AccountID)
	return b.String()
}

// formatBatch renders the summary message used above the batch threshold.
func formatBatch(count int, accountID string, now time.Time) string {
	var b strings.Builder
	b.WriteString("*📊 Update Transaksi Massal*\n\n")
	fmt.Fprintf(&b, "✅ %d transaksi baru telah ditambahkan ke spreadsheet\n", count)
	fmt.Fprintf(&b, "🕒 Waktu: %s\n", now.Format("02/01/2006 15:04:05"))
	fmt.Fprintf(&b, "📧 Sumber: Email dari %s", accountID)
	return b.String()
}

// formatAmount renders an amount as rupiah with thousands separators,
// keeping the sign in front of the currency symbol.
func formatAmount(amount float64) string {
	p := message.NewPrinter(language.English)
	grouped := p.Sprint(number.Decimal(math.Abs(amount), number.MaxFractionDigits(0)))
	if amount < 0 {
		return "-Rp " + grouped
	}
	return "Rp " + grouped
}

// displayDate converts YYYY-MM-DD to DD/MM/YYYY; anything else passes
// through unchanged.
func displayDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
