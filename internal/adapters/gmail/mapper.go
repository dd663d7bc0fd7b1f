package gmail

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/mikey/gmail-finance-ingest/internal/core"
	"github.com/mikey/gmail-finance-ingest/internal/utils"
	gmailapi "google.golang.org/api/gmail/v1"
)

// mapMessage converts a Gmail API Message to a core.Message with the body
// decoded. Plain text is preferred; HTML is stripped to text only when no
// plain part exists.
func mapMessage(msg *gmailapi.Message, accountID string) core.Message {
	var headers []*gmailapi.MessagePartHeader
	if msg.Payload != nil {
		headers = msg.Payload.Headers
	}

	text, html := extractBody(msg.Payload)
	body := text
	if body == "" && html != "" {
		body = utils.StripHTML(html)
	}

	return core.Message{
		ID:        msg.Id,
		AccountID: accountID,
		From:      findHeader(headers, "From"),
		Subject:   findHeader(headers, "Subject"),
		Body:      body,
		Date:      parseDate(findHeader(headers, "Date")),
	}
}

// findHeader performs a case-insensitive lookup for a header value.
func findHeader(headers []*gmailapi.MessagePartHeader, name string) string {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// parseDate tries the date formats commonly used in email headers.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"2 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// extractBody recursively extracts text/plain and text/html content from a
// message payload.
func extractBody(payload *gmailapi.MessagePart) (text, html string) {
	if payload == nil {
		return "", ""
	}

	if len(payload.Parts) > 0 {
		for _, part := range payload.Parts {
			t, h := extractBody(part)
			if text == "" && t != "" {
				text = t
			}
			if html == "" && h != "" {
				html = h
			}
		}
		return text, html
	}

	data := ""
	if payload.Body != nil {
		data = decodeBase64URL(payload.Body.Data)
	}

	switch payload.MimeType {
	case "text/plain":
		return data, ""
	case "text/html":
		return "", data
	}
	return "", ""
}

// decodeBase64URL decodes Gmail's URL-safe base64 encoded strings (without padding).
func decodeBase64URL(s string) string {
	if s == "" {
		return ""
	}
	data, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(s)
	if err != nil {
		return ""
	}
	return string(data)
}
