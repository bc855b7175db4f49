// Copyright 2024-2026 Aiku AI

// Package wechatfmt converts between WeChat plain text and Matrix message
// formatting.
//
// WeChat text carries no markup. The one structure worth rendering is the
// quote block produced for quote replies: the quoted sender and content in
// full-width brackets, a dashed separator line, then the reply.
package wechatfmt

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"maunium.net/go/mautrix/event"

	"github.com/vinceyyy/puppet-padlocal/pkg/schemamapper"
)

// ParsedMessage holds the result of converting WeChat text to Matrix format.
type ParsedMessage struct {
	Body          string
	Format        event.Format
	FormattedBody string
}

// Quote is a decoded quote block.
type Quote struct {
	Sender  string
	Content string
	Reply   string
}

var quoteRe = regexp.MustCompile(`(?s)^「([^：]*)：(.*)」\n` + regexp.QuoteMeta(schemamapper.QuoteSeparator) + `\n(.*)$`)

// ParseQuote extracts the quote block from text, if it has one.
func ParseQuote(text string) (Quote, bool) {
	m := quoteRe.FindStringSubmatch(text)
	if m == nil {
		return Quote{}, false
	}
	return Quote{Sender: m[1], Content: m[2], Reply: m[3]}, true
}

// Parse converts WeChat text to Matrix event content. Text without a quote
// block is returned unformatted.
func Parse(text string) *ParsedMessage {
	quote, ok := ParseQuote(text)
	if !ok {
		return &ParsedMessage{Body: text}
	}

	formatted := "<blockquote><strong>" + html.EscapeString(quote.Sender) + "</strong>: " +
		lineBreaks(html.EscapeString(quote.Content)) + "</blockquote>" +
		lineBreaks(html.EscapeString(quote.Reply))

	return &ParsedMessage{
		Body:          text,
		Format:        event.FormatHTML,
		FormattedBody: formatted,
	}
}

func lineBreaks(s string) string {
	return strings.ReplaceAll(s, "\n", "<br/>")
}

var (
	preRe        = regexp.MustCompile(`(?s)<pre><code[^>]*>(.*?)</code></pre>`)
	linkRe       = regexp.MustCompile(`<a href="([^"]+)"[^>]*>(.*?)</a>`)
	brRe         = regexp.MustCompile(`<br\s*/?>`)
	blockquoteRe = regexp.MustCompile(`(?s)<blockquote>(.*?)</blockquote>`)
	ulRe         = regexp.MustCompile(`(?s)<ul>(.*?)</ul>`)
	olRe         = regexp.MustCompile(`(?s)<ol>(.*?)</ol>`)
	liRe         = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	pRe          = regexp.MustCompile(`(?s)<p>(.*?)</p>`)
	mxReplyRe    = regexp.MustCompile(`(?s)<mx-reply>.*?</mx-reply>`)
	tagRe        = regexp.MustCompile(`<[^>]+>`)
)

// FromMatrix converts Matrix message content to WeChat plain text.
func FromMatrix(content *event.MessageEventContent) string {
	if content == nil {
		return ""
	}

	// If no HTML format, return plain text body.
	if content.Format != event.FormatHTML || content.FormattedBody == "" {
		return content.Body
	}

	text := mxReplyRe.ReplaceAllString(content.FormattedBody, "")

	text = preRe.ReplaceAllString(text, "$1")

	text = linkRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := linkRe.FindStringSubmatch(match)
		href, label := parts[1], tagRe.ReplaceAllString(parts[2], "")
		if label == "" || label == href || strings.TrimPrefix(href, "mailto:") == label {
			return href
		}
		return label + " (" + href + ")"
	})

	text = blockquoteRe.ReplaceAllStringFunc(text, func(match string) string {
		parts := blockquoteRe.FindStringSubmatch(match)
		return "「" + strings.TrimSpace(parts[1]) + "」\n"
	})

	text = ulRe.ReplaceAllStringFunc(text, func(match string) string {
		items := liRe.FindAllStringSubmatch(match, -1)
		var result []string
		for _, item := range items {
			result = append(result, "- "+strings.TrimSpace(item[1]))
		}
		return strings.Join(result, "\n") + "\n"
	})

	text = olRe.ReplaceAllStringFunc(text, func(match string) string {
		items := liRe.FindAllStringSubmatch(match, -1)
		var result []string
		for i, item := range items {
			result = append(result, strconv.Itoa(i+1)+". "+strings.TrimSpace(item[1]))
		}
		return strings.Join(result, "\n") + "\n"
	})

	text = pRe.ReplaceAllString(text, "$1\n\n")
	text = brRe.ReplaceAllString(text, "\n")

	// Strip remaining HTML tags, then decode entities.
	text = tagRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)

	return strings.TrimSpace(text)
}
