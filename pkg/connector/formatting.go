// Copyright 2024-2026 Aiku AI

package connector

import (
	"maunium.net/go/mautrix/event"

	"github.com/vinceyyy/puppet-padlocal/pkg/connector/wechatfmt"
)

// wechatfmtParse converts WeChat text to Matrix message content.
func wechatfmtParse(text string) *wechatfmt.ParsedMessage {
	return wechatfmt.Parse(text)
}

// wechatfmtFromMatrix converts Matrix message content to WeChat plain text.
func wechatfmtFromMatrix(content *event.MessageEventContent) string {
	return wechatfmt.FromMatrix(content)
}
