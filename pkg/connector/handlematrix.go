// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"errors"
	"fmt"

	"maunium.net/go/mautrix/event"
)

// ErrUnsupportedMessageType is returned for Matrix content that cannot be
// sent to WeChat as text.
var ErrUnsupportedMessageType = errors.New("unsupported message type")

// PrepareOutgoingText converts Matrix message content to the plain text sent
// to WeChat. Only text, notice and emote messages are supported.
func PrepareOutgoingText(content *event.MessageEventContent) (string, error) {
	if content == nil {
		return "", fmt.Errorf("%w: empty content", ErrUnsupportedMessageType)
	}
	switch content.MsgType {
	case event.MsgText, event.MsgNotice:
		return wechatfmtFromMatrix(content), nil
	case event.MsgEmote:
		return "* " + wechatfmtFromMatrix(content), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMessageType, content.MsgType)
	}
}
