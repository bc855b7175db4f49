// Copyright 2024-2026 Aiku AI

package connector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"maunium.net/go/mautrix/bridgev2"
	"maunium.net/go/mautrix/bridgev2/simplevent"
	"maunium.net/go/mautrix/event"

	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

// mentionsExtraKey carries the mentioned WeChat usernames on a converted part.
const mentionsExtraKey = "fi.mau.wechat.mentions"

// Skip reasons reported to Metrics.MessagesSkipped.
const (
	skipReasonSelf     = "self"
	skipReasonNoSender = "no_sender"
)

// typeLabels holds the bracketed placeholder shown for non-text message types.
var typeLabels = map[puppet.MessageType]string{
	puppet.MessageTypeImage:       "Image",
	puppet.MessageTypeVideo:       "Video",
	puppet.MessageTypeAudio:       "Voice message",
	puppet.MessageTypeContact:     "Contact card",
	puppet.MessageTypeChatHistory: "Chat history",
	puppet.MessageTypeEmoticon:    "Sticker",
	puppet.MessageTypeLocation:    "Location",
	puppet.MessageTypeMiniProgram: "Mini program",
	puppet.MessageTypeGroupNote:   "Group note",
	puppet.MessageTypeTransfer:    "Transfer",
	puppet.MessageTypeRedEnvelope: "Red envelope",
	puppet.MessageTypeRecalled:    "Recalled",
	puppet.MessageTypeURL:         "Link",
}

// labelOnlyTypes are sent as a notice holding only the placeholder. Media is
// not downloaded, so there is no url for m.image, m.video or m.audio.
var labelOnlyTypes = map[puppet.MessageType]bool{
	puppet.MessageTypeImage:    true,
	puppet.MessageTypeVideo:    true,
	puppet.MessageTypeAudio:    true,
	puppet.MessageTypeRecalled: true,
}

// HandleMessage maps a raw message and queues it for its portal. Messages
// sent by this account and payloads without a resolvable sender are dropped.
// Mapping errors are logged, counted and returned.
func (c *WechatClient) HandleMessage(ctx context.Context, msg *padlocal.Message) error {
	if msg.FromUsername == c.selfUsername {
		c.log.Debug().Str("message_id", msg.ID).Msg("Skipping own message")
		c.metrics.MessagesSkipped.WithLabelValues(skipReasonSelf).Inc()
		return nil
	}

	payload, err := c.mapper.MessageToPayload(ctx, msg)
	if err != nil {
		c.log.Error().Err(err).
			Str("message_id", msg.ID).
			Str("from", msg.FromUsername).
			Msg("Failed to map message")
		c.metrics.MessagesFailed.Inc()
		return fmt.Errorf("failed to map message: %w", err)
	}
	if payload.FromID == "" {
		c.log.Debug().
			Str("message_id", payload.ID).
			Str("room_id", payload.RoomID).
			Msg("Skipping message without sender")
		c.metrics.MessagesSkipped.WithLabelValues(skipReasonNoSender).Inc()
		return nil
	}

	c.log.Debug().
		Str("message_id", payload.ID).
		Str("message_type", payload.Type.String()).
		Str("from_id", payload.FromID).
		Msg("Received new message")

	c.eventSender.QueueRemoteEvent(c.userLogin, &simplevent.Message[*puppet.MessagePayload]{
		EventMeta: simplevent.EventMeta{
			Type: bridgev2.RemoteEventMessage,
			LogContext: func(zc zerolog.Context) zerolog.Context {
				return zc.Str("message_id", payload.ID).Str("message_type", payload.Type.String())
			},
			PortalKey: portalKeyFor(payload),
			Sender: bridgev2.EventSender{
				Sender: MakeUserID(payload.FromID),
			},
			Timestamp:    time.Unix(int64(payload.Timestamp), 0),
			CreatePortal: true,
		},
		ID:   MakeMessageID(payload.ID),
		Data: payload,
		ConvertMessageFunc: func(ctx context.Context, portal *bridgev2.Portal, intent bridgev2.MatrixAPI, data *puppet.MessagePayload) (*bridgev2.ConvertedMessage, error) {
			return convertPayloadToMatrix(data), nil
		},
	})
	c.metrics.MessagesMapped.WithLabelValues(payload.Type.String()).Inc()
	return nil
}

// convertPayloadToMatrix converts a normalized payload to a single-part
// bridgev2.ConvertedMessage.
func convertPayloadToMatrix(payload *puppet.MessagePayload) *bridgev2.ConvertedMessage {
	part := &bridgev2.ConvertedMessagePart{
		Type:    event.EventMessage,
		Content: payloadContent(payload),
	}
	if len(payload.MentionIDList) > 0 {
		part.Extra = map[string]any{
			mentionsExtraKey: payload.MentionIDList,
		}
	}
	return &bridgev2.ConvertedMessage{
		Parts: []*bridgev2.ConvertedMessagePart{part},
	}
}

func payloadContent(payload *puppet.MessagePayload) *event.MessageEventContent {
	switch payload.Type {
	case puppet.MessageTypeText:
		parsed := wechatfmtParse(payload.Text)
		return &event.MessageEventContent{
			MsgType:       event.MsgText,
			Body:          parsed.Body,
			Format:        parsed.Format,
			FormattedBody: parsed.FormattedBody,
		}
	case puppet.MessageTypeAttachment:
		name := payload.Filename
		if name == "" {
			name = "file"
		}
		return &event.MessageEventContent{
			MsgType:  event.MsgFile,
			Body:     name,
			FileName: name,
		}
	}

	body := "[Unsupported message]"
	if label, ok := typeLabels[payload.Type]; ok {
		body = "[" + label + "]"
	}
	if !labelOnlyTypes[payload.Type] && payload.Text != "" {
		body += " " + payload.Text
	}
	return &event.MessageEventContent{
		MsgType: event.MsgNotice,
		Body:    body,
	}
}
