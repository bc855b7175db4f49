// Copyright 2024-2026 Aiku AI

package puppet

import (
	"errors"
	"strconv"
)

// MessageType is the normalized, outward-facing message type.
type MessageType int

const (
	MessageTypeUnknown MessageType = iota
	MessageTypeAttachment
	MessageTypeAudio
	MessageTypeContact
	MessageTypeChatHistory
	MessageTypeEmoticon
	MessageTypeImage
	MessageTypeText
	MessageTypeLocation
	MessageTypeMiniProgram
	MessageTypeGroupNote
	MessageTypeTransfer
	MessageTypeRedEnvelope
	MessageTypeRecalled
	MessageTypeURL
	MessageTypeVideo
)

var messageTypeNames = [...]string{
	MessageTypeUnknown:     "unknown",
	MessageTypeAttachment:  "attachment",
	MessageTypeAudio:       "audio",
	MessageTypeContact:     "contact",
	MessageTypeChatHistory: "chat_history",
	MessageTypeEmoticon:    "emoticon",
	MessageTypeImage:       "image",
	MessageTypeText:        "text",
	MessageTypeLocation:    "location",
	MessageTypeMiniProgram: "mini_program",
	MessageTypeGroupNote:   "group_note",
	MessageTypeTransfer:    "transfer",
	MessageTypeRedEnvelope: "red_envelope",
	MessageTypeRecalled:    "recalled",
	MessageTypeURL:         "url",
	MessageTypeVideo:       "video",
}

func (t MessageType) String() string {
	if t >= 0 && int(t) < len(messageTypeNames) {
		return messageTypeNames[t]
	}
	return "MessageType(" + strconv.Itoa(int(t)) + ")"
}

// ErrNoAddressee is returned when a message resolves to neither a room nor a
// direct recipient.
var ErrNoAddressee = errors.New("neither toId nor roomId")

// ErrNoSender is returned when a message payload has no sender.
var ErrNoSender = errors.New("message has no fromId")

// MessagePayload is a normalized message.
//
// FromID is mandatory. RoomID is set for group messages and ToID for direct
// messages; at least one of them is always present.
type MessagePayload struct {
	ID            string      `json:"id"`
	Timestamp     uint64      `json:"timestamp"`
	Type          MessageType `json:"type"`
	FromID        string      `json:"fromId,omitempty"`
	RoomID        string      `json:"roomId,omitempty"`
	ToID          string      `json:"toId,omitempty"`
	Text          string      `json:"text,omitempty"`
	MentionIDList []string    `json:"mentionIdList"`
	Filename      string      `json:"filename,omitempty"`
}

// IsGroup reports whether the message was sent in a room.
func (p *MessagePayload) IsGroup() bool {
	return p.RoomID != ""
}

// CheckAddressee returns ErrNoAddressee if neither RoomID nor ToID is set.
func (p *MessagePayload) CheckAddressee() error {
	if p.RoomID == "" && p.ToID == "" {
		return ErrNoAddressee
	}
	return nil
}

// Validate checks that the payload has both a sender and an addressee.
func (p *MessagePayload) Validate() error {
	if err := p.CheckAddressee(); err != nil {
		return err
	}
	if p.FromID == "" {
		return ErrNoSender
	}
	return nil
}
