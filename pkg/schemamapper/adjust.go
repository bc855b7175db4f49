// Copyright 2024-2026 Aiku AI

package schemamapper

import (
	"errors"
	"fmt"

	"github.com/vinceyyy/puppet-padlocal/pkg/msgparser"
	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

// QuoteSeparator sits between a quoted message and the reply.
const QuoteSeparator = "- - - - - - - - - - - - - - - -"

var errMissingReferMsg = errors.New("quote message has no refermsg")

// appDecodeResult is either a decoded app message or the reason decoding
// failed. The zero value means decoding was not attempted.
type appDecodeResult struct {
	payload *msgparser.AppMessagePayload
	err     error
}

// adjustment is the outward type of an app message sub-kind, plus an optional
// rewrite of text or filename.
type adjustment struct {
	typ    puppet.MessageType
	mutate func(p *puppet.MessagePayload, app *msgparser.AppMessagePayload)
}

var appMessageAdjustments = map[msgparser.AppMessageType]adjustment{
	msgparser.AppMessageTypeText:                  {puppet.MessageTypeText, setTextFromTitle},
	msgparser.AppMessageTypeAudio:                 {puppet.MessageTypeURL, nil},
	msgparser.AppMessageTypeVideo:                 {puppet.MessageTypeURL, nil},
	msgparser.AppMessageTypeURL:                   {puppet.MessageTypeURL, nil},
	msgparser.AppMessageTypeAttach:                {puppet.MessageTypeAttachment, setFilenameFromTitle},
	msgparser.AppMessageTypeChatHistory:           {puppet.MessageTypeChatHistory, nil},
	msgparser.AppMessageTypeMiniProgram:           {puppet.MessageTypeMiniProgram, nil},
	msgparser.AppMessageTypeMiniProgramApp:        {puppet.MessageTypeMiniProgram, nil},
	msgparser.AppMessageTypeRedEnvelopes:          {puppet.MessageTypeRedEnvelope, nil},
	msgparser.AppMessageTypeTransfers:             {puppet.MessageTypeTransfer, nil},
	msgparser.AppMessageTypeRealtimeShareLocation: {puppet.MessageTypeLocation, nil},
	msgparser.AppMessageTypeGroupNote:             {puppet.MessageTypeGroupNote, setTextFromTitle},
	msgparser.AppMessageTypeReferMsg:              {puppet.MessageTypeText, setQuoteText},
}

func setTextFromTitle(p *puppet.MessagePayload, app *msgparser.AppMessagePayload) {
	p.Text = app.Title
}

func setFilenameFromTitle(p *puppet.MessagePayload, app *msgparser.AppMessagePayload) {
	p.Filename = app.Title
}

func setQuoteText(p *puppet.MessagePayload, app *msgparser.AppMessagePayload) {
	p.Text = FormatQuote(app.ReferMsg.DisplayName, app.ReferMsg.Content, app.Title)
}

// FormatQuote renders a quote reply as the quoted sender and content in
// full-width brackets, a dashed separator line, and the reply title.
func FormatQuote(displayName, quoted, title string) string {
	return fmt.Sprintf("「%s：%s」\n%s\n%s", displayName, quoted, QuoteSeparator, title)
}

// validateAppMessage rejects payloads the adjuster cannot apply.
func validateAppMessage(app *msgparser.AppMessagePayload) error {
	if app == nil {
		return msgparser.ErrNoAppMsg
	}
	if app.Type == msgparser.AppMessageTypeReferMsg && app.ReferMsg == nil {
		return errMissingReferMsg
	}
	return nil
}

// adjust returns base rewritten according to its decoded app message. Only
// Attachment payloads with a successful decode are changed; unknown sub-kinds
// become Unknown.
func adjust(base puppet.MessagePayload, decoded appDecodeResult) puppet.MessagePayload {
	if base.Type != puppet.MessageTypeAttachment || decoded.err != nil || decoded.payload == nil {
		return base
	}

	adj, ok := appMessageAdjustments[decoded.payload.Type]
	if !ok {
		base.Type = puppet.MessageTypeUnknown
		return base
	}
	base.Type = adj.typ
	if adj.mutate != nil {
		adj.mutate(&base, decoded.payload)
	}
	return base
}
