// Copyright 2024-2026 Aiku AI

package schemamapper

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/vinceyyy/puppet-padlocal/pkg/msgparser"
	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

// DefaultMentionAll is the at-list sentinel meaning "everyone in the room".
const DefaultMentionAll = "announcement@all"

// RoomMembershipLookup returns the current member ids of a room.
type RoomMembershipLookup interface {
	RoomMemberIDs(ctx context.Context, roomID string) ([]string, error)
}

// PayloadParser decodes the structured payloads embedded in message content.
// msgparser.Parser is the production implementation.
type PayloadParser interface {
	ParseAppMessage(msg *padlocal.Message) (*msgparser.AppMessagePayload, error)
	IsPatMessage(msg *padlocal.Message) bool
	ParsePatMessage(msg *padlocal.Message) (*msgparser.PatMessage, error)
}

// DecodeStage names the decoder that failed in a DecodeErrorHook call.
type DecodeStage string

const (
	DecodeStagePat    DecodeStage = "pat"
	DecodeStageAppMsg DecodeStage = "appmsg"
)

// DecodeErrorHook is called for every absorbed decode failure, after it has
// been logged.
type DecodeErrorHook func(stage DecodeStage, msg *padlocal.Message, err error)

// Mapper converts PadLocal messages to puppet payloads. It holds no per-message
// state and is safe for concurrent use.
type Mapper struct {
	rooms      RoomMembershipLookup
	parser     PayloadParser
	mentionAll string
	onDecode   DecodeErrorHook
	log        zerolog.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithParser replaces the embedded payload decoders.
func WithParser(p PayloadParser) Option {
	return func(m *Mapper) { m.parser = p }
}

// WithMentionAll overrides the "@all" sentinel. An empty value is ignored.
func WithMentionAll(sentinel string) Option {
	return func(m *Mapper) {
		if sentinel != "" {
			m.mentionAll = sentinel
		}
	}
}

// WithDecodeErrorHook registers a callback for absorbed decode failures.
func WithDecodeErrorHook(hook DecodeErrorHook) Option {
	return func(m *Mapper) { m.onDecode = hook }
}

// NewMapper creates a Mapper. rooms may be nil, in which case the "@all"
// sentinel is passed through unexpanded.
func NewMapper(rooms RoomMembershipLookup, log zerolog.Logger, opts ...Option) *Mapper {
	m := &Mapper{
		rooms:      rooms,
		parser:     msgparser.Parser{},
		mentionAll: DefaultMentionAll,
		log:        log.With().Str("component", "schema_mapper").Logger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MessageToPayload converts msg into a normalized payload. It fails only when
// the message has neither a room nor a direct recipient, or when expanding an
// "@all" mention fails.
func (m *Mapper) MessageToPayload(ctx context.Context, msg *padlocal.Message) (*puppet.MessagePayload, error) {
	provisional := msgparser.ConvertMessageType(msg.Type)

	addr, err := m.resolveAddress(msg)
	if err != nil {
		return nil, err
	}

	var (
		mentions []string
		decoded  appDecodeResult
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mentions, err = m.resolveMentions(gctx, addr.roomID, msg.AtList)
		return err
	})
	if provisional == puppet.MessageTypeAttachment {
		g.Go(func() error {
			decoded = m.decodeApp(msg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	base := puppet.MessagePayload{
		ID:            msg.ID,
		Timestamp:     msg.CreateTime,
		Type:          provisional,
		FromID:        addr.fromID,
		RoomID:        addr.roomID,
		ToID:          addr.toID,
		Text:          addr.text,
		MentionIDList: mentions,
	}

	final := adjust(base, decoded)
	return &final, nil
}

// decodePat returns the pat notification embedded in msg, or nil if there is
// none or it could not be parsed.
func (m *Mapper) decodePat(msg *padlocal.Message) *msgparser.PatMessage {
	if !m.parser.IsPatMessage(msg) {
		return nil
	}
	pat, err := m.parser.ParsePatMessage(msg)
	if err != nil {
		m.reportDecodeError(DecodeStagePat, msg, err)
		return nil
	}
	return pat
}

// decodeApp parses the app message in msg. Failures are reported and carried
// in the result rather than returned.
func (m *Mapper) decodeApp(msg *padlocal.Message) appDecodeResult {
	payload, err := m.parser.ParseAppMessage(msg)
	if err == nil {
		err = validateAppMessage(payload)
	}
	if err != nil {
		m.reportDecodeError(DecodeStageAppMsg, msg, err)
		return appDecodeResult{err: err}
	}
	return appDecodeResult{payload: payload}
}

func (m *Mapper) reportDecodeError(stage DecodeStage, msg *padlocal.Message, err error) {
	m.log.Warn().Err(err).
		Str("stage", string(stage)).
		Str("message_id", msg.ID).
		Interface("message", msg).
		Msg("Failed to decode embedded payload, keeping message as-is")
	if m.onDecode != nil {
		m.onDecode(stage, msg, err)
	}
}
