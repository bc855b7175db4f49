// Copyright 2024-2026 Aiku AI

package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/vinceyyy/puppet-padlocal/pkg/connector"
	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/roomstore"
	"github.com/vinceyyy/puppet-padlocal/pkg/schemamapper"
	"github.com/vinceyyy/puppet-padlocal/pkg/wxid"
)

// Record kinds accepted on input and echoed on output.
const (
	kindMessage = "message"
	kindRoom    = "room"
	kindContact = "contact"
	kindMember  = "member"
)

// maxRecordSize bounds a single input line. App message XML can be large.
const maxRecordSize = 4 << 20

var errUnknownKind = errors.New("unknown record kind")

type inputRecord struct {
	Kind   string          `json:"kind"`
	Record json.RawMessage `json:"record"`
}

type outputRecord struct {
	Kind    string `json:"kind"`
	Payload any    `json:"payload"`
}

type runStats struct {
	records int
	failed  int
}

// pipeline maps input records one line at a time.
type pipeline struct {
	mapper  *schemamapper.Mapper
	rooms   roomstore.Store
	metrics *connector.Metrics
	out     *json.Encoder
	log     zerolog.Logger
}

func newPipeline(mapper *schemamapper.Mapper, rooms roomstore.Store, metrics *connector.Metrics, out io.Writer, log zerolog.Logger) *pipeline {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &pipeline{
		mapper:  mapper,
		rooms:   rooms,
		metrics: metrics,
		out:     enc,
		log:     log.With().Str("component", "pipeline").Logger(),
	}
}

// run processes every line of r. Bad records are logged and skipped; only
// read, write and context errors stop the run.
func (p *pipeline) run(ctx context.Context, r io.Reader) (runStats, error) {
	var stats runStats
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		stats.records++

		out, err := p.handle(ctx, data)
		if err != nil {
			stats.failed++
			p.log.Warn().Err(err).Int("line", line).Msg("Skipping record")
			continue
		}
		if err := p.out.Encode(out); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read input: %w", err)
	}
	return stats, nil
}

func (p *pipeline) handle(ctx context.Context, data []byte) (*outputRecord, error) {
	var in inputRecord
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("invalid record: %w", err)
	}

	switch in.Kind {
	case kindMessage:
		var msg padlocal.Message
		if err := json.Unmarshal(in.Record, &msg); err != nil {
			return nil, fmt.Errorf("invalid message record: %w", err)
		}
		payload, err := p.mapper.MessageToPayload(ctx, &msg)
		if err != nil {
			p.metrics.MessagesFailed.Inc()
			return nil, err
		}
		p.metrics.MessagesMapped.WithLabelValues(payload.Type.String()).Inc()
		return &outputRecord{Kind: kindMessage, Payload: payload}, nil

	case kindRoom:
		var contact padlocal.Contact
		if err := json.Unmarshal(in.Record, &contact); err != nil {
			return nil, fmt.Errorf("invalid room record: %w", err)
		}
		if !wxid.IsAnyRoomID(contact.Username) {
			return nil, fmt.Errorf("%w: %q", connector.ErrNotRoom, contact.Username)
		}
		room := schemamapper.RoomToPayload(&contact)
		if err := p.rooms.PutRoom(ctx, room); err != nil {
			return nil, fmt.Errorf("failed to store room %s: %w", room.ID, err)
		}
		return &outputRecord{Kind: kindRoom, Payload: room}, nil

	case kindContact:
		var contact padlocal.Contact
		if err := json.Unmarshal(in.Record, &contact); err != nil {
			return nil, fmt.Errorf("invalid contact record: %w", err)
		}
		return &outputRecord{Kind: kindContact, Payload: schemamapper.ContactToPayload(&contact)}, nil

	case kindMember:
		var member padlocal.ChatRoomMember
		if err := json.Unmarshal(in.Record, &member); err != nil {
			return nil, fmt.Errorf("invalid member record: %w", err)
		}
		return &outputRecord{Kind: kindMember, Payload: schemamapper.RoomMemberToPayload(&member)}, nil

	default:
		return nil, fmt.Errorf("%w %q", errUnknownKind, in.Kind)
	}
}
