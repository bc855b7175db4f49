// Copyright 2024-2026 Aiku AI

package schemamapper

import (
	"fmt"

	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
	"github.com/vinceyyy/puppet-padlocal/pkg/wxid"
)

// address is the resolved routing of a message.
type address struct {
	fromID string
	roomID string
	toID   string
	text   string
}

// resolveAddress works out sender, room or recipient, and text. Rules are
// applied in order and the first match wins.
func (m *Mapper) resolveAddress(msg *padlocal.Message) (address, error) {
	var addr address

	switch {
	case wxid.IsAnyRoomID(msg.FromUsername):
		addr.roomID = msg.FromUsername

		content := Disambiguate(msg.Content)
		switch content.Kind {
		case ContentPrefixed:
			addr.fromID = content.Prefix
			addr.text = content.Text
		case ContentSystemNotice:
			if pat := m.decodePat(msg); pat != nil {
				addr.fromID = pat.FromUsername
				addr.text = pat.Template
			}
		}

	case wxid.IsAnyRoomID(msg.ToUsername):
		addr.roomID = msg.ToUsername
		addr.fromID = msg.FromUsername
		addr.text = stripSenderPrefix(msg.Content)

	default:
		addr.fromID = msg.FromUsername
		addr.toID = msg.ToUsername
	}

	if addr.text == "" {
		addr.text = msg.Content
	}

	if addr.roomID == "" && addr.toID == "" {
		return addr, fmt.Errorf("message %s: %w", msg.ID, puppet.ErrNoAddressee)
	}
	return addr, nil
}
