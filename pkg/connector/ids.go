// Copyright 2024-2026 Aiku AI

package connector

import (
	"maunium.net/go/mautrix/bridgev2/networkid"

	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

// MakePortalID creates a networkid.PortalID from a WeChat room or contact username.
func MakePortalID(username string) networkid.PortalID {
	return networkid.PortalID(username)
}

// ParsePortalID extracts the WeChat username from a PortalID.
func ParsePortalID(portalID networkid.PortalID) string {
	return string(portalID)
}

// MakeUserID creates a networkid.UserID from a WeChat username.
func MakeUserID(username string) networkid.UserID {
	return networkid.UserID(username)
}

// ParseUserID extracts the WeChat username from a networkid.UserID.
func ParseUserID(userID networkid.UserID) string {
	return string(userID)
}

// MakeMessageID creates a networkid.MessageID from a WeChat message ID.
func MakeMessageID(msgID string) networkid.MessageID {
	return networkid.MessageID(msgID)
}

// ParseMessageID extracts the WeChat message ID from a MessageID.
func ParseMessageID(messageID networkid.MessageID) string {
	return string(messageID)
}

// makePortalKey creates a networkid.PortalKey from a WeChat username.
func makePortalKey(username string) networkid.PortalKey {
	return networkid.PortalKey{
		ID: MakePortalID(username),
	}
}

// portalKeyFor returns the portal a payload belongs to: its room, or the
// sender for a direct message. Messages sent by this account never reach it.
func portalKeyFor(payload *puppet.MessagePayload) networkid.PortalKey {
	if payload.RoomID != "" {
		return makePortalKey(payload.RoomID)
	}
	return makePortalKey(payload.FromID)
}
