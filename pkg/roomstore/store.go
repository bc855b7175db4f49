// Copyright 2024-2026 Aiku AI

// Package roomstore keeps the latest known state of rooms so that "@all"
// mentions can be expanded to the room's members.
package roomstore

import (
	"context"
	"errors"

	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

// ErrRoomNotFound is returned for rooms the store has never seen.
var ErrRoomNotFound = errors.New("room not found")

var errNoRoomID = errors.New("room payload has no id")

// Store persists room payloads. Implementations satisfy
// schemamapper.RoomMembershipLookup through RoomMemberIDs.
type Store interface {
	PutRoom(ctx context.Context, room *puppet.RoomPayload) error
	Room(ctx context.Context, roomID string) (*puppet.RoomPayload, error)
	RoomMemberIDs(ctx context.Context, roomID string) ([]string, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

func cloneRoom(room *puppet.RoomPayload) *puppet.RoomPayload {
	cp := *room
	cp.MemberIDList = append([]string{}, room.MemberIDList...)
	cp.AdminIDList = append([]string{}, room.AdminIDList...)
	return &cp
}
