// Copyright 2024-2026 Aiku AI

package roomstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

// Memory is an in-process Store. Thread-safe.
type Memory struct {
	mu    sync.RWMutex
	rooms map[string]*puppet.RoomPayload
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{rooms: make(map[string]*puppet.RoomPayload)}
}

func (s *Memory) PutRoom(_ context.Context, room *puppet.RoomPayload) error {
	if room == nil || room.ID == "" {
		return errNoRoomID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = cloneRoom(room)
	return nil
}

func (s *Memory) Room(_ context.Context, roomID string) (*puppet.RoomPayload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[roomID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}
	return cloneRoom(room), nil
}

func (s *Memory) RoomMemberIDs(ctx context.Context, roomID string) ([]string, error) {
	room, err := s.Room(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return room.MemberIDList, nil
}

func (s *Memory) DeleteRoom(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
	return nil
}

// Len returns the number of stored rooms.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
