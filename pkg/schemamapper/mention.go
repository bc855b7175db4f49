// Copyright 2024-2026 Aiku AI

package schemamapper

import (
	"context"
	"fmt"
	"slices"
)

// resolveMentions returns the mention list for a message. Direct messages
// never mention anyone. An at-list holding only the "@all" sentinel expands
// to the room's current member ids.
func (m *Mapper) resolveMentions(ctx context.Context, roomID string, atList []string) ([]string, error) {
	if roomID == "" {
		return []string{}, nil
	}

	if len(atList) == 1 && atList[0] == m.mentionAll && m.rooms != nil {
		members, err := m.rooms.RoomMemberIDs(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("failed to expand mention-all for room %s: %w", roomID, err)
		}
		return append([]string{}, members...), nil
	}

	if atList == nil {
		return []string{}, nil
	}
	return slices.Clone(atList), nil
}
