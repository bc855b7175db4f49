// Copyright 2024-2026 Aiku AI

package schemamapper

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/vinceyyy/puppet-padlocal/pkg/msgparser"
	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
)

// fakeRooms serves member lists from a map and records lookups.
type fakeRooms struct {
	mu      sync.Mutex
	members map[string][]string
	err     error
	calls   []string
}

func (f *fakeRooms) RoomMemberIDs(_ context.Context, roomID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, roomID)
	if f.err != nil {
		return nil, f.err
	}
	ids, ok := f.members[roomID]
	if !ok {
		return nil, errors.New("room not found")
	}
	return ids, nil
}

func (f *fakeRooms) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.calls...)
}

// failingParser fails every decode.
type failingParser struct{}

func (failingParser) ParseAppMessage(*padlocal.Message) (*msgparser.AppMessagePayload, error) {
	return nil, errors.New("decode failed")
}

func (failingParser) IsPatMessage(*padlocal.Message) bool { return true }

func (failingParser) ParsePatMessage(*padlocal.Message) (*msgparser.PatMessage, error) {
	return nil, msgparser.ErrMissingPatField
}

func newTestMapper(rooms RoomMembershipLookup, opts ...Option) *Mapper {
	return NewMapper(rooms, zerolog.Nop(), opts...)
}

func appMsgContent(appType msgparser.AppMessageType, inner string) string {
	return `<?xml version="1.0"?><msg><appmsg appid="" sdkver="0"><type>` +
		strconv.Itoa(int(appType)) + `</type>` + inner + `</appmsg></msg>`
}

const patContent = "19850419000@chatroom:\n<sysmsg type=\"pat\"><pat>" +
	"<fromusername>wxid_actor</fromusername>" +
	"<chatusername>19850419000@chatroom</chatusername>" +
	"<pattedusername>wxid_target</pattedusername>" +
	"<template><![CDATA[\"${wxid_actor}\" 拍了拍我]]></template>" +
	"</pat></sysmsg>"
