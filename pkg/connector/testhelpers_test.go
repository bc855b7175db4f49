// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"maunium.net/go/mautrix/bridgev2"
	"maunium.net/go/mautrix/bridgev2/database"
	"maunium.net/go/mautrix/bridgev2/networkid"
	"maunium.net/go/mautrix/bridgev2/simplevent"

	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
	"github.com/vinceyyy/puppet-padlocal/pkg/roomstore"
)

const (
	testSelf = "wxid_self"
	testRoom = "18888888888@chatroom"
)

// mockEventSender captures queued remote events for test assertions.
type mockEventSender struct {
	mu     sync.Mutex
	events []bridgev2.RemoteEvent
}

func (m *mockEventSender) QueueRemoteEvent(_ *bridgev2.UserLogin, evt bridgev2.RemoteEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
}

func (m *mockEventSender) Events() []bridgev2.RemoteEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]bridgev2.RemoteEvent, len(m.events))
	copy(cp, m.events)
	return cp
}

// newTestConfig returns the example config after PostProcess.
func newTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{
		DisplaynameTemplate: "{{or .Remark .Nickname .Username}} (WeChat)",
		MentionAll:          "announcement@all",
		ExpandMentionAll:    true,
	}
	if err := cfg.PostProcess(); err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	return cfg
}

// newTestClient creates a WechatClient wired to a mock sender and an
// in-memory room store.
func newTestClient(t *testing.T, cfg *Config) (*WechatClient, *mockEventSender, *roomstore.Memory) {
	t.Helper()
	if cfg == nil {
		cfg = newTestConfig(t)
	}
	sender := &mockEventSender{}
	rooms := roomstore.NewMemory()
	client := newWechatClient(cfg, testSelf, rooms, sender, NewMetrics(nil), zerolog.Nop())
	return client, sender, rooms
}

// onlyMessageEvent asserts that exactly one message event was queued and
// returns it.
func onlyMessageEvent(t *testing.T, sender *mockEventSender) *simplevent.Message[*puppet.MessagePayload] {
	t.Helper()
	events := sender.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	msg, ok := events[0].(*simplevent.Message[*puppet.MessagePayload])
	if !ok {
		t.Fatalf("expected *simplevent.Message[*puppet.MessagePayload], got %T", events[0])
	}
	return msg
}

// makeTestPortal creates a minimal bridgev2.Portal for testing.
func makeTestPortal(username string) *bridgev2.Portal {
	return &bridgev2.Portal{
		Portal: &database.Portal{
			PortalKey: networkid.PortalKey{
				ID: MakePortalID(username),
			},
		},
	}
}
