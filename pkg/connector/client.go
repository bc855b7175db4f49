// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package connector

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"maunium.net/go/mautrix/bridgev2"
	"maunium.net/go/mautrix/bridgev2/networkid"

	"github.com/vinceyyy/puppet-padlocal/pkg/roomstore"
	"github.com/vinceyyy/puppet-padlocal/pkg/schemamapper"
	"github.com/vinceyyy/puppet-padlocal/pkg/wxid"
)

// remoteEventSender is an interface for queuing remote events. This allows
// tests to inject a mock instead of requiring a full bridgev2.Bridge.
type remoteEventSender interface {
	QueueRemoteEvent(login *bridgev2.UserLogin, evt bridgev2.RemoteEvent)
}

// bridgeEventSender is the production implementation that delegates to the bridge.
type bridgeEventSender struct {
	bridge *bridgev2.Bridge
}

func (b *bridgeEventSender) QueueRemoteEvent(login *bridgev2.UserLogin, evt bridgev2.RemoteEvent) {
	b.bridge.QueueRemoteEvent(login, evt)
}

// WechatClient projects one WeChat account's records onto Matrix.
type WechatClient struct {
	Config      *Config
	userLogin   *bridgev2.UserLogin
	eventSender remoteEventSender

	mapper  *schemamapper.Mapper
	rooms   roomstore.Store
	avatars *avatarDownloader
	metrics *Metrics

	selfUsername string
	log          zerolog.Logger
}

// NewWechatClient creates a client for an existing user login. The login ID
// is the account's own WeChat username.
func NewWechatClient(login *bridgev2.UserLogin, bridge *bridgev2.Bridge, cfg *Config, rooms roomstore.Store, metrics *Metrics) *WechatClient {
	log := login.Log.With().Str("component", "wechat_client").Logger()
	wc := newWechatClient(cfg, string(login.ID), rooms, &bridgeEventSender{bridge: bridge}, metrics, log)
	wc.userLogin = login
	return wc
}

func newWechatClient(cfg *Config, selfUsername string, rooms roomstore.Store, sender remoteEventSender, metrics *Metrics, log zerolog.Logger) *WechatClient {
	if rooms == nil {
		rooms = roomstore.NewMemory()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}

	return &WechatClient{
		Config:       cfg,
		eventSender:  sender,
		mapper:       NewMapper(cfg, rooms, metrics, log),
		rooms:        rooms,
		avatars:      newAvatarDownloader(cfg.avatarTimeout()),
		metrics:      metrics,
		selfUsername: selfUsername,
		log:          log,
	}
}

// NewMapper creates the schema mapper configured by cfg. Mention-all
// expansion reads from rooms only when enabled; decode failures are counted
// in metrics.
func NewMapper(cfg *Config, rooms roomstore.Store, metrics *Metrics, log zerolog.Logger) *schemamapper.Mapper {
	var lookup schemamapper.RoomMembershipLookup
	if cfg.ExpandMentionAll && rooms != nil {
		lookup = rooms
	}
	opts := cfg.MapperOptions()
	if metrics != nil {
		opts = append(opts, schemamapper.WithDecodeErrorHook(metrics.DecodeErrorHook()))
	}
	return schemamapper.NewMapper(lookup, log, opts...)
}

// OpenRoomStore builds the room store selected by the config.
func OpenRoomStore(ctx context.Context, cfg *Config) (roomstore.Store, error) {
	switch cfg.RoomCache.Backend {
	case RoomCacheRedis:
		store, err := roomstore.NewRedis(ctx, roomstore.RedisOptions{
			Addr:     cfg.RoomCache.RedisAddr,
			Password: cfg.RoomCache.RedisPassword,
			DB:       cfg.RoomCache.RedisDB,
			TTL:      cfg.RoomCacheTTL(),
		})
		if err != nil {
			return nil, fmt.Errorf("open redis room store: %w", err)
		}
		return store, nil
	default:
		return roomstore.NewMemory(), nil
	}
}

// IsThisUser reports whether userID is the logged-in account.
func (c *WechatClient) IsThisUser(_ context.Context, userID networkid.UserID) bool {
	return ParseUserID(userID) == c.selfUsername
}

// GetChatInfo builds chat info for a portal. Rooms come from the room store;
// any other portal is a direct chat with that contact.
func (c *WechatClient) GetChatInfo(ctx context.Context, portal *bridgev2.Portal) (*bridgev2.ChatInfo, error) {
	username := ParsePortalID(portal.ID)
	if !wxid.IsAnyRoomID(username) {
		return c.directChatInfo(username), nil
	}
	room, err := c.rooms.Room(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get room info: %w", err)
	}
	return c.roomToChatInfo(room, nil), nil
}
