// Copyright 2024-2026 Aiku AI

package connector

import (
	"context"
	"errors"
	"fmt"

	"maunium.net/go/mautrix/bridgev2"
	"maunium.net/go/mautrix/bridgev2/database"
	"maunium.net/go/mautrix/bridgev2/networkid"
	"maunium.net/go/mautrix/event"

	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
	"github.com/vinceyyy/puppet-padlocal/pkg/schemamapper"
	"github.com/vinceyyy/puppet-padlocal/pkg/wxid"
)

// ownerPowerLevel is granted to the room owner.
const ownerPowerLevel = 100

// ErrNotRoom is returned when a room record does not carry a room username.
var ErrNotRoom = errors.New("not a room record")

// HandleRoom projects a room record, stores its membership snapshot and
// returns the chat info for its portal.
func (c *WechatClient) HandleRoom(ctx context.Context, contact *padlocal.Contact) (*bridgev2.ChatInfo, error) {
	if contact == nil || !wxid.IsAnyRoomID(contact.Username) {
		return nil, ErrNotRoom
	}
	room := schemamapper.RoomToPayload(contact)
	if err := c.rooms.PutRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to store room %s: %w", room.ID, err)
	}
	c.log.Debug().
		Str("room_id", room.ID).
		Int("members", len(room.MemberIDList)).
		Msg("Stored room snapshot")
	return c.roomToChatInfo(room, contact.ChatRoomMemberList), nil
}

// HandleContact projects a contact record to ghost user info.
func (c *WechatClient) HandleContact(contact *padlocal.Contact) *bridgev2.UserInfo {
	return c.contactToUserInfo(schemamapper.ContactToPayload(contact))
}

// roomToChatInfo converts a room payload to a bridgev2.ChatInfo. Member
// records, when given, supply per-room nicknames and ghost info.
func (c *WechatClient) roomToChatInfo(room *puppet.RoomPayload, members []*padlocal.ChatRoomMember) *bridgev2.ChatInfo {
	details := make(map[string]*puppet.RoomMemberPayload, len(members))
	for _, member := range members {
		if member == nil {
			continue
		}
		details[member.Username] = schemamapper.RoomMemberToPayload(member)
	}

	memberMap := make(map[networkid.UserID]bridgev2.ChatMember, len(room.MemberIDList))
	for _, memberID := range room.MemberIDList {
		chatMember := bridgev2.ChatMember{
			EventSender: bridgev2.EventSender{
				Sender:   MakeUserID(memberID),
				IsFromMe: memberID == c.selfUsername,
			},
			Membership: event.MembershipJoin,
		}
		if memberID == room.OwnerID {
			pl := ownerPowerLevel
			chatMember.PowerLevel = &pl
		}
		if detail, ok := details[memberID]; ok {
			if detail.RoomAlias != "" {
				alias := detail.RoomAlias
				chatMember.Nickname = &alias
			}
			chatMember.UserInfo = c.roomMemberToUserInfo(detail)
		}
		memberMap[MakeUserID(memberID)] = chatMember
	}

	roomType := database.RoomTypeGroupDM
	chatInfo := &bridgev2.ChatInfo{
		Type: &roomType,
		Members: &bridgev2.ChatMemberList{
			IsFull:           true,
			TotalMemberCount: len(room.MemberIDList),
			MemberMap:        memberMap,
		},
		Avatar: c.avatars.avatar(room.Avatar),
	}
	if room.Topic != "" {
		name := room.Topic
		chatInfo.Name = &name
	}
	return chatInfo
}

// directChatInfo returns the chat info for a one-to-one chat with username.
func (c *WechatClient) directChatInfo(username string) *bridgev2.ChatInfo {
	dmType := database.RoomTypeDM
	other := MakeUserID(username)
	memberMap := map[networkid.UserID]bridgev2.ChatMember{
		other: {
			EventSender: bridgev2.EventSender{Sender: other},
			Membership:  event.MembershipJoin,
		},
	}
	if c.selfUsername != "" {
		self := MakeUserID(c.selfUsername)
		memberMap[self] = bridgev2.ChatMember{
			EventSender: bridgev2.EventSender{Sender: self, IsFromMe: true},
			Membership:  event.MembershipJoin,
		}
	}
	return &bridgev2.ChatInfo{
		Type: &dmType,
		Members: &bridgev2.ChatMemberList{
			IsFull:           true,
			TotalMemberCount: len(memberMap),
			OtherUserID:      other,
			MemberMap:        memberMap,
		},
	}
}

// contactToUserInfo converts a contact payload to a bridgev2.UserInfo.
func (c *WechatClient) contactToUserInfo(contact *puppet.ContactPayload) *bridgev2.UserInfo {
	name := c.Config.FormatDisplayname(DisplaynameParams{
		Username: contact.ID,
		Nickname: contact.Name,
		Remark:   contact.Alias,
		Weixin:   contact.Weixin,
	})
	isBot := contact.Type == puppet.ContactTypeOfficial

	return &bridgev2.UserInfo{
		Identifiers: []string{
			fmt.Sprintf("wechat:%s", contact.ID),
		},
		Name:   &name,
		Avatar: c.avatars.avatar(contact.Avatar),
		IsBot:  &isBot,
	}
}

func (c *WechatClient) roomMemberToUserInfo(member *puppet.RoomMemberPayload) *bridgev2.UserInfo {
	name := c.Config.FormatDisplayname(DisplaynameParams{
		Username: member.ID,
		Nickname: member.Name,
	})
	return &bridgev2.UserInfo{
		Identifiers: []string{
			fmt.Sprintf("wechat:%s", member.ID),
		},
		Name:   &name,
		Avatar: c.avatars.avatar(member.Avatar),
	}
}
