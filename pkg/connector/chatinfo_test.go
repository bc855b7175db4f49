// Copyright 2024-2026 Aiku AI

package connector

import (
	"context"
	"errors"
	"testing"

	"maunium.net/go/mautrix/bridgev2/database"
	"maunium.net/go/mautrix/event"

	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/roomstore"
)

func testRoomContact() *padlocal.Contact {
	return &padlocal.Contact{
		Username:              testRoom,
		Nickname:              "Weekend hiking",
		Avatar:                "https://wx.qlogo.cn/room.png",
		ChatRoomOwnerUsername: "wxid_owner",
		ChatRoomMemberList: []*padlocal.ChatRoomMember{
			{Username: "wxid_owner", Nickname: "Olivia", DisplayName: "Trip lead"},
			nil,
			{Username: "wxid_bob", Nickname: "Bob"},
			{Username: testSelf, Nickname: "Me"},
		},
	}
}

func TestHandleRoom(t *testing.T) {
	t.Parallel()
	client, _, rooms := newTestClient(t, nil)
	ctx := context.Background()

	info, err := client.HandleRoom(ctx, testRoomContact())
	if err != nil {
		t.Fatalf("HandleRoom: %v", err)
	}

	stored, err := rooms.Room(ctx, testRoom)
	if err != nil {
		t.Fatalf("room not stored: %v", err)
	}
	if len(stored.MemberIDList) != 3 {
		t.Errorf("stored members: got %v", stored.MemberIDList)
	}

	if info.Type == nil || *info.Type != database.RoomTypeGroupDM {
		t.Errorf("room type: got %v", info.Type)
	}
	if info.Name == nil || *info.Name != "Weekend hiking" {
		t.Errorf("name: got %v", info.Name)
	}
	if info.Avatar == nil || string(info.Avatar.ID) != "https://wx.qlogo.cn/room.png" {
		t.Errorf("avatar: got %+v", info.Avatar)
	}
	if info.Members == nil || !info.Members.IsFull || info.Members.TotalMemberCount != 3 {
		t.Fatalf("members: got %+v", info.Members)
	}

	owner, ok := info.Members.MemberMap[MakeUserID("wxid_owner")]
	if !ok {
		t.Fatal("owner missing from member map")
	}
	if owner.PowerLevel == nil || *owner.PowerLevel != ownerPowerLevel {
		t.Errorf("owner power level: got %v", owner.PowerLevel)
	}
	if owner.Nickname == nil || *owner.Nickname != "Trip lead" {
		t.Errorf("owner nickname: got %v", owner.Nickname)
	}
	if owner.Membership != event.MembershipJoin {
		t.Errorf("owner membership: got %v", owner.Membership)
	}
	if owner.UserInfo == nil || owner.UserInfo.Name == nil || *owner.UserInfo.Name != "Olivia (WeChat)" {
		t.Errorf("owner user info: got %+v", owner.UserInfo)
	}

	bob := info.Members.MemberMap[MakeUserID("wxid_bob")]
	if bob.PowerLevel != nil {
		t.Errorf("non-owner should not get a power level, got %d", *bob.PowerLevel)
	}
	if bob.Nickname != nil {
		t.Errorf("member without display name should have nil nickname, got %q", *bob.Nickname)
	}

	self := info.Members.MemberMap[MakeUserID(testSelf)]
	if !self.IsFromMe {
		t.Error("own member entry should be marked IsFromMe")
	}
}

func TestHandleRoom_RejectsNonRoom(t *testing.T) {
	t.Parallel()
	client, _, rooms := newTestClient(t, nil)

	for _, contact := range []*padlocal.Contact{nil, {Username: "wxid_alice"}, {}} {
		if _, err := client.HandleRoom(context.Background(), contact); !errors.Is(err, ErrNotRoom) {
			t.Errorf("HandleRoom(%+v): expected ErrNotRoom, got %v", contact, err)
		}
	}
	if rooms.Len() != 0 {
		t.Errorf("nothing should be stored, got %d rooms", rooms.Len())
	}
}

func TestHandleRoom_IMRoom(t *testing.T) {
	t.Parallel()
	client, _, rooms := newTestClient(t, nil)

	_, err := client.HandleRoom(context.Background(), &padlocal.Contact{Username: "10000@im.chatroom"})
	if err != nil {
		t.Fatalf("HandleRoom: %v", err)
	}
	if rooms.Len() != 1 {
		t.Errorf("expected IM room to be stored")
	}
}

func TestGetChatInfo_Room(t *testing.T) {
	t.Parallel()
	client, _, _ := newTestClient(t, nil)
	ctx := context.Background()

	if _, err := client.HandleRoom(ctx, testRoomContact()); err != nil {
		t.Fatalf("HandleRoom: %v", err)
	}
	info, err := client.GetChatInfo(ctx, makeTestPortal(testRoom))
	if err != nil {
		t.Fatalf("GetChatInfo: %v", err)
	}
	if info.Members.TotalMemberCount != 3 {
		t.Errorf("members: got %d", info.Members.TotalMemberCount)
	}
	if owner := info.Members.MemberMap[MakeUserID("wxid_owner")]; owner.PowerLevel == nil {
		t.Error("owner power level should survive the store round trip")
	}
}

func TestGetChatInfo_UnknownRoom(t *testing.T) {
	t.Parallel()
	client, _, _ := newTestClient(t, nil)

	_, err := client.GetChatInfo(context.Background(), makeTestPortal("404@chatroom"))
	if !errors.Is(err, roomstore.ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestGetChatInfo_Direct(t *testing.T) {
	t.Parallel()
	client, _, _ := newTestClient(t, nil)

	info, err := client.GetChatInfo(context.Background(), makeTestPortal("wxid_alice"))
	if err != nil {
		t.Fatalf("GetChatInfo: %v", err)
	}
	if info.Type == nil || *info.Type != database.RoomTypeDM {
		t.Errorf("room type: got %v", info.Type)
	}
	if info.Members.OtherUserID != MakeUserID("wxid_alice") {
		t.Errorf("OtherUserID: got %q", info.Members.OtherUserID)
	}
	if len(info.Members.MemberMap) != 2 {
		t.Errorf("member map: got %d entries, want 2", len(info.Members.MemberMap))
	}
}

func TestHandleContact(t *testing.T) {
	t.Parallel()
	client, _, _ := newTestClient(t, nil)

	tests := []struct {
		name    string
		contact *padlocal.Contact
		want    string
		bot     bool
	}{
		{"remark wins", &padlocal.Contact{Username: "wxid_a", Nickname: "Alice", Remark: "Aunt A"}, "Aunt A (WeChat)", false},
		{"nickname", &padlocal.Contact{Username: "wxid_a", Nickname: "Alice"}, "Alice (WeChat)", false},
		{"username fallback", &padlocal.Contact{Username: "wxid_a"}, "wxid_a (WeChat)", false},
		{"official account", &padlocal.Contact{Username: "gh_news", Nickname: "News"}, "News (WeChat)", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			info := client.HandleContact(tt.contact)
			if info.Name == nil || *info.Name != tt.want {
				t.Errorf("name: got %v, want %q", info.Name, tt.want)
			}
			if len(info.Identifiers) != 1 || info.Identifiers[0] != "wechat:"+tt.contact.Username {
				t.Errorf("identifiers: got %v", info.Identifiers)
			}
			if info.IsBot == nil || *info.IsBot != tt.bot {
				t.Errorf("IsBot: got %v, want %v", info.IsBot, tt.bot)
			}
			if info.Avatar != nil {
				t.Errorf("contact without avatar URL should have nil avatar")
			}
		})
	}
}
