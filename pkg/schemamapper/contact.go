// Copyright 2024-2026 Aiku AI

package schemamapper

import (
	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
	"github.com/vinceyyy/puppet-padlocal/pkg/wxid"
)

// ContactToPayload projects a contact record.
func ContactToPayload(contact *padlocal.Contact) *puppet.ContactPayload {
	contactType := puppet.ContactTypeIndividual
	if wxid.IsContactOfficialID(contact.Username) {
		contactType = puppet.ContactTypeOfficial
	}

	return &puppet.ContactPayload{
		ID:        contact.Username,
		Gender:    puppet.ContactGender(contact.Gender),
		Type:      contactType,
		Name:      contact.Nickname,
		Avatar:    contact.Avatar,
		Alias:     contact.Remark,
		Weixin:    contact.Alias,
		City:      contact.City,
		Friend:    !contact.Stranger,
		Province:  contact.Province,
		Signature: contact.Signature,
		Phone:     append([]string{}, contact.PhoneList...),
	}
}

// RoomToPayload projects a room record. Admins cannot be derived from the
// record, so AdminIDList is always empty.
func RoomToPayload(room *padlocal.Contact) *puppet.RoomPayload {
	memberIDs := make([]string, 0, len(room.ChatRoomMemberList))
	for _, member := range room.ChatRoomMemberList {
		if member == nil {
			continue
		}
		memberIDs = append(memberIDs, member.Username)
	}

	return &puppet.RoomPayload{
		ID:           room.Username,
		Topic:        room.Nickname,
		Avatar:       room.Avatar,
		OwnerID:      room.ChatRoomOwnerUsername,
		MemberIDList: memberIDs,
		AdminIDList:  []string{},
	}
}

// RoomMemberToPayload projects a room member record.
func RoomMemberToPayload(member *padlocal.ChatRoomMember) *puppet.RoomMemberPayload {
	return &puppet.RoomMemberPayload{
		ID:        member.Username,
		RoomAlias: member.DisplayName,
		InviterID: member.InviterUsername,
		Avatar:    member.Avatar,
		Name:      member.Nickname,
	}
}
