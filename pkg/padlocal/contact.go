// Copyright 2024-2026 Aiku AI

package padlocal

// Contact is a decoded contact record. Rooms are delivered as contacts too,
// with the ChatRoom* fields populated.
type Contact struct {
	Username  string   `json:"username"`
	Nickname  string   `json:"nickname"`
	Avatar    string   `json:"avatar"`
	Gender    int      `json:"gender"`
	Remark    string   `json:"remark"`
	Alias     string   `json:"alias"`
	City      string   `json:"city"`
	Province  string   `json:"province"`
	Signature string   `json:"signature"`
	PhoneList []string `json:"phoneList"`
	Stranger  bool     `json:"stranger"`

	ChatRoomOwnerUsername string            `json:"chatroomownerusername"`
	ChatRoomMemberList    []*ChatRoomMember `json:"chatroommemberList"`
}

// ChatRoomMember is a single member entry of a room record.
type ChatRoomMember struct {
	Username        string `json:"username"`
	Nickname        string `json:"nickname"`
	DisplayName     string `json:"displayname"`
	Avatar          string `json:"avatar"`
	InviterUsername string `json:"inviterusername"`
}

// ChatRoomMemberToContact builds a stranger contact record from a room member,
// for members that are not in the contact list.
func ChatRoomMemberToContact(member *ChatRoomMember) *Contact {
	return &Contact{
		Username: member.Username,
		Nickname: member.Nickname,
		Avatar:   member.Avatar,
		Stranger: true,
	}
}
