// Copyright 2024-2026 Aiku AI

package puppet

// ContactType classifies a contact.
type ContactType int

const (
	ContactTypeUnknown ContactType = iota
	ContactTypeIndividual
	ContactTypeOfficial
	ContactTypeCorporation
)

func (t ContactType) String() string {
	switch t {
	case ContactTypeIndividual:
		return "individual"
	case ContactTypeOfficial:
		return "official"
	case ContactTypeCorporation:
		return "corporation"
	default:
		return "unknown"
	}
}

// ContactGender is the gender reported by the protocol.
type ContactGender int

const (
	ContactGenderUnknown ContactGender = iota
	ContactGenderMale
	ContactGenderFemale
)

// ContactPayload is a normalized contact.
type ContactPayload struct {
	ID        string        `json:"id"`
	Gender    ContactGender `json:"gender"`
	Type      ContactType   `json:"type"`
	Name      string        `json:"name"`
	Avatar    string        `json:"avatar"`
	Alias     string        `json:"alias,omitempty"`
	Weixin    string        `json:"weixin,omitempty"`
	City      string        `json:"city,omitempty"`
	Friend    bool          `json:"friend"`
	Province  string        `json:"province,omitempty"`
	Signature string        `json:"signature,omitempty"`
	Phone     []string      `json:"phone"`
}

// RoomPayload is a normalized room.
type RoomPayload struct {
	ID           string   `json:"id"`
	Topic        string   `json:"topic"`
	Avatar       string   `json:"avatar,omitempty"`
	OwnerID      string   `json:"ownerId,omitempty"`
	MemberIDList []string `json:"memberIdList"`
	AdminIDList  []string `json:"adminIdList"`
}

// RoomMemberPayload is a normalized room member.
type RoomMemberPayload struct {
	ID        string `json:"id"`
	RoomAlias string `json:"roomAlias,omitempty"`
	InviterID string `json:"inviterId,omitempty"`
	Avatar    string `json:"avatar"`
	Name      string `json:"name"`
}
