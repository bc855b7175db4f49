// Copyright 2024-2026 Aiku AI

// Package wxid classifies WeChat usernames by their structural pattern.
//
// Every predicate is pure and total; a string that matches no pattern is
// simply not classified.
package wxid

import "strings"

const (
	roomSuffix      = "@chatroom"
	imRoomSuffix    = "@im.chatroom"
	imContactSuffix = "@openim"
	officialPrefix  = "gh_"
)

// Kind is the structural class of a username.
type Kind int

const (
	KindUnknown Kind = iota
	KindContact
	KindOfficial
	KindIMContact
	KindRoom
	KindIMRoom
)

func (k Kind) String() string {
	switch k {
	case KindContact:
		return "contact"
	case KindOfficial:
		return "official"
	case KindIMContact:
		return "im_contact"
	case KindRoom:
		return "room"
	case KindIMRoom:
		return "im_room"
	default:
		return "unknown"
	}
}

// IsRoomID reports whether id is a standard room, e.g. "123456@chatroom".
func IsRoomID(id string) bool {
	return strings.HasSuffix(id, roomSuffix)
}

// IsIMRoomID reports whether id is an enterprise room, e.g. "123@im.chatroom".
func IsIMRoomID(id string) bool {
	return strings.HasSuffix(id, imRoomSuffix)
}

// IsIMContactID reports whether id is an enterprise individual, e.g. "123@openim".
func IsIMContactID(id string) bool {
	return strings.HasSuffix(id, imContactSuffix)
}

// IsContactID reports whether id is a standard individual contact. Official
// accounts are contacts too.
func IsContactID(id string) bool {
	if id == "" {
		return false
	}
	return !IsRoomID(id) && !IsIMRoomID(id) && !IsIMContactID(id)
}

// IsContactOfficialID reports whether id is an official account.
func IsContactOfficialID(id string) bool {
	return strings.HasPrefix(id, officialPrefix)
}

// IsAnyRoomID reports whether id is a standard or enterprise room.
func IsAnyRoomID(id string) bool {
	return IsRoomID(id) || IsIMRoomID(id)
}

// IsAnyContactID reports whether id is a standard or enterprise individual.
func IsAnyContactID(id string) bool {
	return IsContactID(id) || IsIMContactID(id)
}

// Classify returns the most specific kind of id.
func Classify(id string) Kind {
	switch {
	case IsRoomID(id):
		return KindRoom
	case IsIMRoomID(id):
		return KindIMRoom
	case IsIMContactID(id):
		return KindIMContact
	case IsContactOfficialID(id):
		return KindOfficial
	case IsContactID(id):
		return KindContact
	default:
		return KindUnknown
	}
}
