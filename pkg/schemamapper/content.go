// Copyright 2024-2026 Aiku AI

package schemamapper

import (
	"strings"

	"github.com/vinceyyy/puppet-padlocal/pkg/wxid"
)

// contentDelimiter separates a sender prefix from the body in room messages.
const contentDelimiter = ":\n"

// ContentKind tags the variant held by a Content.
type ContentKind int

const (
	// ContentPlain carries no recognizable prefix.
	ContentPlain ContentKind = iota
	// ContentPrefixed starts with an individual sender, "wxid_a:\nbody".
	ContentPrefixed
	// ContentSystemNotice starts with a room identity, "123@chatroom:\n<sysmsg…".
	ContentSystemNotice
)

// Content is a message content split on its first delimiter.
type Content struct {
	Kind ContentKind
	// Prefix is the sender for ContentPrefixed and the room for
	// ContentSystemNotice.
	Prefix string
	// Text is the body after the delimiter for ContentPrefixed, and the full
	// raw content otherwise.
	Text string
}

// Disambiguate classifies content by the identity before its first ":\n".
func Disambiguate(content string) Content {
	prefix, body, found := strings.Cut(content, contentDelimiter)
	if !found {
		return Content{Kind: ContentPlain, Text: content}
	}
	switch {
	case wxid.IsAnyContactID(prefix):
		return Content{Kind: ContentPrefixed, Prefix: prefix, Text: body}
	case wxid.IsAnyRoomID(prefix):
		return Content{Kind: ContentSystemNotice, Prefix: prefix, Text: content}
	default:
		return Content{Kind: ContentPlain, Text: content}
	}
}

// stripSenderPrefix drops everything up to and including the first ":\n".
func stripSenderPrefix(content string) string {
	if _, body, found := strings.Cut(content, contentDelimiter); found {
		return body
	}
	return content
}
