// Copyright 2024-2026 Aiku AI

package msgparser

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
)

var (
	// ErrNotPatMessage is returned by ParsePatMessage for a non-pat sysmsg.
	ErrNotPatMessage = errors.New("sysmsg is not a pat message")
	// ErrMissingPatField is returned when a mandatory pat field is empty.
	ErrMissingPatField = errors.New("pat message is missing a mandatory field")
)

// PatMessage is a decoded "pat" (tap) notification.
type PatMessage struct {
	// FromUsername is the actor who patted.
	FromUsername string `xml:"fromusername"`
	// ChatUsername is the room the pat happened in.
	ChatUsername string `xml:"chatusername"`
	// PattedUsername is the target.
	PattedUsername string `xml:"pattedusername"`
	// Template is the notification text, e.g. `"${wxid_a}" 拍了拍我`.
	Template string `xml:"template"`
}

type sysMsgEnvelope struct {
	XMLName xml.Name    `xml:"sysmsg"`
	Type    string      `xml:"type,attr"`
	Pat     *PatMessage `xml:"pat"`
}

func decodeSysMsg(content string) (*sysMsgEnvelope, error) {
	var env sysMsgEnvelope
	if err := decodeXML(content, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// IsPatMessage reports whether msg.Content embeds a pat notification.
// Malformed content is not a pat message.
func IsPatMessage(msg *padlocal.Message) bool {
	env, err := decodeSysMsg(msg.Content)
	if err != nil {
		return false
	}
	return env.Type == "pat"
}

// ParsePatMessage decodes the pat notification in msg.Content. Callers are
// expected to have checked IsPatMessage first.
func ParsePatMessage(msg *padlocal.Message) (*PatMessage, error) {
	env, err := decodeSysMsg(msg.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal sysmsg: %w", err)
	}
	if env.Type != "pat" {
		return nil, fmt.Errorf("%w: type %q", ErrNotPatMessage, env.Type)
	}
	switch {
	case env.Pat == nil:
		return nil, fmt.Errorf("%w: pat", ErrMissingPatField)
	case env.Pat.FromUsername == "":
		return nil, fmt.Errorf("%w: fromusername", ErrMissingPatField)
	case env.Pat.Template == "":
		return nil, fmt.Errorf("%w: template", ErrMissingPatField)
	}
	return env.Pat, nil
}
