// Copyright 2024-2026 Aiku AI

package msgparser

import "github.com/vinceyyy/puppet-padlocal/pkg/padlocal"

// Parser bundles the package-level decoders behind a value so callers can
// depend on an interface and swap in a fake.
type Parser struct{}

func (Parser) ParseAppMessage(msg *padlocal.Message) (*AppMessagePayload, error) {
	return ParseAppMessage(msg)
}

func (Parser) IsPatMessage(msg *padlocal.Message) bool {
	return IsPatMessage(msg)
}

func (Parser) ParsePatMessage(msg *padlocal.Message) (*PatMessage, error) {
	return ParsePatMessage(msg)
}
