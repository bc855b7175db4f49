// Copyright 2024-2026 Aiku AI

// Package puppet defines the normalized payloads handed to the puppet layer:
// messages, contacts, rooms and room members, independent of the PadLocal
// wire format.
package puppet
