// Copyright 2024-2026 Aiku AI

// Package msgparser decodes the structured payloads embedded in a message's
// content: app messages (<msg><appmsg>) and pat notifications
// (<sysmsg type="pat">). It also maps protocol message types to normalized
// ones.
package msgparser
