// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package schemamapper translates PadLocal wire records into normalized
// puppet payloads.
//
// The hard part is the message content field, which overloads sender
// identity, room context, embedded XML and system notifications into a single
// string. [Disambiguate] splits it once into a tagged [Content] value so that
// nothing downstream re-parses raw strings.
//
// # Pipeline
//
// [Mapper.MessageToPayload] runs, in order:
//
//   - provisional type conversion from the protocol type,
//   - address resolution (room, sender, recipient, text),
//   - mention resolution, expanding the "@all" sentinel through a
//     [RoomMembershipLookup], concurrently with app message decoding when the
//     provisional type is Attachment,
//   - the type adjuster, a pure function over the assembled payload and the
//     decode result.
//
// Only addressing errors and room lookup errors are returned. Pat and app
// message decode failures are logged and the payload is kept as assembled.
//
// Contacts, rooms and room members are projected field by field by
// [ContactToPayload], [RoomToPayload] and [RoomMemberToPayload].
package schemamapper
