// Copyright 2024-2026 Remi Philippe
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package connector projects PadLocal WeChat records onto Matrix using the
// mautrix bridgev2 framework.
//
// Raw messages go through the schema mapper first; the resulting puppet
// payloads become bridgev2 remote events. Room records feed a membership
// store so that "@all" mentions can be expanded to the room's members.
//
// # Core Types
//
// [WechatClient] holds the mapper, room store and event sender for one
// WeChat account. [WechatClient.HandleMessage] queues messages,
// [WechatClient.HandleRoom] and [WechatClient.HandleContact] produce chat
// and ghost info.
//
// [Config] is the YAML connector configuration; [Metrics] counts mapping
// outcomes for Prometheus.
//
// # Echo Prevention
//
// Messages whose raw sender is the account itself are never queued, and
// payloads without a resolvable sender are dropped with a skip metric.
//
// # Sub-packages
//
//   - wechatfmt converts WeChat quote blocks to Matrix HTML and Matrix HTML
//     to WeChat plain text.
package connector
