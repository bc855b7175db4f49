// Copyright 2024-2026 Aiku AI

// Package padlocal holds the decoded wire records produced by the PadLocal
// protocol client. The records are read-only inputs to the schema mapper;
// nothing in this module decodes them from the network.
package padlocal
