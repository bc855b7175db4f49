// Copyright 2024-2026 Aiku AI

package msgparser

import (
	"encoding/xml"
	"io"
	"strings"
)

// xmlBody returns the XML part of a message content, dropping a leading
// "sender:\n" prefix if the content does not already start with markup.
func xmlBody(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "<") {
		return trimmed
	}
	if idx := strings.Index(trimmed, ":\n"); idx != -1 {
		return strings.TrimSpace(trimmed[idx+2:])
	}
	return trimmed
}

// decodeXML decodes the XML part of content into v. Client-generated
// payloads often carry HTML entities and bare ampersands, so the decoder is
// lenient. Content has already been decoded to UTF-8, so a declared encoding
// such as GBK is ignored rather than converted a second time.
func decodeXML(content string, v any) error {
	d := xml.NewDecoder(strings.NewReader(xmlBody(content)))
	d.Strict = false
	d.Entity = xml.HTMLEntity
	d.CharsetReader = passthroughCharset
	return d.Decode(v)
}

func passthroughCharset(_ string, input io.Reader) (io.Reader, error) {
	return input, nil
}
