// Copyright 2024-2026 Aiku AI

package msgparser

import (
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
)

// AppMessageType is the sub-kind of an app message, taken from <appmsg><type>.
type AppMessageType int

const (
	AppMessageTypeText                  AppMessageType = 1
	AppMessageTypeImg                   AppMessageType = 2
	AppMessageTypeAudio                 AppMessageType = 3
	AppMessageTypeVideo                 AppMessageType = 4
	AppMessageTypeURL                   AppMessageType = 5
	AppMessageTypeAttach                AppMessageType = 6
	AppMessageTypeOpen                  AppMessageType = 7
	AppMessageTypeEmoji                 AppMessageType = 8
	AppMessageTypeVoiceRemind           AppMessageType = 9
	AppMessageTypeScanGood              AppMessageType = 10
	AppMessageTypeGood                  AppMessageType = 13
	AppMessageTypeEmotion               AppMessageType = 15
	AppMessageTypeCardTicket            AppMessageType = 16
	AppMessageTypeRealtimeShareLocation AppMessageType = 17
	AppMessageTypeChatHistory           AppMessageType = 19
	AppMessageTypeMiniProgram           AppMessageType = 33
	AppMessageTypeMiniProgramApp        AppMessageType = 36
	AppMessageTypeGroupNote             AppMessageType = 53
	AppMessageTypeReferMsg              AppMessageType = 57
	AppMessageTypeTransfers             AppMessageType = 2000
	AppMessageTypeRedEnvelopes          AppMessageType = 2001
	AppMessageTypeReaderType            AppMessageType = 100001
)

// ErrNoAppMsg is returned when the content has no <appmsg> element.
var ErrNoAppMsg = errors.New("content has no appmsg element")

// AppAttachPayload describes a file carried by an app message.
type AppAttachPayload struct {
	TotalLen       int64  `xml:"totallen"`
	AttachID       string `xml:"attachid"`
	CDNAttachURL   string `xml:"cdnattachurl"`
	EmoticonMD5    string `xml:"emoticonmd5"`
	AESKey         string `xml:"aeskey"`
	FileExt        string `xml:"fileext"`
	IsLargeFileMsg int    `xml:"islargefilemsg"`
}

// ReferMsgPayload is the quoted message of a quote reply.
type ReferMsgPayload struct {
	Type        int    `xml:"type"`
	SvrID       string `xml:"svrid"`
	FromUsr     string `xml:"fromusr"`
	ChatUsr     string `xml:"chatusr"`
	DisplayName string `xml:"displayname"`
	Content     string `xml:"content"`
}

// AppMessagePayload is the decoded <appmsg> element.
type AppMessagePayload struct {
	Type       AppMessageType    `xml:"type"`
	Title      string            `xml:"title"`
	Des        string            `xml:"des"`
	URL        string            `xml:"url"`
	ThumbURL   string            `xml:"thumburl"`
	MD5        string            `xml:"md5"`
	RecordItem string            `xml:"recorditem"`
	AppAttach  *AppAttachPayload `xml:"appattach"`
	ReferMsg   *ReferMsgPayload  `xml:"refermsg"`

	// FromUsername is read from the enclosing <msg>.
	FromUsername string `xml:"-"`
}

type appMsgEnvelope struct {
	XMLName      xml.Name           `xml:"msg"`
	AppMsg       *AppMessagePayload `xml:"appmsg"`
	FromUsername string             `xml:"fromusername"`
}

// ParseAppMessage decodes the app message embedded in msg.Content.
func ParseAppMessage(msg *padlocal.Message) (*AppMessagePayload, error) {
	var env appMsgEnvelope
	if err := decodeXML(msg.Content, &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal app message: %w", err)
	}
	if env.AppMsg == nil {
		return nil, ErrNoAppMsg
	}
	env.AppMsg.FromUsername = env.FromUsername
	return env.AppMsg, nil
}
