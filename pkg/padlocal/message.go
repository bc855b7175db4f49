// Copyright 2024-2026 Aiku AI

package padlocal

import "strconv"

// WechatMessageType is the protocol-level message type carried by a Message.
type WechatMessageType int

const (
	MessageTypeText                WechatMessageType = 1
	MessageTypeImage               WechatMessageType = 3
	MessageTypeVoice               WechatMessageType = 34
	MessageTypeVerifyMsg           WechatMessageType = 37
	MessageTypePossibleFriendMsg   WechatMessageType = 40
	MessageTypeShareCard           WechatMessageType = 42
	MessageTypeVideo               WechatMessageType = 43
	MessageTypeEmoticon            WechatMessageType = 47
	MessageTypeLocation            WechatMessageType = 48
	MessageTypeApp                 WechatMessageType = 49
	MessageTypeVoipMsg             WechatMessageType = 50
	MessageTypeStatusNotify        WechatMessageType = 51
	MessageTypeVoipNotify          WechatMessageType = 52
	MessageTypeVoipInvite          WechatMessageType = 53
	MessageTypeMicroVideo          WechatMessageType = 62
	MessageTypeVerifyMsgEnterprise WechatMessageType = 65
	MessageTypeTransfer            WechatMessageType = 2000
	MessageTypeRedEnvelope         WechatMessageType = 2001
	MessageTypeMiniProgram         WechatMessageType = 2002
	MessageTypeGroupInvite         WechatMessageType = 2003
	MessageTypeFile                WechatMessageType = 2004
	MessageTypeSysNotice           WechatMessageType = 9999
	MessageTypeSys                 WechatMessageType = 10000
	MessageTypeRecalled            WechatMessageType = 10002
)

var messageTypeNames = map[WechatMessageType]string{
	MessageTypeText:                "text",
	MessageTypeImage:               "image",
	MessageTypeVoice:               "voice",
	MessageTypeVerifyMsg:           "verify_msg",
	MessageTypePossibleFriendMsg:   "possible_friend_msg",
	MessageTypeShareCard:           "share_card",
	MessageTypeVideo:               "video",
	MessageTypeEmoticon:            "emoticon",
	MessageTypeLocation:            "location",
	MessageTypeApp:                 "app",
	MessageTypeVoipMsg:             "voip_msg",
	MessageTypeStatusNotify:        "status_notify",
	MessageTypeVoipNotify:          "voip_notify",
	MessageTypeVoipInvite:          "voip_invite",
	MessageTypeMicroVideo:          "micro_video",
	MessageTypeVerifyMsgEnterprise: "verify_msg_enterprise",
	MessageTypeTransfer:            "transfer",
	MessageTypeRedEnvelope:         "red_envelope",
	MessageTypeMiniProgram:         "mini_program",
	MessageTypeGroupInvite:         "group_invite",
	MessageTypeFile:                "file",
	MessageTypeSysNotice:           "sys_notice",
	MessageTypeSys:                 "sys",
	MessageTypeRecalled:            "recalled",
}

func (t WechatMessageType) String() string {
	if name, ok := messageTypeNames[t]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(t)) + ")"
}

// Message is a decoded chat message as delivered by the protocol client.
//
// Content may carry a "sender:\n" prefix for group messages, raw XML for app
// messages, or a system notification such as a pat.
type Message struct {
	ID           string            `json:"id"`
	Type         WechatMessageType `json:"type"`
	FromUsername string            `json:"fromusername"`
	ToUsername   string            `json:"tousername"`
	Content      string            `json:"content"`
	CreateTime   uint64            `json:"createtime"`
	AtList       []string          `json:"atList"`
}
