// Copyright 2024-2026 Aiku AI

package msgparser

import (
	"github.com/vinceyyy/puppet-padlocal/pkg/padlocal"
	"github.com/vinceyyy/puppet-padlocal/pkg/puppet"
)

var messageTypeMap = map[padlocal.WechatMessageType]puppet.MessageType{
	padlocal.MessageTypeText:        puppet.MessageTypeText,
	padlocal.MessageTypeImage:       puppet.MessageTypeImage,
	padlocal.MessageTypeVoice:       puppet.MessageTypeAudio,
	padlocal.MessageTypeEmoticon:    puppet.MessageTypeEmoticon,
	padlocal.MessageTypeApp:         puppet.MessageTypeAttachment,
	padlocal.MessageTypeFile:        puppet.MessageTypeAttachment,
	padlocal.MessageTypeVideo:       puppet.MessageTypeVideo,
	padlocal.MessageTypeMicroVideo:  puppet.MessageTypeVideo,
	padlocal.MessageTypeTransfer:    puppet.MessageTypeTransfer,
	padlocal.MessageTypeRedEnvelope: puppet.MessageTypeRedEnvelope,
	padlocal.MessageTypeLocation:    puppet.MessageTypeLocation,
	padlocal.MessageTypeShareCard:   puppet.MessageTypeContact,
	padlocal.MessageTypeMiniProgram: puppet.MessageTypeMiniProgram,
	padlocal.MessageTypeRecalled:    puppet.MessageTypeRecalled,
}

// ConvertMessageType maps a protocol message type to the provisional
// normalized type. Unlisted types map to Unknown.
func ConvertMessageType(t padlocal.WechatMessageType) puppet.MessageType {
	if mt, ok := messageTypeMap[t]; ok {
		return mt
	}
	return puppet.MessageTypeUnknown
}
