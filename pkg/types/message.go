package types

import "strconv"

// ============================================================================
//                              HostID - 可路由端点
// ============================================================================

// HostID 远端可路由对等体的不透明标识
//
// 由对端路由器分配（物理地址或路由令牌），取值不可变。
type HostID string

// String 实现 fmt.Stringer
func (h HostID) String() string {
	return string(h)
}

// PublisherAddress 一对代理地址
//
// 由发现服务返回：PubAddress 为订阅侧地址，
// RouterAddress 为出站连接应当拨向的路由侧地址。
type PublisherAddress struct {
	// PubAddress 发布侧地址
	PubAddress string

	// RouterAddress 路由侧地址
	RouterAddress string
}

// ============================================================================
//                              MessageType - 消息类型
// ============================================================================

// MessageType 消息语义类型
//
// 枚举值即线上编码值，与对端实现保持一致，不可改动。
type MessageType int

// 消息类型常量
const (
	// CallType 请求-响应调用
	CallType MessageType = 1

	// CastType 单端点单向消息
	CastType MessageType = 2

	// FanoutType 扇出单向消息
	FanoutType MessageType = 3

	// NotifyType 通知消息
	NotifyType MessageType = 4

	// ReplyType 响应消息
	ReplyType MessageType = 5

	// AckType 确认消息
	AckType MessageType = 6
)

// IsDirect 是否为直接寻址类型（解析单个端点）
func (t MessageType) IsDirect() bool {
	return t == CallType || t == CastType
}

// IsMultisend 是否为广播类型（主题过滤寻址）
func (t MessageType) IsMultisend() bool {
	return t == FanoutType || t == NotifyType
}

// Wire 返回线上表示（十进制数字的 UTF-8 文本）
func (t MessageType) Wire() []byte {
	return []byte(strconv.Itoa(int(t)))
}

// String 实现 fmt.Stringer
func (t MessageType) String() string {
	switch t {
	case CallType:
		return "CALL"
	case CastType:
		return "CAST"
	case FanoutType:
		return "FANOUT"
	case NotifyType:
		return "NOTIFY"
	case ReplyType:
		return "REPLY"
	case AckType:
		return "ACK"
	default:
		return "UNKNOWN(" + strconv.Itoa(int(t)) + ")"
	}
}

// ============================================================================
//                              Request / Reply
// ============================================================================

// Request 一次出站请求
type Request struct {
	// MsgType 消息类型
	MsgType MessageType

	// Target 逻辑目标
	Target Target

	// MessageID 消息唯一标识（在该调用等待响应期间全局唯一）
	MessageID string

	// Context 不透明的键值元数据
	Context map[string]string

	// Message 不透明负载
	Message []byte
}

// Reply 一条入站响应
type Reply struct {
	// MessageID 关联的请求消息标识
	MessageID string

	// ReplyID 发送方回显标识
	ReplyID []byte

	// Payload 不透明响应负载
	Payload []byte
}
