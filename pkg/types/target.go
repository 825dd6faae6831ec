package types

import "strings"

// ============================================================================
//                              Target - 逻辑地址
// ============================================================================

// Target 服务/主题的逻辑地址
//
// Target 与物理位置无关，构造后不可变。
// 路由表以 Key() 的规范化字符串作为缓存键。
type Target struct {
	// Topic 主题名
	Topic string

	// Server 服务实例名（可选，指定后为点对点寻址）
	Server string

	// Fanout 是否扇出到该主题的全部成员
	Fanout bool
}

// Key 返回确定性的规范化缓存键
//
// 规则（跨实现必须一致）：
//   - 仅有 Topic 时: "topic"
//   - 指定 Server 时: "topic.server"
//
// Fanout 标志不参与缓存键：扇出寻址不改变主题的成员集合，
// 只改变投递方式。
func (t Target) Key() string {
	if t.Server != "" {
		return t.Topic + "." + t.Server
	}
	return t.Topic
}

// SubscribeFilter 返回主题订阅过滤串
//
// 用于 pub/sub 模式下的广播类消息：不解析具体端点，
// 由传输层按前缀过滤完成多订阅者分发。
func (t Target) SubscribeFilter() string {
	return t.Topic
}

// String 实现 fmt.Stringer
func (t Target) String() string {
	var b strings.Builder
	b.WriteString(t.Key())
	if t.Fanout {
		b.WriteString("(fanout)")
	}
	return b.String()
}
