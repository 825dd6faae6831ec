package interfaces

import "github.com/dep2p/go-mqrpc/pkg/types"

// ============================================================================
//                              ReplyWaiter - 响应关联
// ============================================================================

// ReplyWaiter 响应关联引擎
//
// 按 message_id 将入站响应匹配到挂起的出站调用。
// 挂起调用的超时与取消由关联引擎的使用方负责，
// 超时不得影响路由缓存或套接字状态。
type ReplyWaiter interface {
	// Track 登记一个挂起调用，返回接收响应的通道
	//
	// 必须在响应可能到达之前完成登记。
	Track(messageID string) <-chan *types.Reply

	// Untrack 撤销登记（调用完成或超时后）
	Untrack(messageID string)

	// Resolve 投递一条已解码的响应
	//
	// 没有挂起调用等待该 message_id 时丢弃并记录告警。
	Resolve(reply *types.Reply)
}
