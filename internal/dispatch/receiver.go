package dispatch

import (
	"github.com/dep2p/go-mqrpc/internal/envelope"
	"github.com/dep2p/go-mqrpc/pkg/interfaces"
)

// ============================================================================
//                              ReplyReceiver 实现
// ============================================================================

// ReplyReceiver 响应解码器
//
// 由入站通道的外部轮询方在套接字可读时调用，每次调用解码
// 恰好一条响应并交给关联引擎。
type ReplyReceiver struct {
	codec  *envelope.Codec
	waiter interfaces.ReplyWaiter
}

// NewReplyReceiver 创建响应解码器
func NewReplyReceiver(waiter interfaces.ReplyWaiter) *ReplyReceiver {
	return &ReplyReceiver{
		codec:  envelope.NewCodec(),
		waiter: waiter,
	}
}

// OnReadable 处理一次可读事件
//
// 结构非法的帧序列使本次读取作废：记录完整上下文后丢弃，
// 不波及无关的在途调用，也不终止调用方的解码循环；对应的
// 发起方最终以超时观察到该错误。
func (r *ReplyReceiver) OnReadable(sock interfaces.Socket) error {
	reply, err := r.codec.ReadReply(sock)
	if err != nil {
		logger.Error("响应解码失败", "err", err)
		return err
	}

	logger.Debug("收到响应", "messageID", reply.MessageID)
	r.waiter.Resolve(reply)
	return nil
}
