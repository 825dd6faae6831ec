package dispatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/dep2p/go-mqrpc/internal/envelope"
	"github.com/dep2p/go-mqrpc/internal/routing"
	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

// ============================================================================
//                              CallSender 实现
// ============================================================================

// CallSender 调用模式专用发送器
//
// 无论传输模式如何，调用永远解析单个端点（调用不广播），
// 永远等待响应。持有 socket 的发送属主权；响应在同一套接字
// 上由外部轮询方经 ReplyReceiver 读回。
type CallSender struct {
	cfg    *Config
	socket interfaces.Socket
	table  *routing.Table
	codec  *envelope.Codec
	waiter interfaces.ReplyWaiter

	sendMu sync.Mutex
}

// NewCallSender 创建调用发送器
//
// waiter 必须在调用 Submit 前就绪：路由缓存与套接字状态先于
// 登记建立，避免响应先于登记到达。
func NewCallSender(socket interfaces.Socket, table *routing.Table, waiter interfaces.ReplyWaiter, opts ...Option) *CallSender {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &CallSender{
		cfg:    cfg,
		socket: socket,
		table:  table,
		codec:  envelope.NewCodec(),
		waiter: waiter,
	}
}

// Submit 发送调用请求并返回挂起响应通道
//
// 先登记后发送：响应即使先于本方法返回到达，也能按
// message_id 完成匹配。发送失败时撤销登记。
func (s *CallSender) Submit(req *types.Request) (<-chan *types.Reply, error) {
	if req.MsgType != types.CallType {
		return nil, fmt.Errorf("%w: %s (call sender only)", ErrUnsupportedPattern, req.MsgType)
	}

	host, err := s.table.GetRoutableHost(req.Target)
	if err != nil {
		return nil, err
	}

	ch := s.waiter.Track(req.MessageID)

	s.sendMu.Lock()
	err = s.codec.SendRequest(s.socket, req, string(host))
	s.sendMu.Unlock()
	if err != nil {
		s.waiter.Untrack(req.MessageID)
		return nil, err
	}

	logger.Debug("已发送调用",
		"messageID", req.MessageID,
		"target", req.Target.String(),
		"host", host)
	return ch, nil
}

// Call 发送调用请求并等待响应
//
// 超时或取消只终止本次等待，不影响路由缓存与套接字状态。
func (s *CallSender) Call(ctx context.Context, req *types.Request) (*types.Reply, error) {
	if s.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CallTimeout)
		defer cancel()
	}

	ch, err := s.Submit(req)
	if err != nil {
		return nil, err
	}
	defer s.waiter.Untrack(req.MessageID)

	select {
	case reply, ok := <-ch:
		if !ok {
			return nil, ErrReplyChannelClosed
		}
		return reply, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close 关闭持有的套接字
func (s *CallSender) Close() error {
	return s.socket.Close()
}
