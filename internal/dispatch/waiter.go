package dispatch

import (
	"sync"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

// ============================================================================
//                              Waiter 实现
// ============================================================================

// Waiter 进程内响应关联引擎
//
// 按 message_id 登记挂起调用并投递入站响应。挂起调用的超时
// 属于使用方；超时后 Untrack 即可，不影响其他在途调用。
type Waiter struct {
	mu      sync.Mutex
	pending map[string]chan *types.Reply
}

// NewWaiter 创建关联引擎
func NewWaiter() *Waiter {
	return &Waiter{
		pending: make(map[string]chan *types.Reply),
	}
}

// 确保实现接口
var _ interfaces.ReplyWaiter = (*Waiter)(nil)

// Track 登记一个挂起调用
//
// 返回缓冲通道，响应到达即写入；必须在响应可能到达之前完成。
func (w *Waiter) Track(messageID string) <-chan *types.Reply {
	ch := make(chan *types.Reply, 1)
	w.mu.Lock()
	w.pending[messageID] = ch
	w.mu.Unlock()
	return ch
}

// Untrack 撤销登记
func (w *Waiter) Untrack(messageID string) {
	w.mu.Lock()
	delete(w.pending, messageID)
	w.mu.Unlock()
}

// Resolve 投递一条已解码的响应
//
// 无人等待时（如超时已先触发）记录告警并丢弃。
func (w *Waiter) Resolve(reply *types.Reply) {
	w.mu.Lock()
	ch, ok := w.pending[reply.MessageID]
	if ok {
		delete(w.pending, reply.MessageID)
	}
	w.mu.Unlock()

	if !ok {
		logger.Warn("丢弃无主响应", "messageID", reply.MessageID)
		return
	}
	ch <- reply
}

// Pending 返回当前挂起调用数量
func (w *Waiter) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}
