package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-mqrpc/pkg/types"
)

func callRequest(target types.Target) *types.Request {
	return &types.Request{
		MsgType:   types.CallType,
		Target:    target,
		MessageID: "msg-call",
		Context:   map[string]string{},
		Message:   []byte("ask"),
	}
}

// ============================================================================
//                              Submit 测试
// ============================================================================

func TestCallSender_Submit(t *testing.T) {
	target := types.Target{Topic: "compute"}

	t.Run("单端点轮询发送", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B")
		sock := newMockSocket()
		waiter := NewWaiter()
		sender := NewCallSender(sock, newTestTable(t, mm), waiter)

		_, err := sender.Submit(callRequest(target))
		require.NoError(t, err)

		envs := sock.envelopes()
		require.Len(t, envs, 1)
		assert.Equal(t, types.CallType.Wire(), envs[0][1])
		assert.Equal(t, []byte("A"), envs[0][2])
	})

	t.Run("发送前已完成登记", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A")
		sock := newMockSocket()
		waiter := NewWaiter()
		sender := NewCallSender(sock, newTestTable(t, mm), waiter)

		ch, err := sender.Submit(callRequest(target))
		require.NoError(t, err)

		assert.Equal(t, 1, waiter.Pending())

		// 响应先于调用方读取到达也能匹配
		waiter.Resolve(&types.Reply{MessageID: "msg-call", Payload: []byte("ok")})
		reply := <-ch
		assert.Equal(t, []byte("ok"), reply.Payload)
	})

	t.Run("非 CALL 类型拒绝", func(t *testing.T) {
		mm := newMockMatchmaker()
		sock := newMockSocket()
		sender := NewCallSender(sock, newTestTable(t, mm), NewWaiter())

		_, err := sender.Submit(castRequest(target))

		assert.ErrorIs(t, err, ErrUnsupportedPattern)
		assert.Empty(t, sock.sentFrames())
	})

	t.Run("发送失败撤销登记", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A")
		sock := newMockSocket()
		sock.sendErr = assert.AnError
		waiter := NewWaiter()
		sender := NewCallSender(sock, newTestTable(t, mm), waiter)

		_, err := sender.Submit(callRequest(target))

		require.Error(t, err)
		assert.Equal(t, 0, waiter.Pending())
	})
}

// ============================================================================
//                              Call 测试
// ============================================================================

func TestCallSender_Call(t *testing.T) {
	target := types.Target{Topic: "compute"}

	t.Run("经接收器闭环完成调用", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A")
		sock := newMockSocket()
		waiter := NewWaiter()
		sender := NewCallSender(sock, newTestTable(t, mm), waiter)
		receiver := NewReplyReceiver(waiter)

		// 对端响应已就绪
		sock.queueFrames(
			[]byte{},
			[]byte("A"),
			types.ReplyType.Wire(),
			[]byte("msg-call"),
			[]byte("result"),
		)

		// 模拟外部轮询方：登记出现后才消费可读事件
		done := make(chan struct{})
		go func() {
			defer close(done)
			for waiter.Pending() == 0 {
				time.Sleep(time.Millisecond)
			}
			assert.NoError(t, receiver.OnReadable(sock))
		}()

		reply, err := sender.Call(context.Background(), callRequest(target))
		<-done

		require.NoError(t, err)
		assert.Equal(t, "msg-call", reply.MessageID)
		assert.Equal(t, []byte("result"), reply.Payload)
		assert.Equal(t, 0, waiter.Pending())
	})

	t.Run("超时返回并清理登记", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A")
		waiter := NewWaiter()
		sender := NewCallSender(newMockSocket(), newTestTable(t, mm), waiter,
			WithCallTimeout(10*time.Millisecond))

		_, err := sender.Call(context.Background(), callRequest(target))

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 0, waiter.Pending())
	})

	t.Run("取消返回 context.Canceled", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A")
		waiter := NewWaiter()
		sender := NewCallSender(newMockSocket(), newTestTable(t, mm), waiter,
			WithCallTimeout(-1))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sender.Call(ctx, callRequest(target))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
