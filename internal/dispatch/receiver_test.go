package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-mqrpc/internal/envelope"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

func TestReplyReceiver(t *testing.T) {
	t.Run("解码并交给关联引擎", func(t *testing.T) {
		waiter := NewWaiter()
		receiver := NewReplyReceiver(waiter)
		sock := newMockSocket()

		ch := waiter.Track("msg-1")
		sock.queueFrames(
			[]byte{},
			[]byte("proxy-1"),
			types.ReplyType.Wire(),
			[]byte("msg-1"),
			[]byte("result"),
		)

		require.NoError(t, receiver.OnReadable(sock))

		reply := <-ch
		assert.Equal(t, []byte("result"), reply.Payload)
	})

	t.Run("结构非法的响应不解析任何挂起调用", func(t *testing.T) {
		waiter := NewWaiter()
		receiver := NewReplyReceiver(waiter)
		sock := newMockSocket()

		ch := waiter.Track("msg-1")
		// 类型帧不是 REPLY
		sock.queueFrames(
			[]byte{},
			[]byte("proxy-1"),
			types.CastType.Wire(),
			[]byte("msg-1"),
			[]byte("result"),
		)

		err := receiver.OnReadable(sock)

		assert.ErrorIs(t, err, envelope.ErrProtocolViolation)
		select {
		case <-ch:
			t.Fatal("非法响应不应解析挂起调用")
		default:
		}
		// 挂起调用保持在途，发起方最终以超时观察到
		assert.Equal(t, 1, waiter.Pending())
	})

	t.Run("解码失败不影响后续可读事件", func(t *testing.T) {
		waiter := NewWaiter()
		receiver := NewReplyReceiver(waiter)
		sock := newMockSocket()

		ch := waiter.Track("msg-2")
		// 第一条响应类型帧非 REPLY，第二条合法
		sock.queueFrames([]byte{}, []byte("proxy-1"), types.CastType.Wire(), []byte("msg-x"), []byte("bad"))
		sock.queueFrames([]byte{}, []byte("proxy-1"), types.ReplyType.Wire(), []byte("msg-2"), []byte("good"))

		// 非法信封整体出队作废，下一次可读事件直接对齐到第二条
		err := receiver.OnReadable(sock)
		assert.ErrorIs(t, err, envelope.ErrProtocolViolation)

		require.NoError(t, receiver.OnReadable(sock))
		reply := <-ch
		assert.Equal(t, []byte("good"), reply.Payload)
	})
}
