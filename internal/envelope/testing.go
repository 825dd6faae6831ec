package envelope

import (
	"errors"
	"sync"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
)

// sentFrame 一次 Send 调用的记录
type sentFrame struct {
	data []byte
	more bool
}

// fakeSocket 帧级套接字 fake
//
// 记录全部出站帧，入站帧从预置队列逐帧返回。
type fakeSocket struct {
	mu        sync.Mutex
	sent      []sentFrame
	inbound   [][]byte
	sendErr   error
	recvErr   error
	connected []string
	closed    bool
}

func newFakeSocket() *fakeSocket {
	return &fakeSocket{}
}

// queueFrames 预置入站帧
func (s *fakeSocket) queueFrames(frames ...[]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbound = append(s.inbound, frames...)
}

// queuedCount 返回尚未被读取的入站帧数
func (s *fakeSocket) queuedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.inbound)
}

// sentFrames 返回出站帧记录
func (s *fakeSocket) sentFrames() []sentFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentFrame, len(s.sent))
	copy(out, s.sent)
	return out
}

func (s *fakeSocket) ConnectToHost(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = append(s.connected, address)
	return nil
}

func (s *fakeSocket) Send(frame []byte, more bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	data := make([]byte, len(frame))
	copy(data, frame)
	s.sent = append(s.sent, sentFrame{data: data, more: more})
	return nil
}

func (s *fakeSocket) Recv() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recvErr != nil {
		return nil, s.recvErr
	}
	if len(s.inbound) == 0 {
		return nil, errors.New("fake socket: no frames queued")
	}
	frame := s.inbound[0]
	s.inbound = s.inbound[1:]
	return frame, nil
}

func (s *fakeSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ interfaces.Socket = (*fakeSocket)(nil)
