package dispatch

import (
	"errors"
	"sync"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

// ============================================================================
//                              Matchmaker mock
// ============================================================================

// mockMatchmaker 是 Matchmaker 的 mock 实现
type mockMatchmaker struct {
	mu         sync.Mutex
	hosts      map[string][]types.HostID
	publishers []types.PublisherAddress
	hostsErr   error
	pubsErr    error
	hostsCalls int
	pubsCalls  int
}

func newMockMatchmaker() *mockMatchmaker {
	return &mockMatchmaker{
		hosts: make(map[string][]types.HostID),
	}
}

func (m *mockMatchmaker) setHosts(target types.Target, hosts ...types.HostID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hosts[target.Key()] = hosts
}

func (m *mockMatchmaker) setPublishers(pubs ...types.PublisherAddress) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishers = pubs
	m.pubsErr = nil
}

func (m *mockMatchmaker) setPublishersErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pubsErr = err
}

func (m *mockMatchmaker) publisherCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pubsCalls
}

func (m *mockMatchmaker) hostCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hostsCalls
}

func (m *mockMatchmaker) GetHosts(target types.Target, _ string) ([]types.HostID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hostsCalls++
	if m.hostsErr != nil {
		return nil, m.hostsErr
	}
	hosts := m.hosts[target.Key()]
	out := make([]types.HostID, len(hosts))
	copy(out, hosts)
	return out, nil
}

func (m *mockMatchmaker) GetPublishers() ([]types.PublisherAddress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pubsCalls++
	if m.pubsErr != nil {
		return nil, m.pubsErr
	}
	out := make([]types.PublisherAddress, len(m.publishers))
	copy(out, m.publishers)
	return out, nil
}

var _ interfaces.Matchmaker = (*mockMatchmaker)(nil)

// ============================================================================
//                              Socket mock
// ============================================================================

// sentFrame 一次 Send 调用的记录
type sentFrame struct {
	data []byte
	more bool
}

// mockSocket 帧级套接字 mock
type mockSocket struct {
	mu        sync.Mutex
	sent      []sentFrame
	inbound   [][]byte
	connected []string
	sendErr   error
	closed    bool
}

func newMockSocket() *mockSocket {
	return &mockSocket{}
}

// queueFrames 预置入站帧
func (s *mockSocket) queueFrames(frames ...[]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inbound = append(s.inbound, frames...)
}

// sentFrames 返回出站帧记录
func (s *mockSocket) sentFrames() []sentFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]sentFrame, len(s.sent))
	copy(out, s.sent)
	return out
}

// envelopes 按零长分隔帧切分出站帧，还原每个信封
func (s *mockSocket) envelopes() [][][]byte {
	frames := s.sentFrames()
	var all [][][]byte
	var cur [][]byte
	for _, f := range frames {
		cur = append(cur, f.data)
		if !f.more {
			all = append(all, cur)
			cur = nil
		}
	}
	return all
}

// connections 返回 ConnectToHost 的调用记录
func (s *mockSocket) connections() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.connected))
	copy(out, s.connected)
	return out
}

func (s *mockSocket) ConnectToHost(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = append(s.connected, address)
	return nil
}

func (s *mockSocket) Send(frame []byte, more bool) error {
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

func (s *mockSocket) Recv() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.inbound) == 0 {
		return nil, errors.New("mock socket: no frames queued")
	}
	frame := s.inbound[0]
	s.inbound = s.inbound[1:]
	return frame, nil
}

func (s *mockSocket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ interfaces.Socket = (*mockSocket)(nil)
