package routing

import (
	"sync"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

// mockMatchmaker 是 Matchmaker 的 mock 实现
type mockMatchmaker struct {
	mu         sync.Mutex
	hosts      map[string][]types.HostID
	err        error
	fetchCount int
}

func newMockMatchmaker() *mockMatchmaker {
	return &mockMatchmaker{
		hosts: make(map[string][]types.HostID),
	}
}

// setHosts 设置目标的发现结果
func (m *mockMatchmaker) setHosts(target types.Target, hosts ...types.HostID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hosts[target.Key()] = hosts
}

// setErr 让后续查询失败
func (m *mockMatchmaker) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// fetches 返回累计查询次数
func (m *mockMatchmaker) fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCount
}

func (m *mockMatchmaker) GetHosts(target types.Target, _ string) ([]types.HostID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCount++
	if m.err != nil {
		return nil, m.err
	}
	hosts := m.hosts[target.Key()]
	out := make([]types.HostID, len(hosts))
	copy(out, hosts)
	return out, nil
}

func (m *mockMatchmaker) GetPublishers() ([]types.PublisherAddress, error) {
	return nil, nil
}

var _ interfaces.Matchmaker = (*mockMatchmaker)(nil)
