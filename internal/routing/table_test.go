// Package routing 路由表测试
package routing

import (
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-mqrpc/pkg/types"
)

// ============================================================================
//                              Table 创建测试
// ============================================================================

func TestNewTable(t *testing.T) {
	t.Run("默认配置创建", func(t *testing.T) {
		table, err := NewTable(newMockMatchmaker())

		require.NoError(t, err)
		require.NotNil(t, table)
		assert.NotNil(t, table.records)
		assert.NotNil(t, table.routable)
	})

	t.Run("Matchmaker 为空", func(t *testing.T) {
		table, err := NewTable(nil)

		require.Error(t, err)
		assert.Nil(t, table)
	})

	t.Run("非法缓存上限回退默认值", func(t *testing.T) {
		table, err := NewTable(newMockMatchmaker(), WithCacheSize(0))

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().CacheSize, table.cfg.CacheSize)
	})
}

// ============================================================================
//                              轮询测试
// ============================================================================

func TestTable_GetRoutableHost(t *testing.T) {
	target := types.Target{Topic: "compute"}

	t.Run("轮询循环 A B C A", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B", "C")
		table, err := NewTable(mm)
		require.NoError(t, err)

		var got []types.HostID
		for i := 0; i < 4; i++ {
			host, err := table.GetRoutableHost(target)
			require.NoError(t, err)
			got = append(got, host)
		}

		assert.Equal(t, []types.HostID{"A", "B", "C", "A"}, got)
	})

	t.Run("单端点反复返回", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A")
		table, err := NewTable(mm)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			host, err := table.GetRoutableHost(target)
			require.NoError(t, err)
			assert.Equal(t, types.HostID("A"), host)
		}
	})

	t.Run("空端点集合返回 ErrNoEndpoints", func(t *testing.T) {
		mm := newMockMatchmaker()
		table, err := NewTable(mm)
		require.NoError(t, err)

		_, err = table.GetRoutableHost(target)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNoEndpoints)
	})

	t.Run("发现失败返回 ErrDiscoveryUnavailable", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setErr(errors.New("connection refused"))
		table, err := NewTable(mm)
		require.NoError(t, err)

		_, err = table.GetRoutableHost(target)

		assert.ErrorIs(t, err, ErrDiscoveryUnavailable)
	})
}

// ============================================================================
//                              时效测试
// ============================================================================

func TestTable_Expiry(t *testing.T) {
	target := types.Target{Topic: "compute"}

	t.Run("TTL 为 0 时每次查询都重新抓取", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B")
		table, err := NewTable(mm, WithTargetExpire(0))
		require.NoError(t, err)

		_, err = table.GetRoutableHost(target)
		require.NoError(t, err)
		_, err = table.GetRoutableHost(target)
		require.NoError(t, err)

		assert.Equal(t, 2, mm.fetches())
	})

	t.Run("负 TTL 首次抓取后永不刷新", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B")
		clk := clock.NewMock()
		table, err := NewTable(mm, WithTargetExpire(-1), WithClock(clk))
		require.NoError(t, err)

		for i := 0; i < 5; i++ {
			_, err = table.GetRoutableHost(target)
			require.NoError(t, err)
			clk.Add(time.Hour)
		}

		assert.Equal(t, 1, mm.fetches())
	})

	t.Run("刷新不打断在用的轮询队列", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B")
		table, err := NewTable(mm, WithTargetExpire(0))
		require.NoError(t, err)

		// 首次查询抓取 [A, B]
		host, err := table.GetRoutableHost(target)
		require.NoError(t, err)
		assert.Equal(t, types.HostID("A"), host)

		// 发现结果变为 [C]，但队列尚未耗尽，仍从旧集合返回
		mm.setHosts(target, "C")
		host, err = table.GetRoutableHost(target)
		require.NoError(t, err)
		assert.Equal(t, types.HostID("B"), host)

		// 队列耗尽后，下一次返回新集合的端点
		host, err = table.GetRoutableHost(target)
		require.NoError(t, err)
		assert.Equal(t, types.HostID("C"), host)
	})

	t.Run("超龄后按 mock 时钟刷新记录", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A")
		clk := clock.NewMock()
		table, err := NewTable(mm, WithTargetExpire(time.Minute), WithClock(clk))
		require.NoError(t, err)

		_, err = table.GetRoutableHost(target)
		require.NoError(t, err)
		assert.Equal(t, 1, mm.fetches())

		// 未超龄不刷新
		clk.Add(30 * time.Second)
		_, err = table.GetRoutableHost(target)
		require.NoError(t, err)
		assert.Equal(t, 1, mm.fetches())

		// 超龄后刷新
		clk.Add(31 * time.Second)
		_, err = table.GetRoutableHost(target)
		require.NoError(t, err)
		assert.Equal(t, 2, mm.fetches())
	})
}

// ============================================================================
//                              快照测试
// ============================================================================

func TestTable_GetAllHosts(t *testing.T) {
	target := types.Target{Topic: "compute", Fanout: true}

	t.Run("返回全量快照", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B", "C")
		table, err := NewTable(mm)
		require.NoError(t, err)

		hosts, err := table.GetAllHosts(target)

		require.NoError(t, err)
		assert.Equal(t, []types.HostID{"A", "B", "C"}, hosts)
	})

	t.Run("重复调用不消费轮询队列", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B")
		table, err := NewTable(mm)
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			hosts, err := table.GetAllHosts(target)
			require.NoError(t, err)
			assert.Equal(t, []types.HostID{"A", "B"}, hosts)
		}

		// 快照读取之后轮询仍从队首开始
		host, err := table.GetRoutableHost(target)
		require.NoError(t, err)
		assert.Equal(t, types.HostID("A"), host)
	})

	t.Run("修改返回值不影响内部状态", func(t *testing.T) {
		mm := newMockMatchmaker()
		mm.setHosts(target, "A", "B")
		table, err := NewTable(mm)
		require.NoError(t, err)

		hosts, err := table.GetAllHosts(target)
		require.NoError(t, err)
		hosts[0] = "X"

		again, err := table.GetAllHosts(target)
		require.NoError(t, err)
		assert.Equal(t, []types.HostID{"A", "B"}, again)
	})

	t.Run("空端点集合返回 ErrNoEndpoints", func(t *testing.T) {
		mm := newMockMatchmaker()
		table, err := NewTable(mm)
		require.NoError(t, err)

		_, err = table.GetAllHosts(target)

		assert.ErrorIs(t, err, ErrNoEndpoints)
	})
}

// ============================================================================
//                              缓存淘汰测试
// ============================================================================

func TestTable_Eviction(t *testing.T) {
	t.Run("记录淘汰时轮询队列一并丢弃", func(t *testing.T) {
		mm := newMockMatchmaker()
		t1 := types.Target{Topic: "one"}
		t2 := types.Target{Topic: "two"}
		mm.setHosts(t1, "A")
		mm.setHosts(t2, "B")

		table, err := NewTable(mm, WithCacheSize(1))
		require.NoError(t, err)

		_, err = table.GetRoutableHost(t1)
		require.NoError(t, err)
		_, err = table.GetRoutableHost(t2)
		require.NoError(t, err)

		table.mu.Lock()
		_, ok := table.routable[t1.Key()]
		table.mu.Unlock()
		assert.False(t, ok)
	})
}
