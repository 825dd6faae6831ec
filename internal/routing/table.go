package routing

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/lib/log"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

var logger = log.Logger("mqrpc/routing")

// ============================================================================
//                              路由记录
// ============================================================================

// record 一个目标最近一次成功抓取的完整端点集合
//
// 刷新时整体替换，从不原地修改。
type record struct {
	hosts     []types.HostID
	fetchedAt time.Time
}

// ============================================================================
//                              Table 实现
// ============================================================================

// Table 本地路由表缓存
//
// 以轮询方式给出目标的下一个可路由端点。记录缓存有界，
// 记录被淘汰时其轮询队列一并丢弃。
//
// 弹出并按需重建不是无竞争的原子操作，所有查询都在内部
// 互斥锁下串行执行。
type Table struct {
	cfg        *Config
	matchmaker interfaces.Matchmaker
	clock      clock.Clock

	mu       sync.Mutex
	records  *lru.Cache[string, *record]
	routable map[string][]types.HostID
}

// NewTable 创建路由表
func NewTable(matchmaker interfaces.Matchmaker, opts ...Option) (*Table, error) {
	if matchmaker == nil {
		return nil, fmt.Errorf("routing: matchmaker is nil")
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultConfig().CacheSize
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}

	t := &Table{
		cfg:        cfg,
		matchmaker: matchmaker,
		clock:      cfg.Clock,
		routable:   make(map[string][]types.HostID),
	}

	// 淘汰回调在 Add 持有 t.mu 时同步触发，直接清理队列即可
	records, err := lru.NewWithEvict[string, *record](cfg.CacheSize, func(key string, _ *record) {
		delete(t.routable, key)
	})
	if err != nil {
		return nil, err
	}
	t.records = records

	return t, nil
}

// GetAllHosts 返回目标当前端点集合的非消费式快照
//
// 用于显式扇出寻址。记录缺失或超龄时先刷新；不移动轮询游标。
func (t *Table) GetAllHosts(target types.Target) ([]types.HostID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.update(target); err != nil {
		return nil, err
	}

	hosts := t.routable[target.Key()]
	if len(hosts) == 0 {
		return nil, fmt.Errorf("%w: target %s", ErrNoEndpoints, target)
	}

	out := make([]types.HostID, len(hosts))
	copy(out, hosts)
	return out, nil
}

// GetRoutableHost 弹出目标轮询队列的队首端点
//
// 队列弹空后立即从当前记录重建；队列整体缺失时先建再弹。
// 重建尝试后仍为空则返回 ErrNoEndpoints。
func (t *Table) GetRoutableHost(target types.Target) (types.HostID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.update(target); err != nil {
		return "", err
	}

	key := target.Key()
	hosts := t.routable[key]
	if len(hosts) == 0 {
		t.renew(key)
		hosts = t.routable[key]
		if len(hosts) == 0 {
			return "", fmt.Errorf("%w: target %s", ErrNoEndpoints, target)
		}
	}

	host := hosts[0]
	t.routable[key] = hosts[1:]
	if len(t.routable[key]) == 0 {
		t.renew(key)
	}
	return host, nil
}

// update 保证目标的路由记录存在且未超龄
//
// 记录缺失时抓取并同时重建轮询队列；记录超龄时只替换记录，
// 不触碰在用的轮询队列（见包文档）。
func (t *Table) update(target types.Target) error {
	key := target.Key()
	rec, ok := t.records.Get(key)
	if !ok {
		if err := t.fetch(target); err != nil {
			return err
		}
		t.renew(key)
		return nil
	}

	if t.expired(rec.fetchedAt) {
		return t.fetch(target)
	}
	return nil
}

// expired 检查记录是否超龄
func (t *Table) expired(fetchedAt time.Time) bool {
	ttl := t.cfg.TargetExpire
	return ttl >= 0 && t.clock.Since(fetchedAt) >= ttl
}

// fetch 从服务发现抓取并整体替换路由记录
func (t *Table) fetch(target types.Target) error {
	hosts, err := t.matchmaker.GetHosts(target, interfaces.RoleDealer)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDiscoveryUnavailable, err)
	}

	t.records.Add(target.Key(), &record{hosts: hosts, fetchedAt: t.clock.Now()})
	logger.Debug("已刷新路由记录", "target", target.Key(), "hosts", len(hosts))
	return nil
}

// renew 从当前记录重建目标的轮询队列
func (t *Table) renew(key string) {
	if rec, ok := t.records.Get(key); ok {
		t.routable[key] = append([]types.HostID(nil), rec.hosts...)
	}
}
