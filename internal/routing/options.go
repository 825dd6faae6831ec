package routing

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Config 路由表配置
type Config struct {
	// TargetExpire 路由记录的存活时间
	//
	// < 0 表示首次抓取后永不过期；== 0 表示每次查询都强制检查刷新。
	TargetExpire time.Duration

	// CacheSize 路由记录缓存的目标数量上限
	CacheSize int

	// Clock 时钟源（测试中注入 mock）
	Clock clock.Clock
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		TargetExpire: 5 * time.Minute,
		CacheSize:    1024,
		Clock:        clock.New(),
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithTargetExpire 设置路由记录存活时间
func WithTargetExpire(ttl time.Duration) Option {
	return func(c *Config) {
		c.TargetExpire = ttl
	}
}

// WithCacheSize 设置缓存目标数量上限
func WithCacheSize(size int) Option {
	return func(c *Config) {
		c.CacheSize = size
	}
}

// WithClock 设置时钟源
func WithClock(clk clock.Clock) Option {
	return func(c *Config) {
		c.Clock = clk
	}
}
