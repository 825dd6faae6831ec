package mqrpc

import (
	"time"

	"github.com/dep2p/go-mqrpc/internal/dispatch"
	"github.com/dep2p/go-mqrpc/internal/routing"
)

// clientConfig 客户端配置
type clientConfig struct {
	routingOpts  []routing.Option
	dispatchOpts []dispatch.Option
}

// Option 配置选项函数
type Option func(*clientConfig)

// WithUsePubSub 设置传输是否具备主题分发能力
//
// false 时广播类消息由发送方逐端点显式复制信封。
func WithUsePubSub(enabled bool) Option {
	return func(c *clientConfig) {
		c.dispatchOpts = append(c.dispatchOpts, dispatch.WithUsePubSub(enabled))
	}
}

// WithTargetExpire 设置路由记录的存活时间
//
// < 0 表示首次抓取后永不过期；== 0 表示每次查询都强制检查刷新。
func WithTargetExpire(ttl time.Duration) Option {
	return func(c *clientConfig) {
		c.routingOpts = append(c.routingOpts, routing.WithTargetExpire(ttl))
	}
}

// WithRoutingCacheSize 设置路由记录缓存的目标数量上限
func WithRoutingCacheSize(size int) Option {
	return func(c *clientConfig) {
		c.routingOpts = append(c.routingOpts, routing.WithCacheSize(size))
	}
}

// WithCallTimeout 设置调用等待响应的默认超时
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.dispatchOpts = append(c.dispatchOpts, dispatch.WithCallTimeout(timeout))
	}
}

// WithUpdateInterval 设置连接更新器的运行周期
func WithUpdateInterval(interval time.Duration) Option {
	return func(c *clientConfig) {
		c.dispatchOpts = append(c.dispatchOpts, dispatch.WithUpdateInterval(interval))
	}
}
