package dispatch

import "time"

// Config 调度层配置
type Config struct {
	// UsePubSub 传输是否具备主题分发能力
	//
	// true 时广播类消息按主题过滤串寻址，由传输层自行扇出；
	// false 时由发送方逐端点显式复制信封。
	UsePubSub bool

	// CallTimeout 调用等待响应的默认超时
	CallTimeout time.Duration

	// UpdateInterval 连接更新器的运行周期
	UpdateInterval time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		UsePubSub:      true,
		CallTimeout:    30 * time.Second,
		UpdateInterval: 10 * time.Second,
	}
}

// Option 配置选项函数
type Option func(*Config)

// WithUsePubSub 设置传输是否具备主题分发能力
func WithUsePubSub(enabled bool) Option {
	return func(c *Config) {
		c.UsePubSub = enabled
	}
}

// WithCallTimeout 设置调用超时
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.CallTimeout = timeout
	}
}

// WithUpdateInterval 设置连接更新周期
func WithUpdateInterval(interval time.Duration) Option {
	return func(c *Config) {
		c.UpdateInterval = interval
	}
}
