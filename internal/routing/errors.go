package routing

import "errors"

// 错误定义
var (
	// ErrNoEndpoints 刷新后端点集合仍为空
	ErrNoEndpoints = errors.New("routing: no endpoints available")

	// ErrDiscoveryUnavailable 服务发现查询失败
	ErrDiscoveryUnavailable = errors.New("routing: discovery unavailable")
)
