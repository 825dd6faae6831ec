package mqrpc

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-mqrpc/internal/dispatch"
	"github.com/dep2p/go-mqrpc/internal/routing"
)

// ════════════════════════════════════════════════════════════════════════════
//                              Fx 集成
// ════════════════════════════════════════════════════════════════════════════

// Module 返回完整调度层的 fx 模块配置
//
// 宿主应用需提供以下依赖：
//   - interfaces.Matchmaker
//   - interfaces.Socket `name:"proxy_socket"`
//   - interfaces.Socket `name:"call_socket"`
//
// 可选提供 *routing.Config 与 *dispatch.Config 覆盖默认配置。
// 连接更新器随 fx 生命周期自动启停。
func Module() fx.Option {
	return fx.Options(
		routing.Module(),
		dispatch.Module(),
	)
}
