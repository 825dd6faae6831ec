package routing

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	// Config 配置（可选）
	Config *Config `optional:"true"`

	// Matchmaker 服务发现
	Matchmaker interfaces.Matchmaker
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Table 路由表
	Table *Table
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	var opts []Option
	if input.Config != nil {
		opts = append(opts,
			WithTargetExpire(input.Config.TargetExpire),
			WithCacheSize(input.Config.CacheSize),
		)
		if input.Config.Clock != nil {
			opts = append(opts, WithClock(input.Config.Clock))
		}
	}

	table, err := NewTable(input.Matchmaker, opts...)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{Table: table}, nil
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("routing",
		fx.Provide(ProvideServices),
	)
}
