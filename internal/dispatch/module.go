// Package dispatch 实现出站请求的调度策略
//
// 调度模块负责：
// - 通用发送模式（单端点 / 主题过滤 / 显式扇出）
// - 调用模式（单端点 + 响应关联）
// - 代理连接维护
package dispatch

import (
	"context"

	"go.uber.org/fx"

	"github.com/dep2p/go-mqrpc/internal/routing"
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

	// Table 路由表
	Table *routing.Table

	// ProxySocket 通用调度使用的出站套接字
	ProxySocket interfaces.Socket `name:"proxy_socket"`

	// CallSocket 调用模式使用的出站套接字
	CallSocket interfaces.Socket `name:"call_socket"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	// Publisher 通用调度器
	Publisher *Publisher

	// CallSender 调用发送器
	CallSender *CallSender

	// Waiter 响应关联引擎
	Waiter interfaces.ReplyWaiter

	// Receiver 响应解码器
	Receiver *ReplyReceiver

	// Updaters 每套接字一个连接更新器
	Updaters []*ConnectionUpdater
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	var opts []Option
	if input.Config != nil {
		opts = append(opts,
			WithUsePubSub(input.Config.UsePubSub),
			WithCallTimeout(input.Config.CallTimeout),
			WithUpdateInterval(input.Config.UpdateInterval),
		)
	}

	waiter := NewWaiter()
	publisher := NewPublisher(input.ProxySocket, input.Table, opts...)
	callSender := NewCallSender(input.CallSocket, input.Table, waiter, opts...)
	receiver := NewReplyReceiver(waiter)
	updaters := []*ConnectionUpdater{
		NewConnectionUpdater(input.Matchmaker, input.ProxySocket, opts...),
		NewConnectionUpdater(input.Matchmaker, input.CallSocket, opts...),
	}

	return ModuleOutput{
		Publisher:  publisher,
		CallSender: callSender,
		Waiter:     waiter,
		Receiver:   receiver,
		Updaters:   updaters,
	}, nil
}

// Module 返回 fx 模块配置
func Module() fx.Option {
	return fx.Module("dispatch",
		fx.Provide(ProvideServices),
		fx.Invoke(registerLifecycle),
	)
}

// lifecycleInput 生命周期输入参数
type lifecycleInput struct {
	fx.In

	LC       fx.Lifecycle
	Updaters []*ConnectionUpdater
}

// registerLifecycle 注册生命周期
func registerLifecycle(input lifecycleInput) {
	input.LC.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			for _, updater := range input.Updaters {
				if err := updater.Start(); err != nil {
					return err
				}
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			for _, updater := range input.Updaters {
				if err := updater.Stop(); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
