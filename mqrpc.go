package mqrpc

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/dep2p/go-mqrpc/internal/dispatch"
	"github.com/dep2p/go-mqrpc/internal/routing"
	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

// Version 当前版本
const Version = "v0.1.0"

// ════════════════════════════════════════════════════════════════════════════
//                              类型别名
// ════════════════════════════════════════════════════════════════════════════

// Target 是 types.Target 的别名，方便调用方使用
type Target = types.Target

// Reply 是 types.Reply 的别名
type Reply = types.Reply

// ════════════════════════════════════════════════════════════════════════════
//                              Client 门面
// ════════════════════════════════════════════════════════════════════════════

// Client 调度层客户端门面
//
// 组装路由表、调度器、调用发送器、响应关联引擎与连接更新器。
// proxySocket 由通用调度独占，callSocket 由调用模式独占，二者
// 不可是同一个套接字（单写者约束，见 internal/dispatch 包文档）。
type Client struct {
	table      *routing.Table
	publisher  *dispatch.Publisher
	callSender *dispatch.CallSender
	waiter     *dispatch.Waiter
	receiver   *dispatch.ReplyReceiver
	updaters   []*dispatch.ConnectionUpdater
	callSocket interfaces.Socket
}

// New 创建客户端
func New(matchmaker interfaces.Matchmaker, proxySocket, callSocket interfaces.Socket, opts ...Option) (*Client, error) {
	if matchmaker == nil {
		return nil, fmt.Errorf("mqrpc: matchmaker is nil")
	}
	if proxySocket == nil || callSocket == nil {
		return nil, fmt.Errorf("mqrpc: socket is nil")
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	table, err := routing.NewTable(matchmaker, cfg.routingOpts...)
	if err != nil {
		return nil, err
	}

	waiter := dispatch.NewWaiter()
	client := &Client{
		table:      table,
		publisher:  dispatch.NewPublisher(proxySocket, table, cfg.dispatchOpts...),
		callSender: dispatch.NewCallSender(callSocket, table, waiter, cfg.dispatchOpts...),
		waiter:     waiter,
		receiver:   dispatch.NewReplyReceiver(waiter),
		callSocket: callSocket,
		updaters: []*dispatch.ConnectionUpdater{
			dispatch.NewConnectionUpdater(matchmaker, proxySocket, cfg.dispatchOpts...),
			dispatch.NewConnectionUpdater(matchmaker, callSocket, cfg.dispatchOpts...),
		},
	}
	return client, nil
}

// Start 启动后台连接维护
func (c *Client) Start() error {
	for _, updater := range c.updaters {
		if err := updater.Start(); err != nil {
			return err
		}
	}
	return nil
}

// Close 停止后台任务并关闭持有的套接字
func (c *Client) Close() error {
	var errs error
	for _, updater := range c.updaters {
		errs = multierr.Append(errs, updater.Stop())
	}
	errs = multierr.Append(errs, c.publisher.Close())
	errs = multierr.Append(errs, c.callSender.Close())
	return errs
}

// ════════════════════════════════════════════════════════════════════════════
//                              发送 API
// ════════════════════════════════════════════════════════════════════════════

// Call 发送调用请求并等待响应
func (c *Client) Call(ctx context.Context, target Target, message []byte, metadata map[string]string) (*Reply, error) {
	return c.callSender.Call(ctx, c.newRequest(types.CallType, target, message, metadata))
}

// Cast 发送单端点单向消息（轮询负载均衡）
func (c *Client) Cast(target Target, message []byte) error {
	return c.publisher.Send(c.newRequest(types.CastType, target, message, nil))
}

// CastFanout 扇出单向消息到主题的全部成员
func (c *Client) CastFanout(target Target, message []byte) error {
	target.Fanout = true
	return c.publisher.Send(c.newRequest(types.FanoutType, target, message, nil))
}

// Notify 发送通知消息
func (c *Client) Notify(target Target, message []byte, metadata map[string]string) error {
	return c.publisher.Send(c.newRequest(types.NotifyType, target, message, metadata))
}

// OnReplyReadable 消费调用套接字上的一次可读事件
//
// 由外部轮询方在 callSocket 可读时调用。
func (c *Client) OnReplyReadable() error {
	return c.receiver.OnReadable(c.callSocket)
}

// newRequest 构造带唯一 message_id 的请求
func (c *Client) newRequest(msgType types.MessageType, target Target, message []byte, metadata map[string]string) *types.Request {
	if metadata == nil {
		metadata = make(map[string]string)
	}
	return &types.Request{
		MsgType:   msgType,
		Target:    target,
		MessageID: uuid.NewString(),
		Context:   metadata,
		Message:   message,
	}
}
