package dispatch

import (
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/dep2p/go-mqrpc/internal/envelope"
	"github.com/dep2p/go-mqrpc/internal/routing"
	"github.com/dep2p/go-mqrpc/pkg/interfaces"
	"github.com/dep2p/go-mqrpc/pkg/lib/log"
	"github.com/dep2p/go-mqrpc/pkg/types"
)

var logger = log.Logger("mqrpc/dispatch")

// ============================================================================
//                              Publisher 实现
// ============================================================================

// Publisher 通用调度策略
//
// 处理除 CALL 外的全部消息类型。寻址方式由传输模式与消息
// 类型共同决定，见包文档。持有 socket 的发送属主权。
type Publisher struct {
	cfg    *Config
	socket interfaces.Socket
	table  *routing.Table
	codec  *envelope.Codec

	// sendMu 保证一个信封的多帧发送不被交错
	sendMu sync.Mutex
}

// NewPublisher 创建通用调度器
func NewPublisher(socket interfaces.Socket, table *routing.Table, opts ...Option) *Publisher {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Publisher{
		cfg:    cfg,
		socket: socket,
		table:  table,
		codec:  envelope.NewCodec(),
	}
}

// Send 按调度策略发送一条请求
//
// CALL 类型同步返回 ErrUnsupportedPattern，且不产生任何套接字
// I/O；该模式由 CallSender 独占。
func (p *Publisher) Send(req *types.Request) error {
	if req.MsgType == types.CallType {
		return fmt.Errorf("%w: %s", ErrUnsupportedPattern, req.MsgType)
	}

	if p.cfg.UsePubSub {
		if req.MsgType.IsDirect() {
			host, err := p.table.GetRoutableHost(req.Target)
			if err != nil {
				return err
			}
			return p.sendTo(req, string(host))
		}
		// 广播类：主题过滤寻址，扇出由传输层完成
		return p.sendTo(req, req.Target.SubscribeFilter())
	}

	// 无主题分发能力：发送方逐端点显式复制
	hosts, err := p.table.GetAllHosts(req.Target)
	if err != nil {
		return err
	}

	var errs error
	for _, host := range hosts {
		if err := p.sendTo(req, string(host)); err != nil {
			// 单个端点失败不中止剩余发送
			logger.Warn("端点发送失败",
				"messageID", req.MessageID,
				"host", host,
				"err", err)
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// sendTo 向单个路由键发送一个信封
func (p *Publisher) sendTo(req *types.Request, routingKey string) error {
	p.sendMu.Lock()
	err := p.codec.SendRequest(p.socket, req, routingKey)
	p.sendMu.Unlock()
	if err != nil {
		return err
	}

	logger.Debug("已发送消息",
		"messageID", req.MessageID,
		"target", req.Target.String(),
		"routingKey", routingKey)
	return nil
}

// Close 关闭持有的套接字
func (p *Publisher) Close() error {
	return p.socket.Close()
}
