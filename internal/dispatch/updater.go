package dispatch

import (
	"sync"
	"time"

	"github.com/jbenet/goprocess"
	periodicproc "github.com/jbenet/goprocess/periodic"

	"github.com/dep2p/go-mqrpc/pkg/interfaces"
)

// ============================================================================
//                              ConnectionUpdater 实现
// ============================================================================

// ConnectionUpdater 连接更新器
//
// 周期性向服务发现询问当前代理集合，并对每个路由地址发起
// 幂等连接。这是调度层在不重启的情况下获知新代理的唯一途径。
// 连接是幂等的，更新器自身无需去重状态。
type ConnectionUpdater struct {
	matchmaker interfaces.Matchmaker
	socket     interfaces.Socket
	interval   time.Duration

	mu   sync.Mutex
	proc goprocess.Process
}

// NewConnectionUpdater 创建连接更新器
func NewConnectionUpdater(matchmaker interfaces.Matchmaker, socket interfaces.Socket, opts ...Option) *ConnectionUpdater {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &ConnectionUpdater{
		matchmaker: matchmaker,
		socket:     socket,
		interval:   cfg.UpdateInterval,
	}
}

// Start 启动周期更新
//
// 后台任务不阻塞出站发送；发现查询缓慢只会推迟下一个周期。
func (u *ConnectionUpdater) Start() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.proc != nil {
		return ErrAlreadyStarted
	}

	// 启动即先执行一次，随后按周期运行
	u.proc = goprocess.Go(func(proc goprocess.Process) {
		u.update()
		tick := periodicproc.Tick(u.interval, func(goprocess.Process) {
			u.update()
		})
		proc.AddChild(tick)
		<-proc.Closing()
	})

	logger.Info("连接更新器已启动", "interval", u.interval)
	return nil
}

// Stop 停止周期更新
func (u *ConnectionUpdater) Stop() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.proc == nil {
		return nil
	}
	err := u.proc.Close()
	u.proc = nil
	return err
}

// update 执行一轮更新
//
// 失败只记录，等待下一个调度周期重试，绝不致命。
func (u *ConnectionUpdater) update() {
	publishers, err := u.matchmaker.GetPublishers()
	if err != nil {
		logger.Warn("获取代理列表失败", "err", err)
		return
	}

	for _, pub := range publishers {
		if err := u.socket.ConnectToHost(pub.RouterAddress); err != nil {
			logger.Warn("连接代理失败", "address", pub.RouterAddress, "err", err)
		}
	}
	logger.Debug("连接更新完成", "publishers", len(publishers))
}
