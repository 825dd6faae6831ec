package interfaces

// ============================================================================
//                              Socket - 多帧传输
// ============================================================================

// Socket 异步多帧套接字
//
// 单写者约束：同一 Socket 上的出站发送必须串行化
// （单事件循环、互斥锁或专职发送任务均可满足）。
// 入站 Recv 由轮询方所在的任务独占，不得与另一次解码
// 交错读取同一套接字的帧。
type Socket interface {
	// ConnectToHost 连接到指定地址
	//
	// 幂等：对已连接地址重复调用是空操作。
	ConnectToHost(address string) error

	// Send 发送一帧；more 指示后续还有同消息的帧
	Send(frame []byte, more bool) error

	// Recv 读取一帧
	Recv() ([]byte, error)

	// Close 关闭套接字
	Close() error
}
