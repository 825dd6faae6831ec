package dispatch

import "errors"

// 错误定义
var (
	// ErrUnsupportedPattern 调度器不支持该发送模式
	//
	// 通用 Publisher 收到 CALL 类型、或 CallSender 收到非 CALL
	// 类型时同步返回。属编程/配置错误，不可重试。
	ErrUnsupportedPattern = errors.New("dispatch: unsupported send pattern")

	// ErrReplyChannelClosed 等待期间响应通道被关闭
	ErrReplyChannelClosed = errors.New("dispatch: reply channel closed")

	// ErrAlreadyStarted 更新器已启动
	ErrAlreadyStarted = errors.New("dispatch: connection updater already started")
)
