package envelope

import "errors"

// 错误定义
var (
	// ErrProtocolViolation 响应帧序列结构校验失败
	ErrProtocolViolation = errors.New("envelope: protocol violation")

	// ErrTransport 套接字收发失败
	ErrTransport = errors.New("envelope: transport failure")

	// ErrInvalidRequest 请求内容不完整
	ErrInvalidRequest = errors.New("envelope: invalid request")
)
