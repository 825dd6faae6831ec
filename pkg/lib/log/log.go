// Package log 提供 go-mqrpc 统一日志接口
//
// 基于 Go 标准库 log/slog 封装，提供简洁的日志 API。
//
// 支持通过环境变量配置：
//   - MQRPC_LOG_LEVEL: debug / info / warn / error（默认 info）
//   - MQRPC_LOG_FORMAT: text 或 json（默认 text）
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// 日志级别常量（从 slog 导出，方便使用）
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

func init() {
	level := parseLevel(os.Getenv("MQRPC_LOG_LEVEL"))
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(os.Getenv("MQRPC_LOG_FORMAT"), "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// parseLevel 解析日志级别字符串
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefault 设置默认 logger
func SetDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

// SetOutput 设置日志输出目标
//
// 重新创建默认 logger，将输出重定向到指定的 Writer。
func SetOutput(w io.Writer) {
	SetOutputWithLevel(w, slog.LevelInfo)
}

// SetOutputWithLevel 同时设置日志输出目标和级别
func SetOutputWithLevel(w io.Writer, level slog.Level) {
	opts := &slog.HandlerOptions{Level: level}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
}

// SetLevel 设置日志级别
func SetLevel(level slog.Level) {
	SetOutputWithLevel(os.Stderr, level)
}

// ============================================================================
//                              LazyLogger
// ============================================================================

// LazyLogger 懒加载 logger
//
// 每次日志调用时都从 slog.Default() 获取最新的 handler，
// 支持在运行时动态切换日志输出目标。
//
// 使用方式：
//
//	var logger = log.Logger("mqrpc/routing")
//	logger.Info("hello")
type LazyLogger struct {
	component string
}

// Debug 输出 Debug 级别日志
func (l *LazyLogger) Debug(msg string, args ...any) {
	slog.Default().With("component", l.component).Debug(msg, args...)
}

// Info 输出 Info 级别日志
func (l *LazyLogger) Info(msg string, args ...any) {
	slog.Default().With("component", l.component).Info(msg, args...)
}

// Warn 输出 Warn 级别日志
func (l *LazyLogger) Warn(msg string, args ...any) {
	slog.Default().With("component", l.component).Warn(msg, args...)
}

// Error 输出 Error 级别日志
func (l *LazyLogger) Error(msg string, args ...any) {
	slog.Default().With("component", l.component).Error(msg, args...)
}

// DebugContext 带 context 的 Debug 日志
func (l *LazyLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	slog.Default().With("component", l.component).DebugContext(ctx, msg, args...)
}

// InfoContext 带 context 的 Info 日志
func (l *LazyLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	slog.Default().With("component", l.component).InfoContext(ctx, msg, args...)
}

// With 添加额外的属性
func (l *LazyLogger) With(args ...any) *slog.Logger {
	return slog.Default().With("component", l.component).With(args...)
}

// Logger 返回带组件名的 LazyLogger
func Logger(component string) *LazyLogger {
	return &LazyLogger{component: component}
}
