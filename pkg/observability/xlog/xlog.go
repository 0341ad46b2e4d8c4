package xlog

import (
	"context"
	"log/slog"
)

// Logger 本模块统一使用的日志接口。ctx 用于提取链路字段，属性只接受 slog.Attr。
// Build 返回的实现同时满足 LoggerWithLevel；派生出的 Logger 与父级共用一个级别。
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)
	// Stack Error 级别，附带当前 goroutine 的调用栈
	Stack(ctx context.Context, msg string, attrs ...slog.Attr)
	With(attrs ...slog.Attr) Logger
	WithGroup(name string) Logger
}

// Leveler 运行期调整级别，xkafkactl 的配置热更新经由它生效。
type Leveler interface {
	SetLevel(level Level)
	GetLevel() Level
	Enabled(ctx context.Context, level Level) bool
}

// LoggerWithLevel Build 的返回类型
type LoggerWithLevel interface {
	Logger
	Leveler
}

// Log 按 level 调用 l 的对应方法。介于两档之间的级别归入较低一档，
// 低于 Info 的都按 Debug 输出。级别在运行期才确定时使用，如转发 librdkafka 日志。
func Log(ctx context.Context, l Logger, level Level, msg string, attrs ...slog.Attr) {
	switch {
	case level >= LevelError:
		l.Error(ctx, msg, attrs...)
	case level >= LevelWarn:
		l.Warn(ctx, msg, attrs...)
	case level >= LevelInfo:
		l.Info(ctx, msg, attrs...)
	default:
		l.Debug(ctx, msg, attrs...)
	}
}
