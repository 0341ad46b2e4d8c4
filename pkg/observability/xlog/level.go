package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Level 数值沿用 slog.Level，可直接比较
type Level slog.Level

const (
	LevelDebug = Level(slog.LevelDebug)
	LevelInfo  = Level(slog.LevelInfo)
	LevelWarn  = Level(slog.LevelWarn)
	LevelError = Level(slog.LevelError)
)

func (l Level) String() string {
	return slog.Level(l).String()
}

// UnmarshalText 配置文件中的 log.level 经由它解析
func (l *Level) UnmarshalText(data []byte) error {
	parsed, err := ParseLevel(string(data))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLevel 接受 debug/info/warn/warning/error，忽略大小写与首尾空白；空串视为 info。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("xlog: unknown level %q", s)
}

// FromSyslog 把 syslog 严重级别（librdkafka 日志事件使用，0 最严重）映射为 Level。
// emerg/alert/crit/err 合并为 Error，notice 与 info 合并为 Info，大于 7 按 Debug。
func FromSyslog(severity int) Level {
	switch {
	case severity <= 3:
		return LevelError
	case severity == 4:
		return LevelWarn
	case severity <= 6:
		return LevelInfo
	}
	return LevelDebug
}
