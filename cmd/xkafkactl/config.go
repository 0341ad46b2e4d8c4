package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/kafkamq/pkg/config/xconf"
	"github.com/omeyang/kafkamq/pkg/mq/xkafka"
	"github.com/omeyang/kafkamq/pkg/observability/xlog"
	"github.com/omeyang/kafkamq/pkg/observability/xmetrics"
)

// librdkafka 属性名带 "."，配置路径改用 "/" 分隔
const (
	configDelim = "/"

	keyKafka    = "kafka"
	keyBrokers  = "kafka/brokers"
	keyLog      = "log"
	keyLogLevel = "log/level"
)

type logSettings struct {
	Level    string        `koanf:"level"`
	Format   string        `koanf:"format"`
	File     string        `koanf:"file"`
	Rotation xlog.Rotation `koanf:"rotation"`
}

// env 一次命令执行所需的配置、日志与配置加载器。
type env struct {
	loader   *xconf.Loader
	kafka    xkafka.Config
	logger   xlog.LoggerWithLevel
	observer xmetrics.Observer
	cleanup  func() error
	stdout   io.Writer
}

// loadEnv 合并配置文件与全局 flag，flag 以覆盖项写入 loader，热更新后仍然生效。
func loadEnv(cmd *cli.Command) (*env, error) {
	loader, err := openLoader(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if brokers := splitList(cmd.StringSlice("brokers")); len(brokers) > 0 {
		if err := loader.Set(keyBrokers, brokers); err != nil {
			return nil, err
		}
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		if _, err := xlog.ParseLevel(lvl); err != nil {
			return nil, &usageError{msg: err.Error()}
		}
		if err := loader.Set(keyLogLevel, lvl); err != nil {
			return nil, err
		}
	}

	kcfg := xkafka.DefaultConfig()
	if err := loader.Unmarshal(keyKafka, &kcfg); err != nil {
		return nil, &usageError{msg: err.Error()}
	}
	if err := kcfg.Validate(); err != nil {
		return nil, &usageError{msg: err.Error()}
	}

	var ls logSettings
	if err := loader.Unmarshal(keyLog, &ls); err != nil {
		return nil, &usageError{msg: err.Error()}
	}
	logger, cleanup, err := buildLogger(ls, cmd.Root().ErrWriter)
	if err != nil {
		return nil, &usageError{msg: err.Error()}
	}

	// 使用全局 OTel provider，未配置导出器时为 noop
	obs, err := xmetrics.NewOTelObserver(xmetrics.WithInstrumentationName("github.com/omeyang/kafkamq/cmd/xkafkactl"))
	if err != nil {
		_ = cleanup()
		return nil, err
	}

	return &env{
		loader:   loader,
		kafka:    kcfg,
		logger:   logger,
		observer: obs,
		cleanup:  cleanup,
		stdout:   cmd.Root().Writer,
	}, nil
}

func openLoader(path string) (*xconf.Loader, error) {
	if path == "" {
		return xconf.Parse(nil, xconf.FormatYAML, xconf.WithDelim(configDelim))
	}
	l, err := xconf.Load(path, xconf.WithDelim(configDelim))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return l, nil
}

func buildLogger(ls logSettings, stderr io.Writer) (xlog.LoggerWithLevel, func() error, error) {
	b := xlog.New().
		SetOutput(stderr).
		SetLevelString(ls.Level).
		SetFormat(ls.Format)
	if ls.File != "" {
		b = b.SetRotation(ls.File, ls.Rotation)
	}
	return b.Build()
}

// watchLogLevel 配置文件变更后应用新的 log.level，直到 ctx 结束。
func (e *env) watchLogLevel(ctx context.Context) error {
	if e.loader.Path() == "" {
		<-ctx.Done()
		return nil
	}
	return xconf.Watch(ctx, e.loader, func(err error) {
		if err != nil {
			e.logger.Warn(ctx, "config reload failed", xlog.Err(err))
			return
		}
		lvl, err := xlog.ParseLevel(e.loader.Snapshot().String(keyLogLevel))
		if err != nil {
			e.logger.Warn(ctx, "invalid log level in config", xlog.Err(err))
			return
		}
		if lvl != e.logger.GetLevel() {
			e.logger.SetLevel(lvl)
			e.logger.Info(ctx, "log level changed", xlog.Component("xkafkactl"))
		}
	}, xconf.WithWatchLogger(e.logger))
}

func (e *env) close() {
	if e.cleanup != nil {
		_ = e.cleanup()
	}
}

func (e *env) clientOptions() []xkafka.Option {
	return []xkafka.Option{
		xkafka.WithName("xkafkactl"),
		xkafka.WithLogger(e.logger),
		xkafka.WithObserver(e.observer),
	}
}

// splitList 兼容 "-b a,b -b c" 两种写法
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
