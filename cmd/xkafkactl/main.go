// xkafkactl 是基于 xkafka 的 Kafka 命令行工具。
//
// 用法:
//
//	xkafkactl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config     配置文件（YAML/JSON），kafka 段对应 xkafka.Config，log 段为日志配置
//	-b, --brokers    broker 列表，覆盖配置文件中的 kafka.brokers
//	-l, --log-level  日志级别，覆盖配置文件中的 log.level
//
// 命令:
//
//	produce --topic t [--key k] <value...>         发送消息，每个 value 一条
//	consume --topic t --group g [--max n]          消费组消费，直到 SIGINT/SIGTERM 或收满 n 条
//	groups list                                    列出消费组
//	groups describe <group...>                     查看消费组详情
//	offsets latest|earliest <topic...>             查询各分区最新/最早 offset
//	topics create [--partitions n] <topic...>      创建 topic，已存在视为成功
//
// consume 运行期间修改配置文件中的 log.level 会即时生效；
// 通过 --log-level 指定的级别优先于配置文件。
// kafka.client_logs 为 true 时，librdkafka 自身的日志也写入 stderr。
//
// 退出码:
//
//	0: 成功
//	1: 执行失败（连接失败、broker 返回错误等）
//	2: 参数错误（缺少必需参数、配置无效、未知命令等）
//
// 示例:
//
//	xkafkactl -b localhost:9092 topics create orders
//	xkafkactl -b localhost:9092 produce --topic orders --key u1 '{"id":1}'
//	xkafkactl -c kafka.yaml consume --topic orders --group audit --max 10
//	xkafkactl -c kafka.yaml offsets latest orders payments
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// createApp 创建 CLI 应用，stdout 输出命令结果，stderr 输出日志与错误。
func createApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xkafkactl",
		Usage:     "Kafka 命令行工具",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "配置文件路径（.yaml/.yml/.json）",
				Sources: cli.EnvVars("XKAFKACTL_CONFIG"),
			},
			&cli.StringSliceFlag{
				Name:    "brokers",
				Aliases: []string{"b"},
				Usage:   "broker 列表，逗号分隔",
				Sources: cli.EnvVars("XKAFKACTL_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "日志级别 (debug/info/warn/error)",
			},
		},
		Commands: []*cli.Command{
			produceCommand(),
			consumeCommand(),
			groupsCommand(),
			offsetsCommand(),
			topicsCommand(),
		},
		// 退出码由 run 统一映射，不让 urfave/cli 直接 os.Exit
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(stderr, err)
			}
		},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := createApp(stdout, stderr)
	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	}
	if isCLIUsageError(err) {
		fmt.Fprintf(stderr, "参数错误: %v\n", err)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}
