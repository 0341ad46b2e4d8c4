package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/urfave/cli/v3"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xrun"
	"github.com/omeyang/kafkamq/pkg/mq/xkafka"
	"github.com/omeyang/kafkamq/pkg/observability/xlog"
)

// closeTimeout 命令结束后关闭客户端（Flush/提交）的上限
const closeTimeout = 10 * time.Second

// usageError 参数错误，退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// errMaxReached consume 收满 --max 条后主动结束
var errMaxReached = errors.New("max messages reached")

// isCLIUsageError 识别 urfave/cli 自身产生的参数错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, prefix := range []string{
		"Required flag",
		"Required flags",
		"flag provided but not defined",
		"invalid value",
		"No help topic for",
	} {
		if strings.Contains(msg, prefix) {
			return true
		}
	}
	return false
}

// withEnv 为子命令加载配置与日志，并在结束后释放。
func withEnv(fn func(ctx context.Context, cmd *cli.Command, e *env) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		e, err := loadEnv(cmd)
		if err != nil {
			return err
		}
		defer e.close()
		return fn(ctx, cmd, e)
	}
}

// closeCtx 在 ctx 已取消时仍给关闭流程留出时间。
func closeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), closeTimeout)
}

// =============================================================================
// produce
// =============================================================================

func produceCommand() *cli.Command {
	return &cli.Command{
		Name:      "produce",
		Usage:     "发送消息，每个参数一条",
		ArgsUsage: "<value...>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "topic", Aliases: []string{"t"}, Usage: "目标 topic", Required: true},
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "消息 key"},
		},
		Action: withEnv(cmdProduce),
	}
}

func cmdProduce(ctx context.Context, cmd *cli.Command, e *env) (err error) {
	values := cmd.Args().Slice()
	if len(values) == 0 {
		return usagef("produce: at least one value required")
	}
	msgs := buildMessages(cmd.String("topic"), cmd.String("key"), values)

	p, err := xkafka.NewProducerClient(&e.kafka, e.clientOptions()...)
	if err != nil {
		return err
	}
	defer func() {
		cctx, cancel := closeCtx(ctx)
		defer cancel()
		err = errors.Join(err, p.Close(cctx, err != nil))
	}()

	reports, err := p.Send(ctx, msgs...)
	if err != nil {
		return err
	}
	for _, tp := range reports {
		fmt.Fprintf(e.stdout, "%s[%d]@%d\n", tp.Topic, tp.Partition, int64(tp.Offset))
	}
	return nil
}

func buildMessages(topic, key string, values []string) []*kafka.Message {
	msgs := make([]*kafka.Message, 0, len(values))
	for _, v := range values {
		m := &kafka.Message{
			TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
			Value:          []byte(v),
		}
		if key != "" {
			m.Key = []byte(key)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// =============================================================================
// consume
// =============================================================================

func consumeCommand() *cli.Command {
	return &cli.Command{
		Name:  "consume",
		Usage: "以消费组消费并打印消息，直到收到 SIGINT/SIGTERM",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{Name: "topic", Aliases: []string{"t"}, Usage: "订阅的 topic", Required: true},
			&cli.StringFlag{Name: "group", Aliases: []string{"g"}, Usage: "消费组 ID", Required: true},
			&cli.IntFlag{Name: "max", Aliases: []string{"n"}, Usage: "收满 n 条后退出，0 表示不限"},
		},
		Action: withEnv(cmdConsume),
	}
}

func cmdConsume(ctx context.Context, cmd *cli.Command, e *env) error {
	maxMsgs := cmd.Int("max")
	if maxMsgs < 0 {
		return usagef("consume: --max must be >= 0")
	}
	cfg := e.kafka
	cfg.GroupID = cmd.String("group")
	c, err := xkafka.NewConsumerGroupClient(&cfg, splitList(cmd.StringSlice("topic")), e.clientOptions()...)
	if err != nil {
		return usagef("%v", err)
	}

	g, _ := xrun.NewGroup(ctx,
		xrun.WithName("consume"),
		xrun.WithLogger(e.logger),
		xrun.WithSignals(xrun.DefaultSignals()...),
	)
	var seen atomic.Int64
	handler := func(ctx context.Context, msg *kafka.Message) error {
		printMessage(e.stdout, msg)
		if n := seen.Add(1); maxMsgs > 0 && n >= int64(maxMsgs) {
			g.Cancel(errMaxReached)
		}
		return nil
	}
	g.Go("consume", func(ctx context.Context) error {
		return c.Consume(ctx, handler, xkafka.WithOnError(func(err error) {
			e.logger.Warn(ctx, "consume error", xlog.Err(err))
		}))
	})
	g.Go("config-watch", e.watchLogLevel)

	runErr := g.Wait()
	if errors.Is(runErr, errMaxReached) || errors.Is(runErr, xrun.ErrSignal) {
		runErr = nil
	}

	cctx, cancel := closeCtx(ctx)
	defer cancel()
	return errors.Join(runErr, c.Close(cctx, false))
}

func printMessage(w io.Writer, msg *kafka.Message) {
	topic := ""
	if msg.TopicPartition.Topic != nil {
		topic = *msg.TopicPartition.Topic
	}
	fmt.Fprintf(w, "%s[%d]@%d\t%s\t%s\n",
		topic, msg.TopicPartition.Partition, int64(msg.TopicPartition.Offset), msg.Key, msg.Value)
}

// =============================================================================
// groups
// =============================================================================

func groupsCommand() *cli.Command {
	return &cli.Command{
		Name:  "groups",
		Usage: "消费组管理",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "列出消费组",
				Action: withEnv(cmdGroupsList),
			},
			{
				Name:      "describe",
				Usage:     "查看消费组详情",
				ArgsUsage: "<group...>",
				Action:    withEnv(cmdGroupsDescribe),
			},
		},
	}
}

func newAdmin(e *env) (*xkafka.AdminClient, error) {
	return xkafka.NewAdminClient(&e.kafka, e.clientOptions()...)
}

func closeAdmin(ctx context.Context, a *xkafka.AdminClient) error {
	cctx, cancel := closeCtx(ctx)
	defer cancel()
	return a.Close(cctx, false)
}

func cmdGroupsList(ctx context.Context, _ *cli.Command, e *env) (err error) {
	a, err := newAdmin(e)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeAdmin(ctx, a)) }()

	groups, err := a.ListGroups(ctx)
	slices.SortFunc(groups, func(x, y kafka.ConsumerGroupListing) int {
		return strings.Compare(x.GroupID, y.GroupID)
	})
	for _, g := range groups {
		fmt.Fprintf(e.stdout, "%s\t%s\n", g.GroupID, g.State)
	}
	// 部分 broker 失败时仍输出已获取的结果
	return err
}

func cmdGroupsDescribe(ctx context.Context, cmd *cli.Command, e *env) (err error) {
	ids := cmd.Args().Slice()
	if len(ids) == 0 {
		return usagef("groups describe: at least one group required")
	}
	a, err := newAdmin(e)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeAdmin(ctx, a)) }()

	descs, err := a.DescribeGroups(ctx, ids...)
	if err != nil {
		return err
	}
	for _, d := range descs {
		fmt.Fprintf(e.stdout, "%s\tstate=%s\tmembers=%d\tassignor=%s\n",
			d.GroupID, d.State, len(d.Members), d.PartitionAssignor)
		for _, m := range d.Members {
			fmt.Fprintf(e.stdout, "  %s\t%s\t%s\n", m.ConsumerID, m.ClientID, m.Host)
		}
	}
	return nil
}

// =============================================================================
// offsets
// =============================================================================

func offsetsCommand() *cli.Command {
	edge := func(name, usage string, latest bool) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			ArgsUsage: "<topic...>",
			Action: withEnv(func(ctx context.Context, cmd *cli.Command, e *env) error {
				return cmdOffsets(ctx, cmd, e, latest)
			}),
		}
	}
	return &cli.Command{
		Name:  "offsets",
		Usage: "查询 topic 各分区的 offset",
		Commands: []*cli.Command{
			edge("latest", "最新 offset（下一条消息的位置）", true),
			edge("earliest", "最早可读 offset", false),
		},
	}
}

func cmdOffsets(ctx context.Context, cmd *cli.Command, e *env, latest bool) (err error) {
	topics := cmd.Args().Slice()
	if len(topics) == 0 {
		return usagef("offsets: at least one topic required")
	}
	c, err := xkafka.NewOffsetClient(&e.kafka, e.clientOptions()...)
	if err != nil {
		return err
	}
	defer func() {
		cctx, cancel := closeCtx(ctx)
		defer cancel()
		err = errors.Join(err, c.Close(cctx, false))
	}()

	var offs xkafka.Offsets
	if latest {
		offs, err = c.FetchLatestOffsets(ctx, topics...)
	} else {
		offs, err = c.FetchEarliestOffsets(ctx, topics...)
	}
	printOffsets(e.stdout, offs)
	return err
}

func printOffsets(w io.Writer, offs xkafka.Offsets) {
	topics := make([]string, 0, len(offs))
	for t := range offs {
		topics = append(topics, t)
	}
	slices.Sort(topics)
	for _, t := range topics {
		parts := make([]int32, 0, len(offs[t]))
		for p := range offs[t] {
			parts = append(parts, p)
		}
		slices.Sort(parts)
		for _, p := range parts {
			fmt.Fprintf(w, "%s\t%d\t%d\n", t, p, offs[t][p])
		}
	}
}

// =============================================================================
// topics
// =============================================================================

func topicsCommand() *cli.Command {
	return &cli.Command{
		Name:  "topics",
		Usage: "topic 管理",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "创建 topic，已存在视为成功",
				ArgsUsage: "<topic...>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "partitions", Aliases: []string{"p"}, Usage: "分区数，0 使用 broker 默认值"},
					&cli.IntFlag{Name: "replication", Aliases: []string{"r"}, Usage: "副本数，0 使用 broker 默认值"},
				},
				Action: withEnv(cmdTopicsCreate),
			},
		},
	}
}

func cmdTopicsCreate(ctx context.Context, cmd *cli.Command, e *env) (err error) {
	names := cmd.Args().Slice()
	if len(names) == 0 {
		return usagef("topics create: at least one topic required")
	}
	partitions, replication := cmd.Int("partitions"), cmd.Int("replication")
	if partitions < 0 || replication < 0 {
		return usagef("topics create: --partitions and --replication must be >= 0")
	}
	specs := make([]xkafka.TopicSpec, 0, len(names))
	for _, n := range names {
		specs = append(specs, xkafka.TopicSpec{Name: n, Partitions: partitions, ReplicationFactor: replication})
	}

	a, err := newAdmin(e)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, closeAdmin(ctx, a)) }()

	created, err := a.CreateTopics(ctx, specs...)
	for _, t := range created {
		fmt.Fprintln(e.stdout, t)
	}
	if errors.Is(err, xkafka.ErrInvalidArgument) {
		return usagef("%v", err)
	}
	return err
}
