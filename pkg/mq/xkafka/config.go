package xkafka

import (
	"fmt"
	"strings"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/google/uuid"

	"github.com/omeyang/kafkamq/pkg/lifecycle/xconn"
	"github.com/omeyang/kafkamq/pkg/resilience/xretry"
)

// 默认值
const (
	DefaultReconnectRetries = 5
	DefaultBackoffInitial   = 200 * time.Millisecond
	DefaultBackoffMax       = 10 * time.Second
	DefaultConnectTimeout   = 30 * time.Second
	DefaultFlushTimeout     = 10 * time.Second
	DefaultPollTimeout      = 100 * time.Millisecond
	DefaultRequestTimeout   = 10 * time.Second
)

// Config 所有客户端共享的连接配置，字段带 koanf 标签，可直接由 xconf 反序列化。
type Config struct {
	// Brokers bootstrap 地址列表
	Brokers []string `koanf:"brokers"`
	// ClientID 为空时生成 kafkamq-<uuid>
	ClientID string `koanf:"client_id"`
	// GroupID 消费组。按分区分配的消费者未设置时使用 <client_id>-assign。
	GroupID string `koanf:"group_id"`

	AutoReconnect    bool          `koanf:"auto_reconnect"`
	ReconnectRetries int           `koanf:"reconnect_retries"`
	BackoffInitial   time.Duration `koanf:"backoff_initial"`
	BackoffMax       time.Duration `koanf:"backoff_max"`
	ConnectTimeout   time.Duration `koanf:"connect_timeout"`

	FlushTimeout   time.Duration `koanf:"flush_timeout"`
	PollTimeout    time.Duration `koanf:"poll_timeout"`
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// HighLevel 生产者按 key 使用与 Java 客户端一致的 murmur2 分区。
	HighLevel bool `koanf:"high_level"`

	// ClientLogs 把 librdkafka 内部日志转发到客户端的 Logger，级别按 syslog 严重级别映射。
	// 输出量由 Properties 中的 log_level / debug 控制。
	ClientLogs bool `koanf:"client_logs"`

	// Properties 透传给 librdkafka 的额外配置，优先级低于本结构的显式字段。
	Properties map[string]string `koanf:"properties"`
}

// DefaultConfig 返回带默认值的配置，反序列化前以它为底。
func DefaultConfig() Config {
	return Config{
		AutoReconnect:    true,
		ReconnectRetries: DefaultReconnectRetries,
		BackoffInitial:   DefaultBackoffInitial,
		BackoffMax:       DefaultBackoffMax,
		ConnectTimeout:   DefaultConnectTimeout,
		FlushTimeout:     DefaultFlushTimeout,
		PollTimeout:      DefaultPollTimeout,
		RequestTimeout:   DefaultRequestTimeout,
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	if len(c.Brokers) == 0 {
		return fmt.Errorf("%w: brokers required", ErrInvalidArgument)
	}
	for _, b := range c.Brokers {
		if strings.TrimSpace(b) == "" {
			return fmt.Errorf("%w: blank broker address", ErrInvalidArgument)
		}
	}
	if c.ReconnectRetries < 0 {
		return fmt.Errorf("%w: reconnect_retries must be >= 0", ErrInvalidArgument)
	}
	if c.BackoffInitial < 0 || c.BackoffMax < 0 || c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidArgument)
	}
	return nil
}

// normalized 填充零值字段，不修改接收者。
func (c Config) normalized() Config {
	if c.ClientID == "" {
		c.ClientID = "kafkamq-" + uuid.NewString()
	}
	if c.FlushTimeout <= 0 {
		c.FlushTimeout = DefaultFlushTimeout
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = DefaultPollTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
	if c.BackoffInitial <= 0 {
		c.BackoffInitial = DefaultBackoffInitial
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = DefaultBackoffMax
	}
	return c
}

// ConfigMap 生成 librdkafka 配置。extra 覆盖同名键。
func (c Config) ConfigMap(extra kafka.ConfigMap) *kafka.ConfigMap {
	cm := kafka.ConfigMap{}
	for k, v := range c.Properties {
		cm[k] = v
	}
	cm["bootstrap.servers"] = strings.Join(c.Brokers, ",")
	if c.ClientID != "" {
		cm["client.id"] = c.ClientID
	}
	for k, v := range extra {
		cm[k] = v
	}
	return &cm
}

func (c Config) producerConfigMap() *kafka.ConfigMap {
	extra := kafka.ConfigMap{"go.delivery.reports": true}
	if c.HighLevel {
		extra["partitioner"] = "murmur2_random"
	}
	return c.ConfigMap(extra)
}

// assign 为 true 时是按分区分配的消费者，offset 由调用方显式存储。
func (c Config) consumerConfigMap(assign bool) *kafka.ConfigMap {
	group := c.GroupID
	if group == "" && assign {
		group = c.ClientID + "-assign"
	}
	extra := kafka.ConfigMap{
		"group.id":                 group,
		"enable.auto.offset.store": false,
	}
	if _, ok := c.Properties["auto.offset.reset"]; !ok {
		extra["auto.offset.reset"] = "earliest"
	}
	return c.ConfigMap(extra)
}

func (c Config) adminConfigMap() *kafka.ConfigMap {
	return c.ConfigMap(nil)
}

// controllerOptions 把配置映射为生命周期控制器选项。
func (c Config) controllerOptions(name string) []xconn.Option {
	return []xconn.Option{
		xconn.WithName(name),
		xconn.WithAutoReconnect(c.AutoReconnect),
		xconn.WithRetries(c.ReconnectRetries),
		xconn.WithConnectTimeout(c.ConnectTimeout),
		xconn.WithBackoff(xretry.NewExponentialBackoff(
			xretry.WithInitialDelay(c.BackoffInitial),
			xretry.WithMaxDelay(c.BackoffMax),
		)),
	}
}
