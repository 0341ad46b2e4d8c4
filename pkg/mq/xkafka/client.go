package xkafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/omeyang/kafkamq/pkg/observability/xlog"
)

// ClientKind 注册表中的客户端类别，同名客户端只在同一类别内冲突。
type ClientKind string

const (
	KindProducer            ClientKind = "producer"
	KindConsumer            ClientKind = "consumer"
	KindConsumerGroup       ClientKind = "consumer_group"
	KindOffset              ClientKind = "offset"
	KindAdmin               ClientKind = "admin"
	KindProducerStream      ClientKind = "producer_stream"
	KindConsumerStream      ClientKind = "consumer_stream"
	KindConsumerGroupStream ClientKind = "consumer_group_stream"
)

var allKinds = []ClientKind{
	KindProducer, KindConsumer, KindConsumerGroup, KindOffset, KindAdmin,
	KindProducerStream, KindConsumerStream, KindConsumerGroupStream,
}

type closer interface {
	Close(ctx context.Context, force bool) error
}

// registry 并发安全的命名表。创建前先占用名称，占用期间同名创建直接失败，
// 占用中的名称对 get/names 不可见。
type registry[T closer] struct {
	mu       sync.RWMutex
	items    map[string]T
	reserved map[string]struct{}
}

// reserve 原子的 check-then-reserve，已注册或正在创建时返回 ErrAlreadyExists。
func (r *registry[T]) reserve(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[name]; ok {
		return ErrAlreadyExists
	}
	if _, ok := r.reserved[name]; ok {
		return ErrAlreadyExists
	}
	if r.reserved == nil {
		r.reserved = make(map[string]struct{})
	}
	r.reserved[name] = struct{}{}
	return nil
}

// fill 用创建好的客户端兑现占用
func (r *registry[T]) fill(name string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reserved, name)
	if r.items == nil {
		r.items = make(map[string]T)
	}
	r.items[name] = v
}

// release 创建失败时释放占用
func (r *registry[T]) release(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reserved, name)
}

func (r *registry[T]) get(name string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[name]
	return v, ok
}

func (r *registry[T]) remove(name string) (closer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[name]
	if ok {
		delete(r.items, name)
	}
	return v, ok
}

func (r *registry[T]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.items))
}

func (r *registry[T]) drain() map[string]closer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]closer, len(r.items))
	for k, v := range r.items {
		out[k] = v
	}
	r.items = nil
	return out
}

type anyRegistry interface {
	remove(name string) (closer, bool)
	names() []string
	drain() map[string]closer
}

// Client 按名称管理一组共享配置的客户端。
type Client struct {
	cfg  Config
	opts []Option
	log  xlog.Logger

	producers       registry[*ProducerClient]
	consumers       registry[*ConsumerClient]
	groups          registry[*ConsumerGroupClient]
	offsets         registry[*OffsetClient]
	admins          registry[*AdminClient]
	producerStreams registry[*ProducerStream]
	consumerStreams registry[*ConsumerStream]
	groupStreams    registry[*ConsumerGroupStream]
}

// NewClient opts 作用于之后创建的每个客户端，名称由 Create* 的 name 决定。
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions("client", opts)
	return &Client{
		cfg:  *cfg,
		opts: opts,
		log:  o.logger.With(xlog.Component(componentName)),
	}, nil
}

func (c *Client) registryOf(kind ClientKind) anyRegistry {
	switch kind {
	case KindProducer:
		return &c.producers
	case KindConsumer:
		return &c.consumers
	case KindConsumerGroup:
		return &c.groups
	case KindOffset:
		return &c.offsets
	case KindAdmin:
		return &c.admins
	case KindProducerStream:
		return &c.producerStreams
	case KindConsumerStream:
		return &c.consumerStreams
	case KindConsumerGroupStream:
		return &c.groupStreams
	}
	return nil
}

func (c *Client) clientOpts(name string) []Option {
	return append(slices.Clip(c.opts), WithName(name))
}

// create 同名并发创建只有先占用名称的一方成功，其余返回 ErrAlreadyExists。
// connect 为 true 时在注册前建立连接，连接失败不会注册并释放名称。
func create[T closer](ctx context.Context, c *Client, reg *registry[T], kind ClientKind, name string, connect bool,
	build func() (T, error), dial func(T, context.Context) error) (T, error) {
	var zero T
	if strings.TrimSpace(name) == "" {
		return zero, fmt.Errorf("%w: blank client name", ErrInvalidArgument)
	}
	if err := reg.reserve(name); err != nil {
		return zero, fmt.Errorf("%w: %s %q", err, kind, name)
	}

	client, err := build()
	if err != nil {
		reg.release(name)
		return zero, err
	}
	if connect {
		if err := dial(client, ctx); err != nil {
			_ = client.Close(context.WithoutCancel(ctx), true)
			reg.release(name)
			return zero, err
		}
	}
	reg.fill(name, client)
	c.log.Info(ctx, "client registered", slog.String("kind", string(kind)), slog.String("name", name))
	return client, nil
}

func get[T closer](reg *registry[T], kind ClientKind, name string) (T, error) {
	v, ok := reg.get(name)
	if !ok {
		return v, fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	return v, nil
}

// CreateProducer 创建并注册生产者
func (c *Client) CreateProducer(ctx context.Context, name string, connect bool) (*ProducerClient, error) {
	return create(ctx, c, &c.producers, KindProducer, name, connect, func() (*ProducerClient, error) {
		return NewProducerClient(&c.cfg, c.clientOpts(name)...)
	}, (*ProducerClient).Connect)
}

// Producer 按名称获取生产者
func (c *Client) Producer(name string) (*ProducerClient, error) {
	return get(&c.producers, KindProducer, name)
}

// CreateConsumer 创建并注册按分区分配的消费者
func (c *Client) CreateConsumer(ctx context.Context, name string, partitions []TopicPartition, connect bool) (*ConsumerClient, error) {
	return create(ctx, c, &c.consumers, KindConsumer, name, connect, func() (*ConsumerClient, error) {
		return NewConsumerClient(&c.cfg, partitions, c.clientOpts(name)...)
	}, (*ConsumerClient).Connect)
}

// Consumer 按名称获取消费者
func (c *Client) Consumer(name string) (*ConsumerClient, error) {
	return get(&c.consumers, KindConsumer, name)
}

// CreateConsumerGroup 创建并注册消费组客户端，group 为空时使用配置中的 group_id。
func (c *Client) CreateConsumerGroup(ctx context.Context, name, group string, topics []string, connect bool) (*ConsumerGroupClient, error) {
	return create(ctx, c, &c.groups, KindConsumerGroup, name, connect, func() (*ConsumerGroupClient, error) {
		return NewConsumerGroupClient(c.withGroup(group), topics, c.clientOpts(name)...)
	}, (*ConsumerGroupClient).Connect)
}

// ConsumerGroup 按名称获取消费组客户端
func (c *Client) ConsumerGroup(name string) (*ConsumerGroupClient, error) {
	return get(&c.groups, KindConsumerGroup, name)
}

// CreateOffset 创建并注册 offset 客户端
func (c *Client) CreateOffset(ctx context.Context, name string, connect bool) (*OffsetClient, error) {
	return create(ctx, c, &c.offsets, KindOffset, name, connect, func() (*OffsetClient, error) {
		return NewOffsetClient(&c.cfg, c.clientOpts(name)...)
	}, (*OffsetClient).Connect)
}

// Offset 按名称获取 offset 客户端
func (c *Client) Offset(name string) (*OffsetClient, error) {
	return get(&c.offsets, KindOffset, name)
}

// CreateAdmin 创建并注册 admin 客户端
func (c *Client) CreateAdmin(ctx context.Context, name string, connect bool) (*AdminClient, error) {
	return create(ctx, c, &c.admins, KindAdmin, name, connect, func() (*AdminClient, error) {
		return NewAdminClient(&c.cfg, c.clientOpts(name)...)
	}, (*AdminClient).Connect)
}

// Admin 按名称获取 admin 客户端
func (c *Client) Admin(name string) (*AdminClient, error) {
	return get(&c.admins, KindAdmin, name)
}

// CreateProducerStream 创建并注册生产者流
func (c *Client) CreateProducerStream(ctx context.Context, name, topic string, connect bool) (*ProducerStream, error) {
	return create(ctx, c, &c.producerStreams, KindProducerStream, name, connect, func() (*ProducerStream, error) {
		return NewProducerStream(&c.cfg, topic, c.clientOpts(name)...)
	}, (*ProducerStream).Connect)
}

// ProducerStream 按名称获取生产者流
func (c *Client) ProducerStream(name string) (*ProducerStream, error) {
	return get(&c.producerStreams, KindProducerStream, name)
}

// CreateConsumerStream 创建并注册消费者流
func (c *Client) CreateConsumerStream(ctx context.Context, name string, topics []string, connect bool) (*ConsumerStream, error) {
	return create(ctx, c, &c.consumerStreams, KindConsumerStream, name, connect, func() (*ConsumerStream, error) {
		return NewConsumerStream(&c.cfg, topics, c.clientOpts(name)...)
	}, (*ConsumerStream).Connect)
}

// ConsumerStream 按名称获取消费者流
func (c *Client) ConsumerStream(name string) (*ConsumerStream, error) {
	return get(&c.consumerStreams, KindConsumerStream, name)
}

// CreateConsumerGroupStream 创建并注册消费组流
func (c *Client) CreateConsumerGroupStream(ctx context.Context, name, group string, topics []string, connect bool) (*ConsumerGroupStream, error) {
	return create(ctx, c, &c.groupStreams, KindConsumerGroupStream, name, connect, func() (*ConsumerGroupStream, error) {
		return NewConsumerGroupStream(c.withGroup(group), topics, c.clientOpts(name)...)
	}, (*ConsumerGroupStream).Connect)
}

// ConsumerGroupStream 按名称获取消费组流
func (c *Client) ConsumerGroupStream(name string) (*ConsumerGroupStream, error) {
	return get(&c.groupStreams, KindConsumerGroupStream, name)
}

func (c *Client) withGroup(group string) *Config {
	cfg := c.cfg
	if group != "" {
		cfg.GroupID = group
	}
	return &cfg
}

// Remove 关闭并移除客户端
func (c *Client) Remove(ctx context.Context, kind ClientKind, name string) error {
	reg := c.registryOf(kind)
	if reg == nil {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidArgument, kind)
	}
	v, ok := reg.remove(name)
	if !ok {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	if err := v.Close(ctx, false); err != nil {
		return fmt.Errorf("xkafka: close %s %q: %w", kind, name, err)
	}
	return nil
}

// Names 某一类别下已注册的名称，按字典序。
func (c *Client) Names(kind ClientKind) []string {
	reg := c.registryOf(kind)
	if reg == nil {
		return nil
	}
	return reg.names()
}

// Close 关闭并移除所有客户端，返回合并后的错误。
func (c *Client) Close(ctx context.Context) error {
	var errs []error
	for _, kind := range allKinds {
		for name, v := range c.registryOf(kind).drain() {
			if err := v.Close(ctx, false); err != nil {
				errs = append(errs, fmt.Errorf("xkafka: close %s %q: %w", kind, name, err))
			}
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		c.log.Warn(ctx, "close clients failed", xlog.Err(err))
	}
	return err
}
