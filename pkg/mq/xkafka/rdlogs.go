package xkafka

import (
	"context"
	"log/slog"
	"sync"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"github.com/omeyang/kafkamq/pkg/observability/xlog"
)

const rdLogBuffer = 64

// rdLogs 把 librdkafka 的内部日志转发到 xlog。每个客户端一份，重连后沿用同一通道，
// 句柄打开后开始转发，句柄关闭后停止。nil 表示未开启。
type rdLogs struct {
	ch  chan kafka.LogEvent
	log xlog.Logger

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newRDLogs(log xlog.Logger) *rdLogs {
	return &rdLogs{
		ch:  make(chan kafka.LogEvent, rdLogBuffer),
		log: log.With(xlog.Component("rdkafka")),
	}
}

// configure 让句柄把日志写入 r.ch
func (r *rdLogs) configure(cm *kafka.ConfigMap) *kafka.ConfigMap {
	if r == nil {
		return cm
	}
	(*cm)["go.logs.channel.enable"] = true
	(*cm)["go.logs.channel"] = r.ch
	return cm
}

func (r *rdLogs) start() {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return
	}
	r.stop, r.done = make(chan struct{}), make(chan struct{})
	go r.run(r.stop, r.done)
}

// halt 停止转发，返回前写出通道中剩余的事件。
func (r *rdLogs) halt() {
	if r == nil {
		return
	}
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (r *rdLogs) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case ev := <-r.ch:
			r.emit(ev)
		case <-stop:
			for {
				select {
				case ev := <-r.ch:
					r.emit(ev)
				default:
					return
				}
			}
		}
	}
}

func (r *rdLogs) emit(ev kafka.LogEvent) {
	xlog.Log(context.Background(), r.log, xlog.FromSyslog(ev.Level), ev.Message,
		slog.String("instance", ev.Name),
		slog.String("tag", ev.Tag),
	)
}
