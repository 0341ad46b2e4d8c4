// Package xconf 基于 koanf 加载 YAML/JSON 配置，支持覆盖项与文件热重载。
//
// Loader 持有一份不可变快照，Reload 成功后原子替换；读取方通过 Snapshot
// 或 Unmarshal 获得某一时刻的完整视图，不会读到一半新一半旧的配置。
//
//	l, err := xconf.Load("/etc/kafkamq/config.yaml")
//	cfg := xkafka.DefaultConfig()
//	err = l.Unmarshal("kafka", &cfg)
//
// Set 写入的覆盖项（如命令行参数）在每次重载后重新生效。
//
// Watch 在调用方 goroutine 中运行，阻塞到 ctx 结束，适合交给 xrun.Group 管理。
package xconf
