// Package xlog 基于 log/slog 的结构化日志。
//
// 所有方法都要求 context，EnrichHandler 会从其中的 OTel span 提取
// trace_id 与 span_id 注入日志。Builder 构建的 Logger 支持运行时调整级别，
// 配合 SetRotation 可写入按大小轮转的文件（lumberjack）。
//
//	logger, cleanup, err := xlog.New().
//	    SetLevelString("debug").
//	    SetFormat("json").
//	    Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//	logger.Info(ctx, "connected", xlog.Component("xkafka"))
//
// 库代码通过注入接收 Logger，未注入时使用 Discard()。
package xlog
