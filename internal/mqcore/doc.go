// Package mqcore 放置消息客户端共用的内核：公共错误、带退避的消费循环、
// 消息头上的 trace 传播。
package mqcore
