// Package logutil 统一日志构建。库内组件默认静默（Nop），
// 由接入方显式开启日志后才输出。
package logutil

import "go.uber.org/zap"

// OrNop 返回传入的 logger；为 nil 时返回 zap.NewNop()。
// 各组件在入口处调用一次，避免散落的 nil 判断。
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// NewDevelopment 返回开发模式 logger，构建失败时退化为 Nop。
// examples 与调试场景使用；线上接入方应自带 logger。
func NewDevelopment() *zap.Logger {
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
