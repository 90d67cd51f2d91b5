// Package logging はプロセス全体の slog ハンドラーを構築します。
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// ParseLevel はログレベル名を slog.Level に変換します。不明な値は Info です。
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler は format が json なら JSON、それ以外は端末向けの tint ハンドラーを返します。
func NewHandler(w io.Writer, level, format string, noColor bool) slog.Handler {
	lv := ParseLevel(level)
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      lv,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	})
}

// Setup はハンドラーを作成してデフォルトのロガーに設定します。
func Setup(w io.Writer, level, format string, noColor bool) *slog.Logger {
	logger := slog.New(NewHandler(w, level, format, noColor))
	slog.SetDefault(logger)
	return logger
}
