package logger

import (
	"io"
	"log/slog"

	"lendboard/internal/app/port"
)

// slogAdapter реализует интерфейс port.Logger, используя глобальные функции пакета logger,
// либо отдельный *slog.Logger, если он задан.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter создает адаптер, пишущий в глобальный логгер.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

// Discard возвращает логгер, который отбрасывает все сообщения.
func Discard() port.Logger {
	return &slogAdapter{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Info логирует информационное сообщение.
func (a *slogAdapter) Info(msg string, args ...any) {
	if a.l != nil {
		a.l.Info(msg, args...)
		return
	}
	Info(msg, args...)
}

// Debug логирует отладочное сообщение.
func (a *slogAdapter) Debug(msg string, args ...any) {
	if a.l != nil {
		a.l.Debug(msg, args...)
		return
	}
	Debug(msg, args...)
}

// Warn логирует предупреждающее сообщение.
func (a *slogAdapter) Warn(msg string, args ...any) {
	if a.l != nil {
		a.l.Warn(msg, args...)
		return
	}
	Warn(msg, args...)
}

// Error логирует сообщение об ошибке.
func (a *slogAdapter) Error(msg string, args ...any) {
	if a.l != nil {
		a.l.Error(msg, args...)
		return
	}
	Error(msg, args...)
}
