// Package sl содержит вспомогательные функции для формирования
// структурированных полей логгера slog.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
//	log.Error("failed to mark subscription as paid", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op возвращает поле с именем операции, под которым пишутся все сообщения
// одной функции.
func Op(op string) slog.Attr {
	return slog.String("op", op)
}
