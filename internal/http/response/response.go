// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Пакет упрощает возврат
// успешных ответов, ошибок и сообщений валидации в едином формате.
package response

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subscription-tracker/internal/services/subscription"
	"github.com/magabrotheeeer/subscription-tracker/internal/storage"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Status — статус запроса ("OK" или "Error").
// Поле Error — текст ошибки (опционально, при неуспехе).
// Поле Data — данные ответа (опционально, при успехе).
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"subscription not found"`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// FromError подбирает HTTP-код и текст ответа по доменной ошибке.
// Неизвестные ошибки скрываются за fallback со статусом 500.
func FromError(err error, fallback string) (int, ErrorResponse) {
	switch {
	case errors.Is(err, subscription.ErrValidation):
		return http.StatusUnprocessableEntity, Error(validationMessage(err))
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, Error(storage.ErrNotFound.Error())
	case errors.Is(err, storage.ErrSubscriptionMissing):
		return http.StatusConflict, Error(storage.ErrSubscriptionMissing.Error())
	default:
		return http.StatusInternalServerError, Error(fallback)
	}
}

// validationMessage отрезает префикс операции: "subscription.Create: validation
// failed: field Name ..." превращается в "validation failed: field Name ...".
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, subscription.ErrValidation.Error()); i >= 0 {
		return msg[i:]
	}
	return msg
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "gte", "lte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be between 0 and 1000000", err.Field()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of daily, weekly, monthly, yearly", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}
