package domain

import (
	"errors"
	"fmt"
)

// Доменные ошибки - используются во всех слоях приложения

// Классификация ответов backend'а.
// Любой статус, не попавший в эти три категории, оборачивается в RequestError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// Session errors
var (
	ErrNoSession    = errors.New("no active session")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Editor errors
var (
	ErrNoPersistedOrder = errors.New("service order has no server identity yet")
	ErrInvalidStatus    = errors.New("invalid service order status")
)

// RequestError - категория "Generic": любая ошибка транспорта или сервера,
// не попавшая в известную классификацию. Статус и сообщение сервера
// показываются пользователю как есть.
type RequestError struct {
	StatusCode int
	Message    string
}

func (e *RequestError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// ClassifyStatus сопоставляет HTTP статус с доменной ошибкой.
// 401 - сессия недействительна, нужен повторный вход.
// 403 - нет прав, повторять запрос бессмысленно.
// 404 - записи нет, обычно возврат на родительский список.
func ClassifyStatus(status int, message string) error {
	switch status {
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	default:
		return &RequestError{StatusCode: status, Message: message}
	}
}
