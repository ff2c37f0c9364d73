package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ValidationError собирает ошибки по полям формы.
// Заполняется целиком до любого сетевого вызова: невалидная форма
// никогда не доходит до транспортного слоя.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors - аккумулятор для последовательной проверки полей.
type fieldErrors map[string]string

func (f fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "this field is required"
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func (f fieldErrors) email(field, value string) {
	if value == "" {
		return
	}
	if !emailPattern.MatchString(value) {
		f[field] = "must be a valid email"
	}
}

func (f fieldErrors) minLen(field, value string, min int) {
	if value == "" {
		return
	}
	if len(value) < min {
		f[field] = fmt.Sprintf("must be at least %d characters", min)
	}
}

func (f fieldErrors) positive(field string, value float64) {
	if value <= 0 {
		f[field] = "must be greater than 0"
	}
}

func (f fieldErrors) nonNegative(field string, value float64) {
	if value < 0 {
		f[field] = "must not be negative"
	}
}

// err возвращает ValidationError, если накопилась хотя бы одна ошибка.
func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
