package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestClassifyStatus тестирует классификацию HTTP статусов
func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		wantErr error
	}{
		{
			name:    "401 - недействительная сессия",
			status:  401,
			wantErr: ErrUnauthorized,
		},
		{
			name:    "403 - нет прав",
			status:  403,
			wantErr: ErrForbidden,
		},
		{
			name:    "404 - запись не найдена",
			status:  404,
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyStatus(tt.status, tt.message)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("прочие статусы оборачиваются в RequestError", func(t *testing.T) {
		err := ClassifyStatus(500, "boom")

		var requestErr *RequestError
		assert.ErrorAs(t, err, &requestErr)
		assert.Equal(t, 500, requestErr.StatusCode)
		assert.Equal(t, "boom", requestErr.Message)
		assert.Equal(t, "request failed with status 500: boom", err.Error())
	})

	t.Run("RequestError без сообщения сервера", func(t *testing.T) {
		err := ClassifyStatus(502, "")
		assert.Equal(t, "request failed with status 502", err.Error())
	})
}
