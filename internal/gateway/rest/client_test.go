package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/frontandrew/workshop/internal/gateway"
	"github.com/frontandrew/workshop/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticToken - неизменный источник токена для тестов.
type staticToken string

func (s staticToken) Token() string { return string(s) }

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, logger.NewNoop())
}

// TestClient_BearerHeader тестирует подстановку токена в заголовок
func TestClient_BearerHeader(t *testing.T) {
	var gotAuth string
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("без источника токена заголовок не ставится", func(t *testing.T) {
		require.NoError(t, client.get(context.Background(), "/ping", nil, nil))
		assert.Empty(t, gotAuth)
	})

	t.Run("токен берётся из источника", func(t *testing.T) {
		client.SetTokenSource(staticToken("session-token"))
		require.NoError(t, client.get(context.Background(), "/ping", nil, nil))
		assert.Equal(t, "Bearer session-token", gotAuth)
	})

	t.Run("явный токен переопределяет источник", func(t *testing.T) {
		err := client.do(context.Background(), http.MethodGet, "/ping", nil, "explicit-token", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "Bearer explicit-token", gotAuth)
	})
}

// TestClient_ErrorClassification тестирует превращение статусов в доменные ошибки
func TestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "401 unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"message":"invalid or expired token"}`,
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "403 forbidden",
			status:  http.StatusForbidden,
			body:    `{"message":"access denied"}`,
			wantErr: domain.ErrForbidden,
		},
		{
			name:    "404 not found",
			status:  http.StatusNotFound,
			body:    `{"message":"customer not found"}`,
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := client.get(context.Background(), "/customers/missing", nil, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("500 с сообщением сервера", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message":"database unreachable"}`))
		}))

		err := client.get(context.Background(), "/customers", nil, nil)

		var requestErr *domain.RequestError
		require.ErrorAs(t, err, &requestErr)
		assert.Equal(t, http.StatusInternalServerError, requestErr.StatusCode)
		assert.Equal(t, "database unreachable", requestErr.Message)
	})

	t.Run("тело не JSON показывается как есть", func(t *testing.T) {
		client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream timeout\n"))
		}))

		err := client.get(context.Background(), "/customers", nil, nil)

		var requestErr *domain.RequestError
		require.ErrorAs(t, err, &requestErr)
		assert.Equal(t, "upstream timeout", requestErr.Message)
	})
}

// TestClient_RequestBody тестирует сериализацию тела запроса
func TestClient_RequestBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))

	payload := map[string]string{"email": "admin@workshop.local"}
	require.NoError(t, client.post(context.Background(), "/auth/login", payload, nil))

	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "admin@workshop.local", gotBody["email"])
}

// TestSearchQuery тестирует построение параметров поиска
func TestSearchQuery(t *testing.T) {
	tests := []struct {
		name string
		q    gateway.Query
		want string
	}{
		{
			name: "пустой фильтр не передаётся",
			q:    gateway.Query{},
			want: "order=asc&pageNumber=0&pageSize=10",
		},
		{
			name: "имя поля фильтра - сам ключ параметра",
			q:    gateway.Query{Field: "name", Value: "smith", PageNumber: 2, PageSize: 25},
			want: "name=smith&order=asc&pageNumber=2&pageSize=25",
		},
		{
			name: "фильтр по email",
			q:    gateway.Query{Field: "email", Value: "mary@example.com"},
			want: "email=mary%40example.com&order=asc&pageNumber=0&pageSize=10",
		},
		{
			name: "сортировка по убыванию",
			q:    gateway.Query{Order: "DESC"},
			want: "order=desc&pageNumber=0&pageSize=10",
		},
		{
			name: "неизвестный порядок приводится к asc",
			q:    gateway.Query{Order: "sideways"},
			want: "order=asc&pageNumber=0&pageSize=10",
		},
	}

	client := NewClient("http://localhost", time.Second, logger.NewNoop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.searchQuery(tt.q).Encode())
		})
	}
}

// TestSearchQuery_PageSize тестирует настройку размера страницы клиента
func TestSearchQuery_PageSize(t *testing.T) {
	client := NewClient("http://localhost", time.Second, logger.NewNoop())
	client.SetPageSize(25)

	t.Run("настроенный размер подставляется по умолчанию", func(t *testing.T) {
		assert.Equal(t, "order=asc&pageNumber=0&pageSize=25",
			client.searchQuery(gateway.Query{}).Encode())
	})

	t.Run("явный размер в запросе важнее настройки", func(t *testing.T) {
		assert.Equal(t, "order=asc&pageNumber=0&pageSize=50",
			client.searchQuery(gateway.Query{PageSize: 50}).Encode())
	})

	t.Run("нулевое значение не перетирает настройку", func(t *testing.T) {
		client.SetPageSize(0)
		assert.Equal(t, "order=asc&pageNumber=0&pageSize=25",
			client.searchQuery(gateway.Query{}).Encode())
	})
}
