package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/frontandrew/workshop/internal/domain"
	"github.com/frontandrew/workshop/internal/gateway"
	"github.com/frontandrew/workshop/internal/pkg/logger"
)

// TokenSource отдаёт текущий bearer токен сессии.
// Пустая строка означает неаутентифицированный запрос.
type TokenSource interface {
	Token() string
}

// Client - HTTP/JSON клиент backend'а мастерской.
// Каждая операция - один запрос и один ответ, без повторов: любая ошибка
// возвращается вызывающему для показа пользователю, а не гасится внутри.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logger.Logger
	pageSize   int
}

// NewClient создает клиент для заданного базового URL.
func NewClient(baseURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// SetTokenSource подключает источник токена.
// Вызывается один раз при сборке приложения, когда сессия уже создана.
func (c *Client) SetTokenSource(tokens TokenSource) {
	c.tokens = tokens
}

// SetPageSize задает размер страницы списочных экранов для запросов,
// не указавших свой. Нулевое и отрицательное значения игнорируются.
func (c *Client) SetPageSize(size int) {
	if size > 0 {
		c.pageSize = size
	}
}

// errorBody - тело ответа сервера при ошибке.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do выполняет один запрос и декодирует успешный ответ в out.
// token переопределяет токен сессии; пустое значение означает "взять из
// источника". Статусы >= 400 превращаются в доменную классификацию.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		message := serverMessage(respBody)
		c.logger.Warn("Request failed", map[string]interface{}{
			"method": method,
			"path":   path,
			"status": resp.StatusCode,
		})
		return domain.ClassifyStatus(resp.StatusCode, message)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

// serverMessage достаёт человекочитаемое сообщение из тела ошибки.
// Если тело не JSON, показываем его как есть.
func serverMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	return strings.TrimSpace(string(body))
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, "", nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, nil, "", body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, nil, "", body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, "", nil, nil)
}

// searchQuery строит параметры поиска. Имя поля фильтра само является
// ключом параметра: ?name=smith, не ?field=name&value=smith. Пустой
// фильтр не передаётся вовсе.
func (c *Client) searchQuery(q gateway.Query) url.Values {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = c.pageSize
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	order := strings.ToLower(q.Order)
	if order != "desc" {
		order = "asc"
	}

	values := url.Values{}
	if q.Field != "" {
		values.Set(q.Field, q.Value)
	}
	values.Set("pageNumber", strconv.Itoa(q.PageNumber))
	values.Set("pageSize", strconv.Itoa(pageSize))
	values.Set("order", order)
	return values
}

// defaultPageSize совпадает с размером страницы списочных экранов.
const defaultPageSize = 10
