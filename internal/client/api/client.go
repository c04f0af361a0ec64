package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iudanet/jobtracker/pkg/api"
)

// Error описывает неуспешный ответ сервера
type Error struct {
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Authorization при редиректе переносит сам net/http и только в пределах
			// того же домена, иначе session token уйдет на чужой хост
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// SetToken задает session token для последующих запросов
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register регистрирует нового пользователя и возвращает его первую сессию
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.LoginResponse, error) {
	var resp api.LoginResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Logout завершает текущую сессию на сервере
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// Me возвращает текущего пользователя
func (c *Client) Me(ctx context.Context) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp, nil
}

// CheckEmail проверяет, свободен ли email
func (c *Client) CheckEmail(ctx context.Context, email string) (*api.EmailAvailabilityResponse, error) {
	var resp api.EmailAvailabilityResponse
	path := "/api/auth/check-email/" + url.PathEscape(email)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("check email request failed: %w", err)
	}
	return &resp, nil
}

// GetProfile возвращает пользователя с профилем
func (c *Client) GetProfile(ctx context.Context) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/users/profile", nil, &resp); err != nil {
		return nil, fmt.Errorf("get profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile обновляет переданные поля профиля
func (c *Client) UpdateProfile(ctx context.Context, req api.ProfileUpdateRequest) (*api.UserResponse, error) {
	var resp api.UserResponse
	if err := c.doRequest(ctx, http.MethodPut, "/api/users/profile", req, &resp); err != nil {
		return nil, fmt.Errorf("update profile request failed: %w", err)
	}
	return &resp, nil
}

// DeleteAccount деактивирует аккаунт
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.doRequest(ctx, http.MethodDelete, "/api/users/account", nil, nil); err != nil {
		return fmt.Errorf("delete account request failed: %w", err)
	}
	return nil
}

// CreateApplication создает отклик
func (c *Client) CreateApplication(ctx context.Context, req api.ApplicationRequest) (*api.ApplicationResponse, error) {
	var resp api.ApplicationResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/applications", req, &resp); err != nil {
		return nil, fmt.Errorf("create application request failed: %w", err)
	}
	return &resp, nil
}

// ListApplications возвращает отклики; пустой status означает все
func (c *Client) ListApplications(ctx context.Context, status string) ([]api.ApplicationResponse, error) {
	path := "/api/applications"
	if status != "" {
		path += "?" + url.Values{"status": {status}}.Encode()
	}

	var resp []api.ApplicationResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list applications request failed: %w", err)
	}
	return resp, nil
}

// GetApplication возвращает отклик по id
func (c *Client) GetApplication(ctx context.Context, id int64) (*api.ApplicationResponse, error) {
	var resp api.ApplicationResponse
	if err := c.doRequest(ctx, http.MethodGet, applicationPath(id, ""), nil, &resp); err != nil {
		return nil, fmt.Errorf("get application request failed: %w", err)
	}
	return &resp, nil
}

// UpdateApplication обновляет поля отклика
func (c *Client) UpdateApplication(ctx context.Context, id int64, req api.ApplicationUpdateRequest) (*api.ApplicationResponse, error) {
	var resp api.ApplicationResponse
	if err := c.doRequest(ctx, http.MethodPut, applicationPath(id, ""), req, &resp); err != nil {
		return nil, fmt.Errorf("update application request failed: %w", err)
	}
	return &resp, nil
}

// UpdateStatus меняет статус отклика
func (c *Client) UpdateStatus(ctx context.Context, id int64, req api.StatusUpdateRequest) (*api.ApplicationResponse, error) {
	var resp api.ApplicationResponse
	if err := c.doRequest(ctx, http.MethodPut, applicationPath(id, "/status"), req, &resp); err != nil {
		return nil, fmt.Errorf("update status request failed: %w", err)
	}
	return &resp, nil
}

// DeleteApplication удаляет отклик
func (c *Client) DeleteApplication(ctx context.Context, id int64) error {
	if err := c.doRequest(ctx, http.MethodDelete, applicationPath(id, ""), nil, nil); err != nil {
		return fmt.Errorf("delete application request failed: %w", err)
	}
	return nil
}

// GetHistory возвращает историю статусов отклика
func (c *Client) GetHistory(ctx context.Context, id int64) ([]api.StatusHistoryResponse, error) {
	var resp []api.StatusHistoryResponse
	if err := c.doRequest(ctx, http.MethodGet, applicationPath(id, "/history"), nil, &resp); err != nil {
		return nil, fmt.Errorf("get history request failed: %w", err)
	}
	return resp, nil
}

// GetStats возвращает статистику откликов
func (c *Client) GetStats(ctx context.Context) (*api.StatsResponse, error) {
	var resp api.StatsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/applications/stats/summary", nil, &resp); err != nil {
		return nil, fmt.Errorf("get stats request failed: %w", err)
	}
	return &resp, nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

func applicationPath(id int64, suffix string) string {
	return "/api/applications/" + strconv.FormatInt(id, 10) + suffix
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
