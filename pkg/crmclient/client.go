// Package crmclient - HTTP-клиент REST API CRM и локальное рабочее состояние поверх него.
package crmclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

// Config - параметры подключения. Token и UserID взаимоисключающие:
// Token для AUTH_MODE=jwt, UserID для AUTH_MODE=header.
type Config struct {
	BaseURL    string
	Token      string
	UserID     string
	Timeout    time.Duration
	RetryCount int
}

// APIError - ответ сервера со статусом 4xx/5xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crm api: HTTP %d: %s", e.StatusCode, e.Message)
}

// IsNotFound сообщает, что сервер ответил 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type errorBody struct {
	Error string `json:"error"`
}

type Client struct {
	http *resty.Client
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("crm api base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Accept", "application/json").
		SetError(&errorBody{})

	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}
	if cfg.UserID != "" {
		httpClient.SetHeader("X-User-ID", cfg.UserID)
	}

	return &Client{http: httpClient}, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.SetHeader("X-Trace-ID", traceID)
	}
	return req
}

// check превращает ответ с ошибкой в *APIError.
func check(resp *resty.Response, err error) error {
	if err != nil {
		return fmt.Errorf("crm api request failed: %w", err)
	}
	if !resp.IsError() {
		return nil
	}
	msg := http.StatusText(resp.StatusCode())
	if body, ok := resp.Error().(*errorBody); ok && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}

type contactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

type contactResponse struct {
	Contact domain.Contact `json:"contact"`
}

type historyResponse struct {
	History domain.HistoryEntry `json:"history"`
}

type bulkResponse struct {
	Success   bool `json:"success"`
	Contacted int  `json:"contacted"`
}

type importResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

// ListContacts возвращает коллекцию. query - необязательные параметры фильтра
// (search, managementType, lastContact, urgency, sort, quick, recentDays, attentionDays).
func (c *Client) ListContacts(ctx context.Context, query map[string]string) ([]domain.Contact, error) {
	var out contactsResponse
	resp, err := c.request(ctx).SetQueryParams(query).SetResult(&out).Get("/api/contacts")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return out.Contacts, nil
}

func (c *Client) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	var out contactResponse
	resp, err := c.request(ctx).SetPathParam("id", id).SetResult(&out).Get("/api/contacts/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Contact, nil
}

func (c *Client) CreateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error) {
	var out contactResponse
	resp, err := c.request(ctx).SetBody(contact).SetResult(&out).Post("/api/contacts")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, contact domain.Contact) error {
	resp, err := c.request(ctx).SetPathParam("id", contact.ID).SetBody(contact).Put("/api/contacts/{id}")
	return check(resp, err)
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	resp, err := c.request(ctx).SetPathParam("id", id).Delete("/api/contacts/{id}")
	return check(resp, err)
}

func (c *Client) AddHistory(ctx context.Context, contactID string, input domain.NoteInput) (*domain.HistoryEntry, error) {
	var out historyResponse
	resp, err := c.request(ctx).
		SetPathParam("id", contactID).
		SetBody(input).
		SetResult(&out).
		Post("/api/contacts/{id}/history")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.History, nil
}

func (c *Client) UpdateHistory(ctx context.Context, contactID, historyID string, patch domain.HistoryPatch) (*domain.HistoryEntry, error) {
	var out historyResponse
	resp, err := c.request(ctx).
		SetPathParams(map[string]string{"id": contactID, "historyId": historyID}).
		SetBody(patch).
		SetResult(&out).
		Put("/api/contacts/{id}/history/{historyId}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.History, nil
}

func (c *Client) DeleteHistory(ctx context.Context, contactID, historyID string) error {
	resp, err := c.request(ctx).
		SetPathParams(map[string]string{"id": contactID, "historyId": historyID}).
		Delete("/api/contacts/{id}/history/{historyId}")
	return check(resp, err)
}

// BulkContact возвращает число контактов, которым записана история.
func (c *Client) BulkContact(ctx context.Context, contactIDs []string, message string, channel domain.Channel) (int, error) {
	var out bulkResponse
	body := map[string]interface{}{
		"contactIds": contactIDs,
		"message":    message,
		"channel":    channel,
	}
	resp, err := c.request(ctx).SetBody(body).SetResult(&out).Post("/api/contacts/bulk-contact")
	if err := check(resp, err); err != nil {
		return 0, err
	}
	return out.Contacted, nil
}

func (c *Client) Stats(ctx context.Context, windows domain.StatsWindows) (*domain.ContactStats, error) {
	var out domain.ContactStats
	req := c.request(ctx).SetResult(&out)
	if windows.RecentDays > 0 {
		req.SetQueryParam("recentDays", strconv.Itoa(windows.RecentDays))
	}
	if windows.AttentionDays > 0 {
		req.SetQueryParam("attentionDays", strconv.Itoa(windows.AttentionDays))
	}
	resp, err := req.Get("/api/contacts/stats")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export скачивает резервную копию. format: "json" (по умолчанию) или "xlsx".
func (c *Client) Export(ctx context.Context, format string) (*domain.Snapshot, error) {
	req := c.request(ctx)
	if format != "" {
		req.SetQueryParam("format", format)
	}
	resp, err := req.Get("/api/contacts/export")
	if err := check(resp, err); err != nil {
		return nil, err
	}

	filename := ""
	if _, after, ok := strings.Cut(resp.Header().Get("Content-Disposition"), "filename="); ok {
		filename = strings.Trim(after, `"`)
	}
	return &domain.Snapshot{
		Filename:    filename,
		ContentType: resp.Header().Get("Content-Type"),
		Data:        resp.Body(),
	}, nil
}

// Import заменяет всю коллекцию содержимым data (JSON-массив контактов).
// Без confirm сервер отвечает 409 и ничего не меняет.
func (c *Client) Import(ctx context.Context, data []byte, confirm bool) (int, error) {
	var out importResponse
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetQueryParam("confirm", strconv.FormatBool(confirm)).
		SetBody(data).
		SetResult(&out).
		Post("/api/contacts/import")
	if err := check(resp, err); err != nil {
		return 0, err
	}
	return out.Imported, nil
}
