package rest

import "github.com/albertoDabu/crm-immobiliaria/internal/core/domain"

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ContactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

type ContactResponse struct {
	Contact *domain.Contact `json:"contact"`
}

type HistoryResponse struct {
	History *domain.HistoryEntry `json:"history"`
}

// BulkContactRequest - тело POST /api/contacts/bulk-contact.
type BulkContactRequest struct {
	ContactIDs []string       `json:"contactIds"`
	Message    string         `json:"message"`
	Channel    domain.Channel `json:"channel"`
}

type BulkContactResponse struct {
	Success   bool `json:"success"`
	Contacted int  `json:"contacted"`
}

type ImportResponse struct {
	Success  bool `json:"success"`
	Imported int  `json:"imported"`
}

type MatchesResponse struct {
	Matches []domain.MatchResult `json:"matches"`
	Count   int                  `json:"count"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
