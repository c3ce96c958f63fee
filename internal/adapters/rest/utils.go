package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

const maxBodyBytes = 10 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// readBody читает тело запроса с ограничением размера.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	return decodeBytes(body, dst)
}

func decodeBytes(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", domain.ErrInvalidField, err)
	}
	return nil
}

// statusForError сопоставляет доменную ошибку с HTTP-статусом.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrInvalidField),
		errors.Is(err, domain.ErrInvalidStatsWindow),
		errors.Is(err, domain.ErrNoRecipients),
		errors.Is(err, domain.ErrMissingEmail):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrContactNotFound), errors.Is(err, domain.ErrHistoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrImportNotConfirmed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidSnapshot):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeUseCaseError пишет ответ об ошибке use case. Для 500 клиенту уходит только publicMsg.
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error, publicMsg string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error(publicMsg, err, nil)
		WriteJSONError(w, status, publicMsg)
		return
	}
	logger.Warn("Request rejected", port.Fields{"status_code": status, "error": err.Error()})
	WriteJSONError(w, status, err.Error())
}

// queryInt возвращает 0, если параметр не задан.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidField, name)
	}
	return v, nil
}

func queryWindows(r *http.Request) (domain.StatsWindows, error) {
	recent, err := queryInt(r, "recentDays")
	if err != nil {
		return domain.StatsWindows{}, err
	}
	attention, err := queryInt(r, "attentionDays")
	if err != nil {
		return domain.StatsWindows{}, err
	}
	return domain.StatsWindows{RecentDays: recent, AttentionDays: attention}, nil
}
