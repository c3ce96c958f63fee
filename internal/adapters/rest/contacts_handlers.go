package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/contracts"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/engine"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port/usecases_port"
)

// filterParams - параметры запроса, при наличии которых список фильтруется.
var filterParams = []string{"search", "managementType", "lastContact", "urgency", "sort", "quick", "recentDays", "attentionDays"}

// ContactsHandler обслуживает CRUD контактов и статистику.
type ContactsHandler struct {
	listUC   usecases_port.ListContactsUseCase
	searchUC usecases_port.SearchContactsUseCase
	getUC    usecases_port.GetContactUseCase
	createUC usecases_port.CreateContactUseCase
	updateUC usecases_port.UpdateContactUseCase
	deleteUC usecases_port.DeleteContactUseCase
	statsUC  usecases_port.GetStatsUseCase
	windows  domain.StatsWindows
}

// NewContactsHandler - конструктор. windows - окна по умолчанию для статистики и фильтров.
func NewContactsHandler(
	listUC usecases_port.ListContactsUseCase,
	searchUC usecases_port.SearchContactsUseCase,
	getUC usecases_port.GetContactUseCase,
	createUC usecases_port.CreateContactUseCase,
	updateUC usecases_port.UpdateContactUseCase,
	deleteUC usecases_port.DeleteContactUseCase,
	statsUC usecases_port.GetStatsUseCase,
	windows domain.StatsWindows,
) *ContactsHandler {
	return &ContactsHandler{
		listUC:   listUC,
		searchUC: searchUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		statsUC:  statsUC,
		windows:  windows.OrDefault(),
	}
}

// ownerFromRequest достает владельца, положенный auth middleware.
func ownerFromRequest(w http.ResponseWriter, r *http.Request, logger port.LoggerPort) (uuid.UUID, bool) {
	userID, ok := contextkeys.UserIDFromContext(r.Context())
	if !ok {
		logger.Error("Invalid or missing user ID in context", nil, nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid user ID in context")
		return uuid.Nil, false
	}
	return userID, true
}

func hasFilterParams(r *http.Request) bool {
	q := r.URL.Query()
	for _, p := range filterParams {
		if q.Has(p) {
			return true
		}
	}
	return false
}

// criteriaFromQuery собирает фильтр. Быстрый фильтр применяется последним и сбрасывает остальные измерения.
func (h *ContactsHandler) criteriaFromQuery(r *http.Request) (domain.FilterCriteria, error) {
	q := r.URL.Query()
	windows, err := queryWindows(r)
	if err != nil {
		return domain.FilterCriteria{}, err
	}
	if windows.RecentDays == 0 {
		windows.RecentDays = h.windows.RecentDays
	}
	if windows.AttentionDays == 0 {
		windows.AttentionDays = h.windows.AttentionDays
	}

	state := engine.NewFilterState(windows)
	state.Search = q.Get("search")
	if v := q.Get("managementType"); v != "" {
		state.ManagementType = domain.ManagementType(v)
	}
	if v := q.Get("lastContact"); v != "" {
		state.LastContact = domain.LastContactFilter(v)
	}
	if v := q.Get("urgency"); v != "" {
		state.Urgency = domain.Urgency(v)
	}
	if v := q.Get("sort"); v != "" {
		state.Sort = domain.SortOrder(v)
	}

	if raw := q.Get("quick"); raw != "" {
		kind, value, err := engine.ParseQuickFilter(raw)
		if err != nil {
			return domain.FilterCriteria{}, err
		}
		if state, err = state.ApplyQuickFilter(kind, value); err != nil {
			return domain.FilterCriteria{}, err
		}
	}
	return state.FilterCriteria, nil
}

// ListContacts обрабатывает GET /api/contacts
func (h *ContactsHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListContacts"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	var (
		contacts []domain.Contact
		err      error
	)
	if hasFilterParams(r) {
		criteria, cErr := h.criteriaFromQuery(r)
		if cErr != nil {
			writeUseCaseError(w, logger, cErr, "Failed to retrieve contacts")
			return
		}
		contacts, err = h.searchUC.Execute(r.Context(), owner, criteria)
	} else {
		contacts, err = h.listUC.Execute(r.Context(), owner)
	}
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve contacts")
		return
	}

	RespondWithJSON(w, http.StatusOK, ContactsResponse{Contacts: contacts})
}

// GetContact обрабатывает GET /api/contacts/{id}
func (h *ContactsHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetContact"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	contact, err := h.getUC.Execute(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve contact")
		return
	}
	RespondWithJSON(w, http.StatusOK, ContactResponse{Contact: contact})
}

// decodeContact проверяет тело по JSON-схеме контакта и разбирает его.
func decodeContact(w http.ResponseWriter, r *http.Request) (domain.Contact, error) {
	var contact domain.Contact
	body, err := readBody(w, r)
	if err != nil {
		return contact, err
	}
	if err := contracts.Validate(contracts.ContactV1, body); err != nil {
		return contact, err
	}
	if err := decodeBytes(body, &contact); err != nil {
		return contact, err
	}
	return contact, nil
}

// CreateContact обрабатывает POST /api/contacts
func (h *ContactsHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateContact"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	contact, err := decodeContact(w, r)
	if err != nil {
		logger.Warn("Invalid contact payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.createUC.Execute(r.Context(), owner, contact)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to create contact")
		return
	}

	logger.Info("Contact created", port.Fields{"user_id": owner, "contact_id": created.ID})
	RespondWithJSON(w, http.StatusCreated, ContactResponse{Contact: created})
}

// UpdateContact обрабатывает PUT /api/contacts/{id}
func (h *ContactsHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateContact"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	contact, err := decodeContact(w, r)
	if err != nil {
		logger.Warn("Invalid contact payload", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	contact.ID = chi.URLParam(r, "id")

	if err := h.updateUC.Execute(r.Context(), owner, contact); err != nil {
		writeUseCaseError(w, logger, err, "Failed to update contact")
		return
	}
	RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// DeleteContact обрабатывает DELETE /api/contacts/{id}
func (h *ContactsHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteContact"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeUseCaseError(w, logger, err, "Failed to delete contact")
		return
	}
	RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// GetStats обрабатывает GET /api/contacts/stats
func (h *ContactsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetStats"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	windows, err := queryWindows(r)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to compute statistics")
		return
	}
	if windows.RecentDays == 0 {
		windows.RecentDays = h.windows.RecentDays
	}
	if windows.AttentionDays == 0 {
		windows.AttentionDays = h.windows.AttentionDays
	}

	stats, err := h.statsUC.Execute(r.Context(), owner, windows)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to compute statistics")
		return
	}
	RespondWithJSON(w, http.StatusOK, stats)
}
