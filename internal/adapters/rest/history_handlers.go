package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port/usecases_port"
)

type HistoryHandler struct {
	addUC    usecases_port.AddHistoryEntryUseCase
	updateUC usecases_port.UpdateHistoryEntryUseCase
	deleteUC usecases_port.DeleteHistoryEntryUseCase
}

func NewHistoryHandler(
	addUC usecases_port.AddHistoryEntryUseCase,
	updateUC usecases_port.UpdateHistoryEntryUseCase,
	deleteUC usecases_port.DeleteHistoryEntryUseCase,
) *HistoryHandler {
	return &HistoryHandler{addUC: addUC, updateUC: updateUC, deleteUC: deleteUC}
}

// AddHistoryEntry обрабатывает POST /api/contacts/{id}/history
func (h *HistoryHandler) AddHistoryEntry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddHistoryEntry"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	var input domain.NoteInput
	if err := decodeJSON(w, r, &input); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.addUC.Execute(r.Context(), owner, chi.URLParam(r, "id"), input)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to add history entry")
		return
	}
	RespondWithJSON(w, http.StatusCreated, HistoryResponse{History: entry})
}

// UpdateHistoryEntry обрабатывает PUT /api/contacts/{id}/history/{historyId}
func (h *HistoryHandler) UpdateHistoryEntry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateHistoryEntry"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	var patch domain.HistoryPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.updateUC.Execute(r.Context(), owner, chi.URLParam(r, "id"), chi.URLParam(r, "historyId"), patch)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to update history entry")
		return
	}
	RespondWithJSON(w, http.StatusOK, HistoryResponse{History: entry})
}

// DeleteHistoryEntry обрабатывает DELETE /api/contacts/{id}/history/{historyId}
func (h *HistoryHandler) DeleteHistoryEntry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteHistoryEntry"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(r.Context(), owner, chi.URLParam(r, "id"), chi.URLParam(r, "historyId")); err != nil {
		writeUseCaseError(w, logger, err, "Failed to delete history entry")
		return
	}
	RespondWithJSON(w, http.StatusOK, SuccessResponse{Success: true})
}
