package rest

import (
	"net/http"
	"strconv"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port/usecases_port"
)

type SnapshotHandler struct {
	exportUC usecases_port.ExportSnapshotUseCase
	importUC usecases_port.ImportSnapshotUseCase
}

func NewSnapshotHandler(exportUC usecases_port.ExportSnapshotUseCase, importUC usecases_port.ImportSnapshotUseCase) *SnapshotHandler {
	return &SnapshotHandler{exportUC: exportUC, importUC: importUC}
}

// ExportContacts обрабатывает GET /api/contacts/export?format=json|xlsx
func (h *SnapshotHandler) ExportContacts(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ExportContacts"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	snapshot, err := h.exportUC.Execute(r.Context(), owner, r.URL.Query().Get("format"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to export contacts")
		return
	}

	w.Header().Set("Content-Type", snapshot.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+snapshot.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(snapshot.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(snapshot.Data)
}

// ImportContacts обрабатывает POST /api/contacts/import?confirm=true
// Тело - JSON-массив контактов, которым заменяется вся коллекция.
func (h *SnapshotHandler) ImportContacts(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ImportContacts"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	confirmed := false
	if raw := r.URL.Query().Get("confirm"); raw != "" {
		var err error
		if confirmed, err = strconv.ParseBool(raw); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "confirm must be a boolean")
			return
		}
	}

	body, err := readBody(w, r)
	if err != nil {
		WriteJSONError(w, http.StatusRequestEntityTooLarge, "Import file is too large")
		return
	}

	count, err := h.importUC.Execute(r.Context(), owner, body, confirmed)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to import contacts")
		return
	}

	logger.Info("Contacts imported", port.Fields{"user_id": owner, "count": count})
	RespondWithJSON(w, http.StatusOK, ImportResponse{Success: true, Imported: count})
}
