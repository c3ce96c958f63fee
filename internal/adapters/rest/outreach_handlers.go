package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port/usecases_port"
)

const defaultQRSize = 256

// WhatsAppQRRenderer - ссылки WhatsApp и их QR-коды.
type WhatsAppQRRenderer interface {
	WhatsAppURL(phone, message string) string
	QRCodePNG(text string, size int) ([]byte, error)
}

// OutreachHandler обслуживает массовые контакты, подбор покупателей и QR-коды.
type OutreachHandler struct {
	bulkUC          usecases_port.BulkContactUseCase
	matchUC         usecases_port.MatchBuyersUseCase
	sendMatchesUC   usecases_port.SendMatchesUseCase
	sendToContactUC usecases_port.SendToContactUseCase
	getUC           usecases_port.GetContactUseCase
	qr              WhatsAppQRRenderer
}

func NewOutreachHandler(
	bulkUC usecases_port.BulkContactUseCase,
	matchUC usecases_port.MatchBuyersUseCase,
	sendMatchesUC usecases_port.SendMatchesUseCase,
	sendToContactUC usecases_port.SendToContactUseCase,
	getUC usecases_port.GetContactUseCase,
	qr WhatsAppQRRenderer,
) *OutreachHandler {
	return &OutreachHandler{
		bulkUC:          bulkUC,
		matchUC:         matchUC,
		sendMatchesUC:   sendMatchesUC,
		sendToContactUC: sendToContactUC,
		getUC:           getUC,
		qr:              qr,
	}
}

// BulkContact обрабатывает POST /api/contacts/bulk-contact
func (h *OutreachHandler) BulkContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "BulkContact"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req BulkContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.bulkUC.Execute(r.Context(), owner, domain.BulkContactInput{
		ContactIDs: req.ContactIDs,
		Message:    req.Message,
		Channel:    req.Channel,
	})
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to record bulk contact")
		return
	}
	RespondWithJSON(w, http.StatusOK, BulkContactResponse{Success: result.Success, Contacted: result.Contacted})
}

// MatchBuyers обрабатывает POST /api/matching
func (h *OutreachHandler) MatchBuyers(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "MatchBuyers"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req domain.MatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	matches, err := h.matchUC.Execute(r.Context(), owner, req)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to match buyers")
		return
	}
	RespondWithJSON(w, http.StatusOK, MatchesResponse{Matches: matches, Count: len(matches)})
}

// SendMatches обрабатывает POST /api/matching/send
func (h *OutreachHandler) SendMatches(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SendMatches"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req domain.MatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.sendMatchesUC.Execute(r.Context(), owner, req)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to send to matched buyers")
		return
	}
	RespondWithJSON(w, http.StatusOK, BulkContactResponse{Success: result.Success, Contacted: result.Contacted})
}

// SendToContact обрабатывает POST /api/matching/contacts/{id}/send
func (h *OutreachHandler) SendToContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SendToContact"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	var req domain.MatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	link, err := h.sendToContactUC.Execute(r.Context(), owner, chi.URLParam(r, "id"), req)
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to send to contact")
		return
	}
	RespondWithJSON(w, http.StatusOK, link)
}

// WhatsAppQR обрабатывает GET /api/contacts/{id}/whatsapp-qr и отдает PNG.
func (h *OutreachHandler) WhatsAppQR(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "WhatsAppQR"})
	owner, ok := ownerFromRequest(w, r, logger)
	if !ok {
		return
	}

	size, err := queryInt(r, "size")
	if err != nil || size < 0 || size > 2048 {
		WriteJSONError(w, http.StatusBadRequest, "size must be an integer between 0 and 2048")
		return
	}
	if size == 0 {
		size = defaultQRSize
	}

	contact, err := h.getUC.Execute(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, logger, err, "Failed to retrieve contact")
		return
	}

	png, err := h.qr.QRCodePNG(h.qr.WhatsAppURL(contact.Phone, r.URL.Query().Get("message")), size)
	if err != nil {
		logger.Error("Failed to render QR code", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
