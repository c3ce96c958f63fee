package domain

import (
	"time"

	"github.com/google/uuid"
)

// MatchResult - подходящий покупатель вместе с готовым сообщением и ссылками для отправки.
type MatchResult struct {
	Contact     Contact `json:"contact"`
	Message     string  `json:"message"`
	WhatsAppURL string  `json:"whatsappUrl,omitempty"`
	MailtoURL   string  `json:"mailtoUrl,omitempty"`
}

// BulkContactResult - итог массовой рассылки.
type BulkContactResult struct {
	Success   bool      `json:"success"`
	Contacted int       `json:"contacted"`
	Date      time.Time `json:"date"`
}

// OutreachRecordedEvent публикуется после записи массовой рассылки.
type OutreachRecordedEvent struct {
	OwnerID    uuid.UUID   `json:"owner_id"`
	ContactIDs []string    `json:"contact_ids"`
	Channel    Channel     `json:"channel"`
	Message    string      `json:"message"`
	Type       HistoryType `json:"type"`
	RecordedAt time.Time   `json:"recorded_at"`
}

// Claims - данные пользователя из access-токена.
type Claims struct {
	UserID uuid.UUID
	Email  string
}

// NoteInput - ручная заметка из карточки контакта.
type NoteInput struct {
	Note    string  `json:"note"`
	Channel Channel `json:"channel"`
}

// BulkContactInput - одна запись истории для группы контактов.
type BulkContactInput struct {
	ContactIDs []string `json:"contactIds"`
	Message    string   `json:"message"`
	Channel    Channel  `json:"channel"`
	// SimulateLatency включает искусственную задержку перед записью.
	SimulateLatency bool `json:"-"`
}

// MatchRequest - объект для подбора и шаблон сообщения.
type MatchRequest struct {
	Property PropertyDraft `json:"property"`
	Template string        `json:"template"`
	Channel  Channel       `json:"channel"`
}

// OutreachLink - сообщение, отправленное одному контакту, и ссылка для его открытия.
type OutreachLink struct {
	ContactID string  `json:"contactId"`
	Channel   Channel `json:"channel"`
	Message   string  `json:"message"`
	URL       string  `json:"url,omitempty"`
}
