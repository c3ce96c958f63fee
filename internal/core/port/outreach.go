package port

import (
	"context"
	"time"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

type OutreachEventPublisherPort interface {
	PublishOutreachRecorded(ctx context.Context, event domain.OutreachRecordedEvent) error
}

// OutreachLinkPort строит ссылки для ручной отправки сообщения.
type OutreachLinkPort interface {
	WhatsAppURL(phone, message string) string
	MailtoURL(email, body string) (string, error)
}

// Clock - источник текущего времени, подменяется в тестах.
type Clock func() time.Time
