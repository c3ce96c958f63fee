package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

// ContactStorePort - хранилище контактов. Все операции ограничены владельцем.
type ContactStorePort interface {
	ListContacts(ctx context.Context, owner uuid.UUID) ([]domain.Contact, error)
	GetContact(ctx context.Context, owner uuid.UUID, id string) (*domain.Contact, error)
	// CreateContact присваивает id контакту и записям истории.
	CreateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) (*domain.Contact, error)
	// UpdateContact заменяет профиль контакта. История и lastContact не меняются.
	UpdateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) error
	// DeleteContact удаляет контакт вместе с историей.
	DeleteContact(ctx context.Context, owner uuid.UUID, id string) error

	AddHistory(ctx context.Context, owner uuid.UUID, contactID string, entry domain.HistoryEntry) (*domain.HistoryEntry, error)
	UpdateHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string, patch domain.HistoryPatch) (*domain.HistoryEntry, error)
	DeleteHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string) error

	// RecordHistory добавляет одну и ту же запись каждому контакту и выставляет lastContact.
	// Либо записываются все контакты, либо ни один.
	RecordHistory(ctx context.Context, owner uuid.UUID, contactIDs []string, entry domain.HistoryEntry) (int, error)
	// ReplaceAll атомарно заменяет всю коллекцию владельца.
	ReplaceAll(ctx context.Context, owner uuid.UUID, contacts []domain.Contact) error
}
