package crmclient

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

// ProvisionalPrefix помечает id контакта, который еще не сохранен на сервере.
const ProvisionalPrefix = "tmp-"

func NewProvisionalID() string {
	return ProvisionalPrefix + uuid.NewString()
}

func IsProvisional(id string) bool {
	return id == "" || strings.HasPrefix(id, ProvisionalPrefix)
}

// ContactAPI - операции сервера, которые нужны Workspace. Реализуется *Client.
type ContactAPI interface {
	ListContacts(ctx context.Context, query map[string]string) ([]domain.Contact, error)
	CreateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error)
	UpdateContact(ctx context.Context, contact domain.Contact) error
	DeleteContact(ctx context.Context, id string) error
	AddHistory(ctx context.Context, contactID string, input domain.NoteInput) (*domain.HistoryEntry, error)
	BulkContact(ctx context.Context, contactIDs []string, message string, channel domain.Channel) (int, error)
}

// Workspace - локальная копия коллекции контактов.
//
// Мутации применяются к локальной копии только после успешного ответа сервера.
// Правка контакта, как и на сервере, сохраняет историю и lastContact.
// Изменения с другого клиента видны только после Reload.
type Workspace struct {
	api ContactAPI

	mu       sync.RWMutex
	contacts []domain.Contact
}

func NewWorkspace(api ContactAPI) *Workspace {
	return &Workspace{api: api, contacts: []domain.Contact{}}
}

// Load заменяет локальную копию списком с сервера. При ошибке копия не меняется.
func (w *Workspace) Load(ctx context.Context) error {
	contacts, err := w.api.ListContacts(ctx, nil)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.contacts = domain.CloneContacts(contacts)
	w.mu.Unlock()
	return nil
}

func (w *Workspace) Reload(ctx context.Context) error {
	return w.Load(ctx)
}

// Contacts возвращает копию локальной коллекции.
func (w *Workspace) Contacts() []domain.Contact {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return domain.CloneContacts(w.contacts)
}

func (w *Workspace) Find(id string) (domain.Contact, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if i := w.indexOf(id); i >= 0 {
		return w.contacts[i].Clone(), true
	}
	return domain.Contact{}, false
}

func (w *Workspace) indexOf(id string) int {
	for i := range w.contacts {
		if w.contacts[i].ID == id {
			return i
		}
	}
	return -1
}

// Save создает контакт с временным id или обновляет существующий.
// Новый контакт добавляется в конец с id, выданным сервером.
func (w *Workspace) Save(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	if IsProvisional(contact.ID) {
		created, err := w.api.CreateContact(ctx, contact)
		if err != nil {
			return domain.Contact{}, err
		}
		w.mu.Lock()
		w.contacts = append(w.contacts, created.Clone())
		w.mu.Unlock()
		return created.Clone(), nil
	}

	if err := w.api.UpdateContact(ctx, contact); err != nil {
		return domain.Contact{}, err
	}

	// Сервер сохраняет историю и lastContact, а поля нормализует так же.
	updated := contact.Clone()
	w.mu.Lock()
	defer w.mu.Unlock()
	if i := w.indexOf(contact.ID); i >= 0 {
		current := w.contacts[i].Clone()
		updated.ContactHistory = current.ContactHistory
		updated.LastContact = current.LastContact
		if updated.RegistrationDate == "" {
			updated.RegistrationDate = current.RegistrationDate
		}
		updated.ApplyEditDefaults()
		w.contacts[i] = updated.Clone()
	} else {
		updated.ApplyEditDefaults()
	}
	return updated, nil
}

func (w *Workspace) Delete(ctx context.Context, id string) error {
	if err := w.api.DeleteContact(ctx, id); err != nil {
		return err
	}
	w.mu.Lock()
	if i := w.indexOf(id); i >= 0 {
		w.contacts = append(w.contacts[:i:i], w.contacts[i+1:]...)
	}
	w.mu.Unlock()
	return nil
}

// AddNote добавляет ручную заметку и обновляет lastContact в локальной копии.
func (w *Workspace) AddNote(ctx context.Context, contactID string, input domain.NoteInput) (*domain.HistoryEntry, error) {
	entry, err := w.api.AddHistory(ctx, contactID, input)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	if i := w.indexOf(contactID); i >= 0 {
		w.contacts[i].AppendHistory(*entry)
	}
	w.mu.Unlock()
	return entry, nil
}

// Bulk записывает рассылку и перечитывает коллекцию, чтобы получить историю с id сервера.
func (w *Workspace) Bulk(ctx context.Context, contactIDs []string, message string, channel domain.Channel) (int, error) {
	contacted, err := w.api.BulkContact(ctx, contactIDs, message, channel)
	if err != nil {
		return 0, err
	}
	if err := w.Reload(ctx); err != nil {
		return contacted, err
	}
	return contacted, nil
}
