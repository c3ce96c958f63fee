package memory_adapter

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// ContactStore - хранилище контактов в памяти процесса.
// Используется при STORE_DRIVER=memory и в тестах обработчиков.
// Наружу всегда отдаются копии, поэтому вызывающий код не может изменить состояние в обход store.
type ContactStore struct {
	mu      sync.RWMutex
	byOwner map[uuid.UUID][]domain.Contact
	newID   func() string
}

func NewContactStore() *ContactStore {
	return &ContactStore{
		byOwner: make(map[uuid.UUID][]domain.Contact),
		newID:   func() string { return uuid.NewString() },
	}
}

var _ port.ContactStorePort = (*ContactStore)(nil)

func (s *ContactStore) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "MemoryContactStore",
		"method":    method,
	})
}

// indexOf возвращает позицию контакта у владельца или -1. Вызывать под блокировкой.
func (s *ContactStore) indexOf(owner uuid.UUID, id string) int {
	for i, c := range s.byOwner[owner] {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *ContactStore) ListContacts(ctx context.Context, owner uuid.UUID) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := domain.CloneContacts(s.byOwner[owner])
	s.logger(ctx, "ListContacts").Debug("Contacts listed", port.Fields{"count": len(out)})
	return out, nil
}

func (s *ContactStore) GetContact(ctx context.Context, owner uuid.UUID, id string) (*domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(owner, id)
	if i < 0 {
		return nil, domain.ErrContactNotFound
	}
	c := s.byOwner[owner][i].Clone()
	return &c, nil
}

func (s *ContactStore) CreateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) (*domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := contact.Clone()
	c.ID = s.newID()
	c.OwnerID = owner
	for i := range c.ContactHistory {
		c.ContactHistory[i].ID = s.newID()
	}
	s.byOwner[owner] = append(s.byOwner[owner], c)

	s.logger(ctx, "CreateContact").Debug("Contact created", port.Fields{"contact_id": c.ID})
	out := c.Clone()
	return &out, nil
}

func (s *ContactStore) UpdateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(owner, contact.ID)
	if i < 0 {
		return domain.ErrContactNotFound
	}
	current := s.byOwner[owner][i]

	updated := contact.Clone()
	updated.OwnerID = owner
	updated.ContactHistory = current.ContactHistory
	updated.LastContact = current.LastContact
	if updated.RegistrationDate == "" {
		updated.RegistrationDate = current.RegistrationDate
	}
	s.byOwner[owner][i] = updated

	s.logger(ctx, "UpdateContact").Debug("Contact updated", port.Fields{"contact_id": contact.ID})
	return nil
}

func (s *ContactStore) DeleteContact(ctx context.Context, owner uuid.UUID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(owner, id)
	if i < 0 {
		return domain.ErrContactNotFound
	}
	contacts := s.byOwner[owner]
	s.byOwner[owner] = append(contacts[:i:i], contacts[i+1:]...)

	s.logger(ctx, "DeleteContact").Debug("Contact deleted", port.Fields{"contact_id": id})
	return nil
}

func (s *ContactStore) AddHistory(ctx context.Context, owner uuid.UUID, contactID string, entry domain.HistoryEntry) (*domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(owner, contactID)
	if i < 0 {
		return nil, domain.ErrContactNotFound
	}
	entry.ID = s.newID()
	s.byOwner[owner][i].AppendHistory(entry)
	return &entry, nil
}

func (s *ContactStore) UpdateHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string, patch domain.HistoryPatch) (*domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(owner, contactID)
	if i < 0 {
		return nil, domain.ErrContactNotFound
	}
	// Работаем с копией, чтобы при ошибке не тронуть сохраненный контакт.
	c := s.byOwner[owner][i].Clone()
	entry, err := c.EditHistory(historyID, patch)
	if err != nil {
		return nil, err
	}
	s.byOwner[owner][i] = c
	return &entry, nil
}

func (s *ContactStore) DeleteHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(owner, contactID)
	if i < 0 {
		return domain.ErrContactNotFound
	}
	c := s.byOwner[owner][i].Clone()
	if err := c.RemoveHistory(historyID); err != nil {
		return err
	}
	s.byOwner[owner][i] = c
	return nil
}

func (s *ContactStore) RecordHistory(ctx context.Context, owner uuid.UUID, contactIDs []string, entry domain.HistoryEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions := make([]int, 0, len(contactIDs))
	for _, id := range contactIDs {
		i := s.indexOf(owner, id)
		if i < 0 {
			return 0, fmt.Errorf("%w: %s", domain.ErrContactNotFound, id)
		}
		positions = append(positions, i)
	}

	for _, i := range positions {
		e := entry
		e.ID = s.newID()
		s.byOwner[owner][i].AppendHistory(e)
	}

	s.logger(ctx, "RecordHistory").Debug("History recorded", port.Fields{"contacts": len(positions)})
	return len(positions), nil
}

func (s *ContactStore) ReplaceAll(ctx context.Context, owner uuid.UUID, contacts []domain.Contact) error {
	replaced := domain.CloneContacts(contacts)
	seen := make(map[string]struct{}, len(replaced))
	for i := range replaced {
		c := &replaced[i]
		if _, dup := seen[c.ID]; c.ID == "" || dup {
			c.ID = s.newID()
		}
		seen[c.ID] = struct{}{}
		c.OwnerID = owner
		for j := range c.ContactHistory {
			if c.ContactHistory[j].ID == "" {
				c.ContactHistory[j].ID = s.newID()
			}
		}
	}

	s.mu.Lock()
	s.byOwner[owner] = replaced
	s.mu.Unlock()

	s.logger(ctx, "ReplaceAll").Info("Collection replaced", port.Fields{"count": len(replaced)})
	return nil
}
