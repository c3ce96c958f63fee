package usecase

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/goleak"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	testOwner = uuid.MustParse("6f1c2a4e-8d3b-4f5a-9c7e-1b2d3e4f5a6b")
	fixedNow  = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
)

func fixedClock() time.Time { return fixedNow }

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListContacts(ctx context.Context, owner uuid.UUID) ([]domain.Contact, error) {
	args := m.Called(ctx, owner)
	contacts, _ := args.Get(0).([]domain.Contact)
	return contacts, args.Error(1)
}

func (m *mockStore) GetContact(ctx context.Context, owner uuid.UUID, id string) (*domain.Contact, error) {
	args := m.Called(ctx, owner, id)
	contact, _ := args.Get(0).(*domain.Contact)
	return contact, args.Error(1)
}

func (m *mockStore) CreateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) (*domain.Contact, error) {
	args := m.Called(ctx, owner, contact)
	created, _ := args.Get(0).(*domain.Contact)
	return created, args.Error(1)
}

func (m *mockStore) UpdateContact(ctx context.Context, owner uuid.UUID, contact domain.Contact) error {
	return m.Called(ctx, owner, contact).Error(0)
}

func (m *mockStore) DeleteContact(ctx context.Context, owner uuid.UUID, id string) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockStore) AddHistory(ctx context.Context, owner uuid.UUID, contactID string, entry domain.HistoryEntry) (*domain.HistoryEntry, error) {
	args := m.Called(ctx, owner, contactID, entry)
	saved, _ := args.Get(0).(*domain.HistoryEntry)
	return saved, args.Error(1)
}

func (m *mockStore) UpdateHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string, patch domain.HistoryPatch) (*domain.HistoryEntry, error) {
	args := m.Called(ctx, owner, contactID, historyID, patch)
	entry, _ := args.Get(0).(*domain.HistoryEntry)
	return entry, args.Error(1)
}

func (m *mockStore) DeleteHistory(ctx context.Context, owner uuid.UUID, contactID, historyID string) error {
	return m.Called(ctx, owner, contactID, historyID).Error(0)
}

func (m *mockStore) RecordHistory(ctx context.Context, owner uuid.UUID, contactIDs []string, entry domain.HistoryEntry) (int, error) {
	args := m.Called(ctx, owner, contactIDs, entry)
	return args.Int(0), args.Error(1)
}

func (m *mockStore) ReplaceAll(ctx context.Context, owner uuid.UUID, contacts []domain.Contact) error {
	return m.Called(ctx, owner, contacts).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishOutreachRecorded(ctx context.Context, event domain.OutreachRecordedEvent) error {
	return m.Called(ctx, event).Error(0)
}

type mockDecoder struct {
	mock.Mock
}

func (m *mockDecoder) Decode(data []byte) ([]domain.Contact, error) {
	args := m.Called(data)
	contacts, _ := args.Get(0).([]domain.Contact)
	return contacts, args.Error(1)
}

// stubLinks строит предсказуемые ссылки без обращения к адаптеру.
type stubLinks struct{}

func (stubLinks) WhatsAppURL(phone, message string) string {
	return "wa:" + phone + "?" + url.QueryEscape(message)
}

func (stubLinks) MailtoURL(email, body string) (string, error) {
	if email == "" {
		return "", domain.ErrMissingEmail
	}
	return "mailto:" + email, nil
}

type stubEncoder struct {
	format string
	err    error
}

func (s stubEncoder) Format() string      { return s.format }
func (s stubEncoder) ContentType() string { return "application/" + s.format }
func (s stubEncoder) Encode(contacts []domain.Contact) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []byte{byte(len(contacts))}, nil
}
