package crmclient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

var errBoom = errors.New("boom")

type fakeAPI struct {
	server  []domain.Contact
	nextID  int
	failAll bool
	lists   int
}

func (f *fakeAPI) ListContacts(ctx context.Context, query map[string]string) ([]domain.Contact, error) {
	f.lists++
	if f.failAll {
		return nil, errBoom
	}
	return domain.CloneContacts(f.server), nil
}

func (f *fakeAPI) CreateContact(ctx context.Context, contact domain.Contact) (*domain.Contact, error) {
	if f.failAll {
		return nil, errBoom
	}
	f.nextID++
	contact.ID = "srv-" + strings.Repeat("x", f.nextID)
	contact.RegistrationDate = "2024-06-10"
	f.server = append(f.server, contact)
	return &contact, nil
}

func (f *fakeAPI) UpdateContact(ctx context.Context, contact domain.Contact) error {
	if f.failAll {
		return errBoom
	}
	for i := range f.server {
		if f.server[i].ID == contact.ID {
			f.server[i] = contact
			return nil
		}
	}
	return &APIError{StatusCode: 404, Message: "contact not found"}
}

func (f *fakeAPI) DeleteContact(ctx context.Context, id string) error {
	if f.failAll {
		return errBoom
	}
	for i := range f.server {
		if f.server[i].ID == id {
			f.server = append(f.server[:i], f.server[i+1:]...)
			return nil
		}
	}
	return &APIError{StatusCode: 404, Message: "contact not found"}
}

func (f *fakeAPI) AddHistory(ctx context.Context, contactID string, input domain.NoteInput) (*domain.HistoryEntry, error) {
	if f.failAll {
		return nil, errBoom
	}
	entry := domain.HistoryEntry{
		ID:      "h-" + contactID,
		Date:    time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
		Channel: input.Channel,
		Note:    input.Note,
		Type:    domain.HistoryManual,
	}
	return &entry, nil
}

func (f *fakeAPI) BulkContact(ctx context.Context, contactIDs []string, message string, channel domain.Channel) (int, error) {
	if f.failAll {
		return 0, errBoom
	}
	date := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	for _, id := range contactIDs {
		for i := range f.server {
			if f.server[i].ID == id {
				f.server[i].AppendHistory(domain.HistoryEntry{ID: "b-" + id, Date: date, Channel: channel, Note: message, Type: domain.HistorySimulation})
			}
		}
	}
	return len(contactIDs), nil
}

func names(contacts []domain.Contact) []string {
	out := make([]string, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, c.Name)
	}
	return out
}

func TestProvisionalIDs(t *testing.T) {
	id := NewProvisionalID()
	assert.True(t, strings.HasPrefix(id, ProvisionalPrefix))
	assert.True(t, IsProvisional(id))
	assert.True(t, IsProvisional(""))
	assert.False(t, IsProvisional("0b7d1f6e-2c3a-4e5f-8a9b-0c1d2e3f4a5b"))
	assert.NotEqual(t, id, NewProvisionalID())
}

func TestWorkspace_SaveCreatesThenUpdatesInPlace(t *testing.T) {
	api := &fakeAPI{server: []domain.Contact{{ID: "a", Name: "Ana"}}}
	ws := NewWorkspace(api)
	ctx := context.Background()
	require.NoError(t, ws.Load(ctx))

	created, err := ws.Save(ctx, domain.Contact{ID: NewProvisionalID(), Name: "Luis"})
	require.NoError(t, err)
	assert.False(t, IsProvisional(created.ID))
	assert.Equal(t, []string{"Ana", "Luis"}, names(ws.Contacts()))

	ana, ok := ws.Find("a")
	require.True(t, ok)
	ana.Name = "Ana María"
	_, err = ws.Save(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana María", "Luis"}, names(ws.Contacts()))
	assert.Equal(t, 1, api.lists)

	// Форма редактирования не присылает историю: локальная копия ее сохраняет.
	entry, err := ws.AddNote(ctx, created.ID, domain.NoteInput{Note: "llamada", Channel: domain.ChannelPhone})
	require.NoError(t, err)

	saved, err := ws.Save(ctx, domain.Contact{ID: created.ID, Name: "Luis", Zones: []string{"Eixample", "Gracia"}})
	require.NoError(t, err)

	luis, ok := ws.Find(created.ID)
	require.True(t, ok)
	require.Len(t, luis.ContactHistory, 1)
	assert.Equal(t, entry.ID, luis.ContactHistory[0].ID)
	require.NotNil(t, luis.LastContact)
	assert.True(t, luis.LastContact.Equal(entry.Date))
	assert.Equal(t, "Eixample, Gracia", luis.Zone)
	assert.Equal(t, domain.PreferenceIndifferent, luis.NeedParking)
	assert.Equal(t, "2024-06-10", luis.RegistrationDate)
	if diff := cmp.Diff(luis, saved); diff != "" {
		t.Errorf("returned contact differs from cached one (-cached +returned):\n%s", diff)
	}
}

func TestWorkspace_FailedCallLeavesLocalStateAlone(t *testing.T) {
	api := &fakeAPI{server: []domain.Contact{{ID: "a", Name: "Ana"}}}
	ws := NewWorkspace(api)
	ctx := context.Background()
	require.NoError(t, ws.Load(ctx))
	before := ws.Contacts()

	api.failAll = true
	_, err := ws.Save(ctx, domain.Contact{Name: "Luis"})
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, ws.Delete(ctx, "a"), errBoom)
	_, err = ws.AddNote(ctx, "a", domain.NoteInput{Note: "x", Channel: domain.ChannelPhone})
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorIs(t, ws.Reload(ctx), errBoom)

	if diff := cmp.Diff(before, ws.Contacts()); diff != "" {
		t.Errorf("local state changed after failures (-want +got):\n%s", diff)
	}
}

func TestWorkspace_DeleteFiltersLocally(t *testing.T) {
	api := &fakeAPI{server: []domain.Contact{{ID: "a", Name: "Ana"}, {ID: "b", Name: "Bea"}, {ID: "c", Name: "Carla"}}}
	ws := NewWorkspace(api)
	ctx := context.Background()
	require.NoError(t, ws.Load(ctx))

	require.NoError(t, ws.Delete(ctx, "b"))
	assert.Equal(t, []string{"Ana", "Carla"}, names(ws.Contacts()))
}

func TestWorkspace_AddNoteUpdatesLastContact(t *testing.T) {
	api := &fakeAPI{server: []domain.Contact{{ID: "a", Name: "Ana"}}}
	ws := NewWorkspace(api)
	ctx := context.Background()
	require.NoError(t, ws.Load(ctx))

	entry, err := ws.AddNote(ctx, "a", domain.NoteInput{Note: "visita", Channel: domain.ChannelInPerson})
	require.NoError(t, err)

	ana, _ := ws.Find("a")
	require.Len(t, ana.ContactHistory, 1)
	assert.Equal(t, entry.ID, ana.ContactHistory[0].ID)
	require.NotNil(t, ana.LastContact)
	assert.True(t, ana.LastContact.Equal(entry.Date))
}

func TestWorkspace_BulkReloads(t *testing.T) {
	api := &fakeAPI{server: []domain.Contact{{ID: "a", Name: "Ana"}, {ID: "b", Name: "Bea"}}}
	ws := NewWorkspace(api)
	ctx := context.Background()
	require.NoError(t, ws.Load(ctx))

	n, err := ws.Bulk(ctx, []string{"a", "b"}, "Nuevo piso", domain.ChannelWhatsApp)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, api.lists)

	for _, c := range ws.Contacts() {
		require.Len(t, c.ContactHistory, 1, c.Name)
		assert.Equal(t, domain.HistorySimulation, c.ContactHistory[0].Type)
	}
}

func TestWorkspace_ContactsReturnsCopy(t *testing.T) {
	api := &fakeAPI{server: []domain.Contact{{ID: "a", Name: "Ana", Zones: []string{"Gràcia"}}}}
	ws := NewWorkspace(api)
	require.NoError(t, ws.Load(context.Background()))

	got := ws.Contacts()
	got[0].Zones[0] = "Sants"
	again, _ := ws.Find("a")
	assert.Equal(t, []string{"Gràcia"}, again.Zones)
}
