//go:build integration

package postgres_adapter

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/pkg/postgres"
)

// Запуск: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/adapters/postgres/
func newTestRepository(t *testing.T) *PostgresContactRepository {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewClient(ctx, postgres.Config{DatabaseURL: url, MaxConns: 4})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, Migrate(ctx, pool))
	repo, err := NewPostgresContactRepository(pool)
	require.NoError(t, err)
	return repo
}

func sampleContact(name string) domain.Contact {
	return domain.Contact{
		Name:             name,
		Phone:            "600111222",
		Email:            "buyer@example.com",
		ManagementType:   domain.ManagementBuyer,
		Type:             domain.PropertyFlat,
		Zones:            []string{"Gràcia"},
		Zone:             "Gràcia",
		MaxBudget:        300000,
		MinRooms:         2,
		NeedParking:      domain.PreferenceNo,
		NeedTerrace:      domain.PreferenceYes,
		NeedGarden:       domain.PreferenceNo,
		NeedPool:         domain.PreferenceNo,
		Urgency:          domain.UrgencyHigh,
		Intent:           domain.IntentLive,
		Usage:            domain.UsageOwn,
		RegistrationDate: "2024-06-10",
		Contact2:         domain.SecondaryContact{Name: "Pere", Relation: "pareja"},
	}
}

func TestPostgresContactRepository_Lifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	owner := uuid.New()

	created, err := repo.CreateContact(ctx, owner, sampleContact("Ana"))
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)

	got, err := repo.GetContact(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pere", got.Contact2.Name)
	assert.Equal(t, []string{"Gràcia"}, got.Zones)

	_, err = repo.GetContact(ctx, uuid.New(), created.ID)
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
	_, err = repo.GetContact(ctx, owner, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrContactNotFound)

	date := time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC)
	entry, err := repo.AddHistory(ctx, owner, created.ID, domain.HistoryEntry{
		Date: date, Channel: domain.ChannelPhone, Note: "Llamada", Type: domain.HistoryManual,
	})
	require.NoError(t, err)

	feedback := "Interesado"
	updated, err := repo.UpdateHistory(ctx, owner, created.ID, entry.ID, domain.HistoryPatch{Feedback: &feedback})
	require.NoError(t, err)
	assert.Equal(t, "Llamada", updated.Note)
	assert.Equal(t, "Interesado", updated.Feedback)

	edit := *got
	edit.Name = "Ana María"
	edit.Contact2 = domain.SecondaryContact{}
	edit.RegistrationDate = ""
	require.NoError(t, repo.UpdateContact(ctx, owner, edit))

	got, err = repo.GetContact(ctx, owner, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", got.Name)
	assert.True(t, got.Contact2.IsEmpty())
	assert.Equal(t, "2024-06-10", got.RegistrationDate)
	require.Len(t, got.ContactHistory, 1)
	require.NotNil(t, got.LastContact)
	assert.True(t, got.LastContact.Equal(date))

	require.NoError(t, repo.DeleteHistory(ctx, owner, created.ID, entry.ID))
	assert.ErrorIs(t, repo.DeleteHistory(ctx, owner, created.ID, entry.ID), domain.ErrHistoryNotFound)

	require.NoError(t, repo.DeleteContact(ctx, owner, created.ID))
	assert.ErrorIs(t, repo.DeleteContact(ctx, owner, created.ID), domain.ErrContactNotFound)
}

func TestPostgresContactRepository_RecordHistoryIsAllOrNothing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	owner := uuid.New()

	a, err := repo.CreateContact(ctx, owner, sampleContact("A"))
	require.NoError(t, err)
	b, err := repo.CreateContact(ctx, owner, sampleContact("B"))
	require.NoError(t, err)

	entry := domain.HistoryEntry{
		Date: time.Now().UTC(), Channel: domain.ChannelWhatsApp, Note: "Hola", Type: domain.HistorySimulation,
	}

	_, err = repo.RecordHistory(ctx, owner, []string{a.ID, uuid.NewString()}, entry)
	assert.ErrorIs(t, err, domain.ErrContactNotFound)

	n, err := repo.RecordHistory(ctx, owner, []string{a.ID, b.ID}, entry)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	contacts, err := repo.ListContacts(ctx, owner)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "A", contacts[0].Name)
	for _, c := range contacts {
		assert.Len(t, c.ContactHistory, 1)
		assert.NotNil(t, c.LastContact)
	}
}

func TestPostgresContactRepository_ReplaceAll(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	owner := uuid.New()

	_, err := repo.CreateContact(ctx, owner, sampleContact("Old"))
	require.NoError(t, err)

	imported := sampleContact("Imported")
	imported.ID = "legacy-1"
	imported.ContactHistory = []domain.HistoryEntry{{
		ID: "h1", Date: time.Now().UTC(), Channel: domain.ChannelEmail, Note: "Mail", Type: domain.HistoryManual,
	}}
	require.NoError(t, repo.ReplaceAll(ctx, owner, []domain.Contact{imported, sampleContact("Second")}))

	contacts, err := repo.ListContacts(ctx, owner)
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Imported", contacts[0].Name)
	assert.Len(t, contacts[0].ContactHistory, 1)
	assert.NotEqual(t, "legacy-1", contacts[0].ID)
}
