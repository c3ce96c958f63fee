package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

func TestBulkContact_DedupesAndRecordsOnce(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{}

	wantEntry := domain.HistoryEntry{
		Date:    fixedNow,
		Channel: domain.ChannelWhatsApp,
		Note:    "Hola cliente",
		Type:    domain.HistorySimulation,
	}
	store.On("RecordHistory", mock.Anything, testOwner, []string{"a", "b"}, wantEntry).Return(2, nil).Once()
	pub.On("PublishOutreachRecorded", mock.Anything, mock.MatchedBy(func(e domain.OutreachRecordedEvent) bool {
		return e.OwnerID == testOwner && len(e.ContactIDs) == 2 && e.Type == domain.HistorySimulation
	})).Return(nil).Once()

	uc := NewBulkContactUseCase(store, pub, fixedClock, 0)
	res, err := uc.Execute(context.Background(), testOwner, domain.BulkContactInput{
		ContactIDs: []string{"a", "b", "a", " ", "b"},
		Message:    "Hola cliente",
	})

	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, 2, res.Contacted)
	assert.True(t, fixedNow.Equal(res.Date))
	store.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestBulkContact_EmptyRecipients(t *testing.T) {
	store := &mockStore{}
	uc := NewBulkContactUseCase(store, nil, fixedClock, 0)

	_, err := uc.Execute(context.Background(), testOwner, domain.BulkContactInput{ContactIDs: []string{"", " "}, Message: "x"})
	assert.ErrorIs(t, err, domain.ErrNoRecipients)
	store.AssertNotCalled(t, "RecordHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkContact_InvalidInput(t *testing.T) {
	uc := NewBulkContactUseCase(&mockStore{}, nil, fixedClock, 0)

	_, err := uc.Execute(context.Background(), testOwner, domain.BulkContactInput{ContactIDs: []string{"a"}, Message: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = uc.Execute(context.Background(), testOwner, domain.BulkContactInput{ContactIDs: []string{"a"}, Message: "x", Channel: "sms"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestBulkContact_PublishFailureIsNotFatal(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{}
	store.On("RecordHistory", mock.Anything, testOwner, []string{"a"}, mock.Anything).Return(1, nil)
	pub.On("PublishOutreachRecorded", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	res, err := NewBulkContactUseCase(store, pub, fixedClock, 0).Execute(context.Background(), testOwner,
		domain.BulkContactInput{ContactIDs: []string{"a"}, Message: "x", Channel: domain.ChannelEmail})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Contacted)
}

func TestBulkContact_StoreFailureSkipsEvent(t *testing.T) {
	store := &mockStore{}
	pub := &mockPublisher{}
	store.On("RecordHistory", mock.Anything, testOwner, mock.Anything, mock.Anything).Return(0, errStoreDown)

	_, err := NewBulkContactUseCase(store, pub, fixedClock, 0).Execute(context.Background(), testOwner,
		domain.BulkContactInput{ContactIDs: []string{"a"}, Message: "x"})

	assert.ErrorIs(t, err, errStoreDown)
	pub.AssertNotCalled(t, "PublishOutreachRecorded", mock.Anything, mock.Anything)
}

func TestBulkContact_SimulatedDelay(t *testing.T) {
	store := &mockStore{}
	store.On("RecordHistory", mock.Anything, testOwner, mock.Anything, mock.Anything).Return(1, nil)

	delay := 30 * time.Millisecond
	uc := NewBulkContactUseCase(store, nil, fixedClock, delay)

	start := time.Now()
	_, err := uc.Execute(context.Background(), testOwner, domain.BulkContactInput{
		ContactIDs:      []string{"a"},
		Message:         "x",
		SimulateLatency: true,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestBulkContact_CancelledDuringDelay(t *testing.T) {
	store := &mockStore{}
	uc := NewBulkContactUseCase(store, nil, fixedClock, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := uc.Execute(ctx, testOwner, domain.BulkContactInput{
		ContactIDs:      []string{"a"},
		Message:         "x",
		SimulateLatency: true,
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	store.AssertNotCalled(t, "RecordHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func matchingFixture() []domain.Contact {
	return []domain.Contact{
		{ID: "ana", Name: "Ana", Phone: "600111222", Email: "ana@example.com", Type: domain.PropertyFlat,
			Zones: []string{"Eixample"}, MaxBudget: 300000, MinRooms: 2, NeedParking: domain.PreferenceYes},
		{ID: "luis", Name: "Luis", Phone: "+34 611 222 333", Type: domain.PropertyFlat, MaxBudget: 200000},
		{ID: "marta", Name: "Marta", Type: domain.PropertyHouse},
	}
}

func TestMatchBuyers_RendersPerBuyer(t *testing.T) {
	store := &mockStore{}
	store.On("ListContacts", mock.Anything, testOwner).Return(matchingFixture(), nil)

	uc := NewMatchBuyersUseCase(store, stubLinks{})
	res, err := uc.Execute(context.Background(), testOwner, domain.MatchRequest{
		Property: domain.PropertyDraft{Type: domain.PropertyFlat, Zone: "eixample", Price: 280000, Rooms: 3, Parking: true},
		Template: "Hola {nombre}, {tipo} por {precio}",
	})

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "ana", res[0].Contact.ID)
	assert.Equal(t, "Hola Ana, piso por 280000", res[0].Message)
	assert.Contains(t, res[0].WhatsAppURL, "wa:600111222")
	assert.Equal(t, "mailto:ana@example.com", res[0].MailtoURL)
}

func TestMatchBuyers_InvalidDraft(t *testing.T) {
	_, err := NewMatchBuyersUseCase(&mockStore{}, stubLinks{}).Execute(context.Background(), testOwner,
		domain.MatchRequest{Property: domain.PropertyDraft{Type: "yacht"}})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestSendMatches_UsesGenericMessage(t *testing.T) {
	store := &mockStore{}
	store.On("ListContacts", mock.Anything, testOwner).Return(matchingFixture(), nil)
	store.On("RecordHistory", mock.Anything, testOwner, []string{"luis"}, mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Note == "Hola cliente, piso en tu zona de interés" && e.Channel == domain.ChannelEmail
	})).Return(1, nil).Once()

	bulk := NewBulkContactUseCase(store, nil, fixedClock, 0)
	uc := NewSendMatchesUseCase(store, bulk)

	res, err := uc.Execute(context.Background(), testOwner, domain.MatchRequest{
		Property: domain.PropertyDraft{Type: domain.PropertyFlat},
		Template: "Hola {nombre}, {tipo} en {zona}",
		Channel:  domain.ChannelEmail,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Contacted)
	store.AssertExpectations(t)
}

func TestSendMatches_NoMatches(t *testing.T) {
	store := &mockStore{}
	store.On("ListContacts", mock.Anything, testOwner).Return(matchingFixture(), nil)

	uc := NewSendMatchesUseCase(store, NewBulkContactUseCase(store, nil, fixedClock, 0))
	_, err := uc.Execute(context.Background(), testOwner, domain.MatchRequest{
		Property: domain.PropertyDraft{Type: domain.PropertyOffice},
	})
	assert.ErrorIs(t, err, domain.ErrNoRecipients)
}

func TestSendToContact(t *testing.T) {
	fixture := matchingFixture()
	store := &mockStore{}
	store.On("GetContact", mock.Anything, testOwner, "luis").Return(&fixture[1], nil)
	store.On("RecordHistory", mock.Anything, testOwner, []string{"luis"}, mock.Anything).Return(1, nil).Once()

	uc := NewSendToContactUseCase(store, stubLinks{}, NewBulkContactUseCase(store, nil, fixedClock, 0))
	link, err := uc.Execute(context.Background(), testOwner, "luis", domain.MatchRequest{
		Property: domain.PropertyDraft{Type: domain.PropertyFlat, Price: 150000},
		Template: "Hola {nombre}",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ChannelWhatsApp, link.Channel)
	assert.Equal(t, "Hola Luis", link.Message)
	assert.Contains(t, link.URL, "wa:+34 611 222 333")
	store.AssertExpectations(t)
}

func TestSendToContact_EmailMissingDoesNotRecord(t *testing.T) {
	fixture := matchingFixture()
	store := &mockStore{}
	store.On("GetContact", mock.Anything, testOwner, "luis").Return(&fixture[1], nil)

	uc := NewSendToContactUseCase(store, stubLinks{}, NewBulkContactUseCase(store, nil, fixedClock, 0))
	_, err := uc.Execute(context.Background(), testOwner, "luis", domain.MatchRequest{Channel: domain.ChannelEmail})

	assert.ErrorIs(t, err, domain.ErrMissingEmail)
	store.AssertNotCalled(t, "RecordHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
