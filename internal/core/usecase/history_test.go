package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
)

func TestAddHistoryEntry_BuildsManualEntry(t *testing.T) {
	store := &mockStore{}
	want := domain.HistoryEntry{
		Date:    fixedNow,
		Channel: domain.ChannelInPerson,
		Note:    "Visita al piso",
		Type:    domain.HistoryManual,
	}
	saved := want
	saved.ID = "h-1"
	store.On("AddHistory", mock.Anything, testOwner, "c-1", want).Return(&saved, nil).Once()

	uc := NewAddHistoryEntryUseCase(store, fixedClock)
	got, err := uc.Execute(context.Background(), testOwner, "c-1", domain.NoteInput{
		Note:    "  Visita al piso ",
		Channel: domain.ChannelInPerson,
	})

	require.NoError(t, err)
	assert.Equal(t, "h-1", got.ID)
	assert.Empty(t, got.Feedback)
	store.AssertExpectations(t)
}

func TestAddHistoryEntry_DefaultChannelIsPhone(t *testing.T) {
	store := &mockStore{}
	store.On("AddHistory", mock.Anything, testOwner, "c-1", mock.MatchedBy(func(e domain.HistoryEntry) bool {
		return e.Channel == domain.ChannelPhone
	})).Return(&domain.HistoryEntry{ID: "h"}, nil)

	_, err := NewAddHistoryEntryUseCase(store, fixedClock).Execute(context.Background(), testOwner, "c-1", domain.NoteInput{Note: "llamada"})
	require.NoError(t, err)
}

func TestAddHistoryEntry_RejectsEmptyNoteAndBadChannel(t *testing.T) {
	store := &mockStore{}
	uc := NewAddHistoryEntryUseCase(store, fixedClock)

	_, err := uc.Execute(context.Background(), testOwner, "c-1", domain.NoteInput{Note: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = uc.Execute(context.Background(), testOwner, "c-1", domain.NoteInput{Note: "x", Channel: "fax"})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	store.AssertNotCalled(t, "AddHistory", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateHistoryEntry(t *testing.T) {
	store := &mockStore{}
	feedback := "Le interesa"
	patch := domain.HistoryPatch{Feedback: &feedback}
	store.On("UpdateHistory", mock.Anything, testOwner, "c-1", "h-1", patch).
		Return(&domain.HistoryEntry{ID: "h-1", Feedback: feedback}, nil).Once()
	store.On("UpdateHistory", mock.Anything, testOwner, "c-1", "nope", patch).
		Return(nil, domain.ErrHistoryNotFound).Once()

	uc := NewUpdateHistoryEntryUseCase(store)
	got, err := uc.Execute(context.Background(), testOwner, "c-1", "h-1", patch)
	require.NoError(t, err)
	assert.Equal(t, feedback, got.Feedback)

	_, err = uc.Execute(context.Background(), testOwner, "c-1", "nope", patch)
	assert.ErrorIs(t, err, domain.ErrHistoryNotFound)

	bad := domain.Channel("pigeon")
	_, err = uc.Execute(context.Background(), testOwner, "c-1", "h-1", domain.HistoryPatch{Channel: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidField)
}

func TestDeleteHistoryEntry(t *testing.T) {
	store := &mockStore{}
	store.On("DeleteHistory", mock.Anything, testOwner, "c-1", "h-1").Return(nil).Once()

	require.NoError(t, NewDeleteHistoryEntryUseCase(store).Execute(context.Background(), testOwner, "c-1", "h-1"))
	store.AssertExpectations(t)
}
