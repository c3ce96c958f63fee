package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

// AddHistoryEntryUseCase добавляет ручную заметку. Хранилище выставляет lastContact.
type AddHistoryEntryUseCase struct {
	store port.ContactStorePort
	clock port.Clock
}

func NewAddHistoryEntryUseCase(store port.ContactStorePort, clock port.Clock) *AddHistoryEntryUseCase {
	return &AddHistoryEntryUseCase{store: store, clock: clock}
}

func (uc *AddHistoryEntryUseCase) Execute(ctx context.Context, owner uuid.UUID, contactID string, input domain.NoteInput) (*domain.HistoryEntry, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "AddHistoryEntry",
		"contact_id": contactID,
		"channel":    input.Channel,
	})
	ucLogger.Info("Use case started", nil)

	note := strings.TrimSpace(input.Note)
	if note == "" {
		return nil, fmt.Errorf("%w: note is empty", domain.ErrInvalidField)
	}
	channel := input.Channel
	if channel == "" {
		channel = domain.ChannelPhone
	}

	entry := domain.HistoryEntry{
		Date:     uc.clock(),
		Channel:  channel,
		Note:     note,
		Feedback: "",
		Type:     domain.HistoryManual,
	}
	if err := entry.Validate(); err != nil {
		ucLogger.Warn("History entry validation failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	saved, err := uc.store.AddHistory(ctx, owner, contactID, entry)
	if err != nil {
		ucLogger.Error("Failed to add history entry", err, nil)
		return nil, fmt.Errorf("failed to add history entry: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"history_id": saved.ID})
	return saved, nil
}
