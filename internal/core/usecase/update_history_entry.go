package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/domain"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type UpdateHistoryEntryUseCase struct {
	store port.ContactStorePort
}

func NewUpdateHistoryEntryUseCase(store port.ContactStorePort) *UpdateHistoryEntryUseCase {
	return &UpdateHistoryEntryUseCase{store: store}
}

func (uc *UpdateHistoryEntryUseCase) Execute(ctx context.Context, owner uuid.UUID, contactID, historyID string, patch domain.HistoryPatch) (*domain.HistoryEntry, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "UpdateHistoryEntry",
		"contact_id": contactID,
		"history_id": historyID,
	})
	ucLogger.Info("Use case started", nil)

	if err := patch.Validate(); err != nil {
		return nil, err
	}

	entry, err := uc.store.UpdateHistory(ctx, owner, contactID, historyID, patch)
	if err != nil {
		ucLogger.Error("Failed to update history entry", err, nil)
		return nil, fmt.Errorf("failed to update history entry: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return entry, nil
}
