package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/albertoDabu/crm-immobiliaria/internal/contextkeys"
	"github.com/albertoDabu/crm-immobiliaria/internal/core/port"
)

type DeleteHistoryEntryUseCase struct {
	store port.ContactStorePort
}

func NewDeleteHistoryEntryUseCase(store port.ContactStorePort) *DeleteHistoryEntryUseCase {
	return &DeleteHistoryEntryUseCase{store: store}
}

func (uc *DeleteHistoryEntryUseCase) Execute(ctx context.Context, owner uuid.UUID, contactID, historyID string) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "DeleteHistoryEntry",
		"contact_id": contactID,
		"history_id": historyID,
	})
	ucLogger.Info("Use case started", nil)

	if err := uc.store.DeleteHistory(ctx, owner, contactID, historyID); err != nil {
		ucLogger.Error("Failed to delete history entry", err, nil)
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
